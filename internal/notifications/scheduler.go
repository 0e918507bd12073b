package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/models"
)

// NewRefreshScheduler returns a cron scheduler that enqueues a catalog:refresh task on schedule.
// The schedule accepts standard cron expressions and descriptors such as "@every 10m".
func NewRefreshScheduler(schedule string, client TaskEnqueuer, logger *zap.Logger) (*cron.Cron, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid catalog refresh schedule %q: %w", schedule, err)
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		EnqueueCatalogRefresh(context.Background(), client, logger)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule catalog refresh: %w", err)
	}
	return c, nil
}

// RefreshUniqueTTL bounds how long an enqueued catalog:refresh blocks another one.
// The lock expires on its own, so an archived run never blocks later ticks.
const RefreshUniqueTTL = 5 * time.Minute

// EnqueueCatalogRefresh enqueues one catalog:refresh task. Duplicate tasks within
// RefreshUniqueTTL are collapsed.
func EnqueueCatalogRefresh(ctx context.Context, client TaskEnqueuer, logger *zap.Logger) {
	task := asynq.NewTask(models.TaskCatalogRefresh, nil)
	info, err := client.EnqueueContext(ctx, task,
		asynq.Queue(QueueDefault),
		asynq.Unique(RefreshUniqueTTL),
		asynq.MaxRetry(1),
	)
	switch {
	case errors.Is(err, asynq.ErrDuplicateTask), errors.Is(err, asynq.ErrTaskIDConflict):
		logger.Info("catalog refresh already pending, skipping")
	case err != nil:
		logger.Error("failed to enqueue catalog refresh", zap.Error(err))
	default:
		logger.Debug("catalog refresh enqueued", zap.String("task_id", info.ID))
	}
}
