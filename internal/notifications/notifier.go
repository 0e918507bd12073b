// Package notifications delivers credential lifecycle events through an asynq queue
// and runs the worker-side task handlers
package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/models"
)

const (
	// QueueDefault receives notification and maintenance tasks
	QueueDefault = "default"
	maxRetry     = 5
)

// TaskEnqueuer is the part of asynq.Client used to publish tasks
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier publishes credential notification tasks
type Notifier struct {
	client TaskEnqueuer
	logger *zap.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(client TaskEnqueuer, logger *zap.Logger) *Notifier {
	return &Notifier{
		client: client,
		logger: logger,
	}
}

// CredentialIssued enqueues a credential:issued task
func (n *Notifier) CredentialIssued(ctx context.Context, credential models.Credential) error {
	return n.enqueue(ctx, models.TaskCredentialIssued, credential)
}

// CredentialVerified enqueues a credential:verified task
func (n *Notifier) CredentialVerified(ctx context.Context, credential models.Credential) error {
	return n.enqueue(ctx, models.TaskCredentialVerified, credential)
}

func (n *Notifier) enqueue(ctx context.Context, taskType string, credential models.Credential) error {
	payload, err := json.Marshal(models.CredentialNotification{
		CredentialID: credential.ID,
		UserID:       credential.UserID,
		Title:        credential.Title,
		Issuer:       credential.Issuer,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", taskType, err)
	}

	info, err := n.client.EnqueueContext(ctx, asynq.NewTask(taskType, payload), asynq.Queue(QueueDefault), asynq.MaxRetry(maxRetry))
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}

	n.logger.Debug("notification enqueued",
		zap.String("task", taskType),
		zap.String("task_id", info.ID),
		zap.String("credential_id", credential.ID),
	)
	return nil
}
