package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
)

// UserRepository defines the interface for user lookups
type UserRepository interface {
	// GetByID retrieves a user by its ID
	//
	// If the user does not exist, the returned error wraps apperr.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Mailer delivers email
type Mailer interface {
	Send(to, subject, body string) error
}

// CatalogRefresher rewrites the course catalog cache
type CatalogRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// Handler processes notification and maintenance tasks in the worker
type Handler struct {
	users     UserRepository
	mailer    Mailer
	refresher CatalogRefresher
	logger    *zap.Logger
}

// NewHandler creates a new task handler
func NewHandler(users UserRepository, mailer Mailer, refresher CatalogRefresher, logger *zap.Logger) *Handler {
	return &Handler{
		users:     users,
		mailer:    mailer,
		refresher: refresher,
		logger:    logger,
	}
}

// Register registers the task handlers on mux
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(models.TaskCredentialIssued, h.HandleCredentialIssued)
	mux.HandleFunc(models.TaskCredentialVerified, h.HandleCredentialVerified)
	mux.HandleFunc(models.TaskCatalogRefresh, h.HandleCatalogRefresh)
}

// HandleCredentialIssued emails the owner of a newly issued credential
func (h *Handler) HandleCredentialIssued(ctx context.Context, t *asynq.Task) error {
	return h.sendCredentialEmail(ctx, t,
		"Your new credential: %s",
		"<p>Hi %s,</p><p>You have been issued the credential <b>%s</b> by %s. It is pending verification.</p>",
	)
}

// HandleCredentialVerified emails the owner of a credential that passed verification
func (h *Handler) HandleCredentialVerified(ctx context.Context, t *asynq.Task) error {
	return h.sendCredentialEmail(ctx, t,
		"Credential verified: %s",
		"<p>Hi %s,</p><p>Your credential <b>%s</b> issued by %s has been verified.</p>",
	)
}

// HandleCatalogRefresh reloads the course catalog cache
func (h *Handler) HandleCatalogRefresh(ctx context.Context, t *asynq.Task) error {
	count, err := h.refresher.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh catalog cache: %w", err)
	}
	h.logger.Info("catalog cache refreshed", zap.Int("courses", count))
	return nil
}

func (h *Handler) sendCredentialEmail(ctx context.Context, t *asynq.Task, subjectFormat, bodyFormat string) error {
	var payload models.CredentialNotification
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}

	user, err := h.users.GetByID(ctx, payload.UserID)
	if err != nil {
		// The user was removed after the task was enqueued; nothing to deliver.
		if errors.Is(err, apperr.ErrNotFound) {
			h.logger.Warn("notification recipient not found",
				zap.String("task", t.Type()),
				zap.String("user_id", payload.UserID),
			)
			return nil
		}
		return err
	}

	subject := fmt.Sprintf(subjectFormat, payload.Title)
	body := fmt.Sprintf(bodyFormat, html.EscapeString(user.Name), html.EscapeString(payload.Title), html.EscapeString(payload.Issuer))
	if err := h.mailer.Send(user.Email, subject, body); err != nil {
		return err
	}

	h.logger.Info("notification sent",
		zap.String("task", t.Type()),
		zap.String("credential_id", payload.CredentialID),
	)
	return nil
}
