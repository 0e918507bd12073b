package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
)

type tutorRepository struct {
	db *sql.DB
}

// NewTutorRepository creates a new tutor conversation repository
func NewTutorRepository(db *sql.DB) *tutorRepository {
	return &tutorRepository{
		db: db,
	}
}

// CreateConversation inserts a new conversation
func (r *tutorRepository) CreateConversation(ctx context.Context, conversation *models.TutorConversation) error {
	query := `INSERT INTO tutor_conversations (id, user_id, course_id, module_id, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		conversation.ID,
		conversation.UserID,
		nullString(conversation.CourseID),
		nullString(conversation.ModuleID),
		conversation.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}
	return nil
}

// CreateMessage inserts a message into its conversation
func (r *tutorRepository) CreateMessage(ctx context.Context, message *models.TutorMessage) error {
	query := `INSERT INTO tutor_messages (id, conversation_id, content, sender, related_course_id, related_module_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.ConversationID,
		message.Content,
		message.Sender,
		nullString(message.RelatedCourseID),
		nullString(message.RelatedModuleID),
		message.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tutor message: %w", err)
	}
	return nil
}

// GetLatestConversation retrieves the most recent conversation of a user
func (r *tutorRepository) GetLatestConversation(ctx context.Context, userID string) (*models.TutorConversation, error) {
	query := `SELECT id, user_id, course_id, module_id, created_at FROM tutor_conversations WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`

	var conversation models.TutorConversation
	var courseID, moduleID sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&conversation.ID,
		&conversation.UserID,
		&courseID,
		&moduleID,
		&conversation.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("conversation of user %s", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}

	conversation.CourseID = courseID.String
	conversation.ModuleID = moduleID.String
	return &conversation, nil
}

// GetMessages retrieves the messages of a conversation in insertion order
func (r *tutorRepository) GetMessages(ctx context.Context, conversationID string) ([]models.TutorMessage, error) {
	query := `SELECT id, conversation_id, content, sender, related_course_id, related_module_id, created_at FROM tutor_messages WHERE conversation_id = ? ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tutor messages: %w", err)
	}
	defer rows.Close()

	messages := []models.TutorMessage{}
	for rows.Next() {
		var message models.TutorMessage
		var courseID, moduleID sql.NullString
		err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.Content,
			&message.Sender,
			&courseID,
			&moduleID,
			&message.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tutor message: %w", err)
		}
		message.RelatedCourseID = courseID.String
		message.RelatedModuleID = moduleID.String
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return messages, nil
}
