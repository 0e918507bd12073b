package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/learnledger/backend/internal/models"
)

const (
	selectProgressQuery        = `SELECT user_id, course_id, started_at, last_active_at, completion_percentage FROM learning_progress`
	selectCompletedQuery       = `SELECT course_id, module_id FROM progress_completed_modules`
	upsertProgressQuery        = `INSERT INTO learning_progress (user_id, course_id, started_at, last_active_at, completion_percentage) VALUES (?, ?, ?, ?, ?) ON DUPLICATE KEY UPDATE last_active_at = VALUES(last_active_at), completion_percentage = VALUES(completion_percentage)`
	insertCompletedModuleQuery = `INSERT IGNORE INTO progress_completed_modules (user_id, course_id, module_id) VALUES (?, ?, ?)`
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new learning progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// FetchByUser retrieves all progress entries of a user ordered by course
func (r *progressRepository) FetchByUser(ctx context.Context, userID string) ([]models.Progress, error) {
	rows, err := r.db.QueryContext(ctx, selectProgressQuery+` WHERE user_id = ? ORDER BY course_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	entries := []models.Progress{}
	for rows.Next() {
		var progress models.Progress
		err := rows.Scan(
			&progress.UserID,
			&progress.CourseID,
			&progress.StartedAt,
			&progress.LastActiveAt,
			&progress.CompletionPercentage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		entries = append(entries, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	completed, err := r.fetchCompleted(ctx, selectCompletedQuery+` WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].CompletedModules = completed[entries[i].CourseID]
		if entries[i].CompletedModules == nil {
			entries[i].CompletedModules = []string{}
		}
	}

	return entries, nil
}

// Save upserts a progress entry together with its completed modules in one transaction
func (r *progressRepository) Save(ctx context.Context, progress *models.Progress) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, upsertProgressQuery,
		progress.UserID,
		progress.CourseID,
		progress.StartedAt,
		progress.LastActiveAt,
		progress.CompletionPercentage,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	for _, moduleID := range progress.CompletedModules {
		if _, err := tx.ExecContext(ctx, insertCompletedModuleQuery, progress.UserID, progress.CourseID, moduleID); err != nil {
			return fmt.Errorf("failed to insert completed module %s: %w", moduleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// fetchCompleted returns completed module ids grouped by course id in completion order
func (r *progressRepository) fetchCompleted(ctx context.Context, query string, args ...any) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed modules: %w", err)
	}
	defer rows.Close()

	completed := make(map[string][]string)
	for rows.Next() {
		var courseID, moduleID string
		if err := rows.Scan(&courseID, &moduleID); err != nil {
			return nil, fmt.Errorf("failed to scan completed module: %w", err)
		}
		completed[courseID] = append(completed[courseID], moduleID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return completed, nil
}
