package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnledger/backend/internal/models"
)

var progressColumns = []string{"user_id", "course_id", "started_at", "last_active_at", "completion_percentage"}

func setupProgressTestRepository(t *testing.T) (*progressRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, cleanup := newMockDB(t)
	return NewProgressRepository(db), mock, cleanup
}

func TestNewProgressRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewProgressRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestProgressRepository_FetchByUser(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success groups modules by course", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectProgressQuery + ` WHERE user_id = ? ORDER BY course_id`)).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(progressColumns).
				AddRow("u1", "1", now, now, 100).
				AddRow("u1", "2", now, now, 0))
		mock.ExpectQuery(regexp.QuoteMeta(selectCompletedQuery + ` WHERE user_id = ? ORDER BY id`)).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"course_id", "module_id"}).
				AddRow("1", "m2").
				AddRow("1", "m1"))

		entries, err := repo.FetchByUser(context.Background(), "u1")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, []string{"m2", "m1"}, entries[0].CompletedModules)
		assert.Equal(t, 100, entries[0].CompletionPercentage)
		assert.Equal(t, []string{}, entries[1].CompletedModules)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no entries skips module query", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectProgressQuery + ` WHERE user_id = ? ORDER BY course_id`)).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(progressColumns))

		entries, err := repo.FetchByUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectProgressQuery + ` WHERE user_id = ? ORDER BY course_id`)).
			WithArgs("u1").
			WillReturnError(errors.New("timeout"))

		_, err := repo.FetchByUser(context.Background(), "u1")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProgressRepository_Save(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	progress := &models.Progress{
		UserID:               "u1",
		CourseID:             "1",
		CompletedModules:     []string{"m1", "m2"},
		StartedAt:            now,
		LastActiveAt:         now.Add(time.Minute),
		CompletionPercentage: 100,
	}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(upsertProgressQuery)).
					WithArgs("u1", "1", now, now.Add(time.Minute), 100).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(regexp.QuoteMeta(insertCompletedModuleQuery)).
					WithArgs("u1", "1", "m1").
					WillReturnResult(sqlmock.NewResult(1, 0))
				mock.ExpectExec(regexp.QuoteMeta(insertCompletedModuleQuery)).
					WithArgs("u1", "1", "m2").
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "begin error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
			},
			expectedError: true,
		},
		{
			name: "upsert error rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(upsertProgressQuery)).
					WillReturnError(errors.New("deadlock"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
		{
			name: "module insert error rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(upsertProgressQuery)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta(insertCompletedModuleQuery)).
					WithArgs("u1", "1", "m1").
					WillReturnError(errors.New("foreign key"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
		{
			name: "commit error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(upsertProgressQuery)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta(insertCompletedModuleQuery)).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(regexp.QuoteMeta(insertCompletedModuleQuery)).
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit().WillReturnError(errors.New("connection lost"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Save(context.Background(), progress)
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
