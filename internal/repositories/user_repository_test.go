package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
)

func TestUserRepository_GetByID(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`SELECT id, email, name, role, created_at FROM users WHERE id = ?`)
	columns := []string{"id", "email", "name", "role", "created_at"}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expected      *models.User
		expectedError error
		anyError      bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("u1").
					WillReturnRows(sqlmock.NewRows(columns).AddRow("u1", "ada@example.com", "Ada", 3, now))
			},
			expected: &models.User{ID: "u1", Email: "ada@example.com", Name: "Ada", Role: models.RoleAdmin, CreatedAt: now},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("u1").WillReturnRows(sqlmock.NewRows(columns))
			},
			expectedError: apperr.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("u1").WillReturnError(errors.New("connection refused"))
			},
			anyError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()
			repo := NewUserRepository(db)

			tt.setupMock(mock)

			user, err := repo.GetByID(context.Background(), "u1")
			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.anyError:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, apperr.ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
