package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
)

const (
	selectCredentialsQuery = `SELECT id, user_id, title, issuer, issue_date, expiry_date, description, skills, verification_hash, image_url, status FROM credentials`
	insertCredentialQuery  = `INSERT INTO credentials (id, user_id, title, issuer, issue_date, expiry_date, description, skills, verification_hash, image_url, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateStatusQuery      = `UPDATE credentials SET status = ? WHERE id = ?`
)

type credentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *sql.DB) *credentialRepository {
	return &credentialRepository{
		db: db,
	}
}

// GetByID retrieves a credential by its id
func (r *credentialRepository) GetByID(ctx context.Context, id string) (*models.Credential, error) {
	row := r.db.QueryRowContext(ctx, selectCredentialsQuery+` WHERE id = ?`, id)
	credential, err := scanCredential(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("credential %s", id)
	}
	if err != nil {
		return nil, err
	}
	return credential, nil
}

// ListByUser retrieves all credentials of a user in issue order
func (r *credentialRepository) ListByUser(ctx context.Context, userID string) ([]models.Credential, error) {
	rows, err := r.db.QueryContext(ctx, selectCredentialsQuery+` WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer rows.Close()

	credentials := []models.Credential{}
	for rows.Next() {
		credential, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		credentials = append(credentials, *credential)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return credentials, nil
}

// Create inserts a new credential
func (r *credentialRepository) Create(ctx context.Context, credential *models.Credential) error {
	skills, err := encodeStrings(credential.Skills)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertCredentialQuery,
		credential.ID,
		credential.UserID,
		credential.Title,
		credential.Issuer,
		credential.IssueDate,
		credential.ExpiryDate,
		credential.Description,
		skills,
		credential.VerificationHash,
		nullString(credential.ImageURL),
		credential.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert credential: %w", err)
	}

	return nil
}

// UpdateStatus sets the status of a credential
func (r *credentialRepository) UpdateStatus(ctx context.Context, id string, status models.CredentialStatus) error {
	result, err := r.db.ExecContext(ctx, updateStatusQuery, status, id)
	if err != nil {
		return fmt.Errorf("failed to update credential status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	// MySQL reports zero affected rows when the status is unchanged, so only a missing row is an error.
	if rowsAffected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM credentials WHERE id = ?)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check credential existence: %w", err)
		}
		if !exists {
			return apperr.NotFound("credential %s", id)
		}
	}

	return nil
}

func scanCredential(row rowScanner) (*models.Credential, error) {
	var credential models.Credential
	var expiryDate sql.NullTime
	var description, imageURL sql.NullString
	var skills []byte
	err := row.Scan(
		&credential.ID,
		&credential.UserID,
		&credential.Title,
		&credential.Issuer,
		&credential.IssueDate,
		&expiryDate,
		&description,
		&skills,
		&credential.VerificationHash,
		&imageURL,
		&credential.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan credential: %w", err)
	}

	if expiryDate.Valid {
		expiry := expiryDate.Time
		credential.ExpiryDate = &expiry
	}
	credential.Description = description.String
	credential.ImageURL = imageURL.String
	credential.Skills, err = decodeStrings(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to decode skills of credential %s: %w", credential.ID, err)
	}

	return &credential, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
