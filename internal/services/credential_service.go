package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
	"github.com/learnledger/backend/internal/state"
)

const nonceSize = 16

// CredentialRepository is the interface that wraps methods for credential data access
type CredentialRepository interface {
	// Method GetByID retrieve a credential by its ID.
	//
	// If the credential does not exist, the returned error wraps apperr.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Credential, error)
	// Method ListByUser retrieve all credentials of a user in issue order.
	//
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	ListByUser(ctx context.Context, userID string) ([]models.Credential, error)
	// Method Create persist a newly issued credential.
	Create(ctx context.Context, credential *models.Credential) error
	// Method UpdateStatus persist a status transition of a credential.
	//
	// If the credential does not exist, the returned error wraps apperr.ErrNotFound.
	UpdateStatus(ctx context.Context, id string, status models.CredentialStatus) error
}

// Verifier is the external signature check of a credential
type Verifier interface {
	// Verify performs one check for the credential. An error means the check could not be performed.
	Verify(ctx context.Context, credentialID string) (models.VerificationResult, error)
}

// CredentialNotifier announces credential lifecycle events
type CredentialNotifier interface {
	CredentialIssued(ctx context.Context, credential models.Credential) error
	CredentialVerified(ctx context.Context, credential models.Credential) error
}

type credentialService struct {
	repo     CredentialRepository
	verifier Verifier
	notifier CredentialNotifier
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
	random   io.Reader

	// mu guards ledger and hydrated. It is never held while the verifier runs.
	mu       sync.Mutex
	ledger   state.CredentialLedger
	hydrated map[string]bool
}

// NewCredentialService creates a new credential service
func NewCredentialService(repo CredentialRepository, verifier Verifier, notifier CredentialNotifier, logger *zap.Logger) *credentialService {
	return &credentialService{
		repo:     repo,
		verifier: verifier,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
		random:   rand.Reader,
		ledger:   state.NewCredentialLedger(),
		hydrated: make(map[string]bool),
	}
}

// Issue creates a pending credential with a fresh ID and verification hash
func (s *credentialService) Issue(ctx context.Context, req models.IssueCredentialRequest) (*models.Credential, error) {
	if err := validateIssueRequest(&req); err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(s.random, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := s.now()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	id := s.newID()
	hash := VerificationHash(id, req.UserID, req.Title, req.Issuer, issueDate, req.Skills, nonce)

	s.mu.Lock()
	if err := s.hydrate(ctx, req.UserID); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	next, credential := state.IssueCredential(s.ledger, req, id, hash, now)
	if err := s.repo.Create(ctx, &credential); err != nil {
		s.mu.Unlock()
		s.logger.Error("failed to create credential", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, apperr.Upstream("failed to create credential", err)
	}
	s.ledger = next
	s.mu.Unlock()

	s.logger.Info("credential issued",
		zap.String("credential_id", credential.ID),
		zap.String("user_id", credential.UserID),
	)
	s.notify(ctx, models.TaskCredentialIssued, credential, s.notifier.CredentialIssued)

	return &credential, nil
}

// Verify runs the external check for a credential owned by the user.
//
// Revoked credentials fail with apperr.ErrVerificationFailed without calling the verifier.
// Verified credentials are returned as they are. A negative check leaves the status
// unchanged and yields apperr.ErrVerificationFailed; a failed check yields
// apperr.ErrUpstreamFailure. If the credential is revoked while the check runs, the
// revocation wins.
func (s *credentialService) Verify(ctx context.Context, userID, id string) (*models.VerificationResponse, error) {
	s.mu.Lock()
	if err := s.hydrate(ctx, userID); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	current, ok := s.ledger.Get(id)
	s.mu.Unlock()

	if !ok || current.UserID != userID {
		return nil, apperr.NotFound("credential %s", id)
	}
	switch current.Status {
	case models.CredentialStatusRevoked:
		return nil, fmt.Errorf("credential %s is revoked: %w", id, apperr.ErrVerificationFailed)
	case models.CredentialStatusVerified:
		return &models.VerificationResponse{Verified: true, Credential: &current}, nil
	}

	result, err := s.verifier.Verify(ctx, id)
	if err != nil {
		s.logger.Error("credential verification could not be performed", zap.String("credential_id", id), zap.Error(err))
		return nil, apperr.Upstream("failed to verify credential", err)
	}
	if !result.Valid {
		s.logger.Warn("credential signature check failed", zap.String("credential_id", id))
		return nil, fmt.Errorf("credential %s signature check failed: %w", id, apperr.ErrVerificationFailed)
	}

	s.mu.Lock()
	before, _ := s.ledger.Get(id)
	next, credential, err := state.MarkVerified(s.ledger, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if before.Status != models.CredentialStatusVerified {
		if err := s.repo.UpdateStatus(ctx, id, models.CredentialStatusVerified); err != nil {
			s.mu.Unlock()
			s.logger.Error("failed to persist verification", zap.String("credential_id", id), zap.Error(err))
			return nil, apperr.Upstream("failed to update credential status", err)
		}
		s.ledger = next
	}
	s.mu.Unlock()

	s.logger.Info("credential verified", zap.String("credential_id", id))
	if before.Status != models.CredentialStatusVerified {
		s.notify(ctx, models.TaskCredentialVerified, credential, s.notifier.CredentialVerified)
	}

	return &models.VerificationResponse{
		Verified:   true,
		Proof:      result.Proof,
		Credential: &credential,
	}, nil
}

// Revoke moves a credential of any status to revoked
func (s *credentialService) Revoke(ctx context.Context, id string) (*models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledger.Get(id); !ok {
		stored, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, apperr.Upstream("failed to get credential", err)
		}
		if err := s.hydrate(ctx, stored.UserID); err != nil {
			return nil, err
		}
	}

	before, _ := s.ledger.Get(id)
	next, credential, err := state.Revoke(s.ledger, id)
	if err != nil {
		return nil, err
	}
	if before.Status == models.CredentialStatusRevoked {
		return &credential, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, models.CredentialStatusRevoked); err != nil {
		s.logger.Error("failed to persist revocation", zap.String("credential_id", id), zap.Error(err))
		return nil, apperr.Upstream("failed to update credential status", err)
	}
	s.ledger = next

	s.logger.Info("credential revoked", zap.String("credential_id", id))
	return &credential, nil
}

// ListForUser returns the user's credentials in issue order, optionally filtered by status
func (s *credentialService) ListForUser(ctx context.Context, userID, statusParam string) ([]models.Credential, error) {
	status := models.CredentialStatus(strings.ToLower(strings.TrimSpace(statusParam)))
	if status != "" && !status.Valid() {
		return nil, apperr.InvalidInput("invalid credential status %q", statusParam)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hydrate(ctx, userID); err != nil {
		return nil, err
	}

	credentials := s.ledger.ForUser(userID)
	if status != "" {
		credentials = state.FilterByStatus(credentials, status)
	}
	return credentials, nil
}

// Grouped returns the user's credentials grouped by status
func (s *credentialService) Grouped(ctx context.Context, userID string) (*models.GroupedCredentials, error) {
	credentials, err := s.ListForUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	grouped := state.GroupByStatus(credentials)
	return &grouped, nil
}

// hydrate loads a user's persisted credentials once. The caller holds mu.
func (s *credentialService) hydrate(ctx context.Context, userID string) error {
	if s.hydrated[userID] {
		return nil
	}

	credentials, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load credentials", zap.String("user_id", userID), zap.Error(err))
		return apperr.Upstream("failed to load credentials", err)
	}

	ledger := s.ledger
	for _, credential := range credentials {
		ledger = ledger.Put(credential)
	}
	s.ledger = ledger
	s.hydrated[userID] = true

	return nil
}

func (s *credentialService) notify(ctx context.Context, event string, credential models.Credential, send func(context.Context, models.Credential) error) {
	if err := send(ctx, credential); err != nil {
		s.logger.Warn("failed to enqueue credential notification",
			zap.String("event", event),
			zap.String("credential_id", credential.ID),
			zap.Error(err),
		)
	}
}

// VerificationHash returns "0x" followed by the hex Keccak-256 digest of the credential's
// canonical fields and a nonce
func VerificationHash(id, userID, title, issuer string, issueDate time.Time, skills []string, nonce []byte) string {
	h := sha3.NewLegacyKeccak256()
	for _, field := range []string{
		id,
		userID,
		title,
		issuer,
		issueDate.UTC().Format(time.RFC3339Nano),
		strings.Join(skills, ","),
	} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	h.Write(nonce)
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

func validateIssueRequest(req *models.IssueCredentialRequest) error {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Title = strings.TrimSpace(req.Title)
	req.Issuer = strings.TrimSpace(req.Issuer)

	if req.UserID == "" {
		return apperr.InvalidInput("userId is required")
	}
	if req.Title == "" {
		return apperr.InvalidInput("title is required")
	}
	if req.Issuer == "" {
		return apperr.InvalidInput("issuer is required")
	}
	if req.IssueDate != nil && req.ExpiryDate != nil && req.ExpiryDate.Before(*req.IssueDate) {
		return apperr.InvalidInput("expiryDate must not be before issueDate")
	}
	return nil
}
