package state

import (
	"fmt"
	"slices"
	"time"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
)

// CredentialLedger holds issued credentials in issue order
type CredentialLedger struct {
	items []models.Credential
	index map[string]int
}

// NewCredentialLedger creates a ledger holding the given credentials
func NewCredentialLedger(credentials ...models.Credential) CredentialLedger {
	l := CredentialLedger{index: make(map[string]int, len(credentials))}
	for _, c := range credentials {
		l = l.Put(c)
	}
	return l
}

// Get returns a copy of the credential with the given ID
func (l CredentialLedger) Get(id string) (models.Credential, bool) {
	i, ok := l.index[id]
	if !ok {
		return models.Credential{}, false
	}
	return cloneCredential(l.items[i]), true
}

// ForUser returns copies of a user's credentials in issue order
func (l CredentialLedger) ForUser(userID string) []models.Credential {
	result := []models.Credential{}
	for _, c := range l.items {
		if c.UserID == userID {
			result = append(result, cloneCredential(c))
		}
	}
	return result
}

// Len returns the number of credentials
func (l CredentialLedger) Len() int {
	return len(l.items)
}

// Put returns a ledger in which c is appended, or replaces the credential with the same ID
func (l CredentialLedger) Put(c models.Credential) CredentialLedger {
	next := CredentialLedger{
		items: make([]models.Credential, len(l.items), len(l.items)+1),
		index: make(map[string]int, len(l.index)+1),
	}
	copy(next.items, l.items)
	for id, i := range l.index {
		next.index[id] = i
	}

	if i, ok := next.index[c.ID]; ok {
		next.items[i] = cloneCredential(c)
		return next
	}
	next.index[c.ID] = len(next.items)
	next.items = append(next.items, cloneCredential(c))
	return next
}

// IssueCredential appends a new pending credential built from req.
// id and hash are generated by the caller.
func IssueCredential(l CredentialLedger, req models.IssueCredentialRequest, id, hash string, now time.Time) (CredentialLedger, models.Credential) {
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	c := models.Credential{
		ID:               id,
		UserID:           req.UserID,
		Title:            req.Title,
		Issuer:           req.Issuer,
		IssueDate:        issueDate,
		ExpiryDate:       req.ExpiryDate,
		Description:      req.Description,
		Skills:           slices.Clone(req.Skills),
		VerificationHash: hash,
		ImageURL:         req.ImageURL,
		Status:           models.CredentialStatusPending,
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}

	return l.Put(c), cloneCredential(c)
}

// MarkVerified moves a pending credential to verified.
//
// A verified credential is returned unchanged. A revoked credential is never
// verified: the ledger is returned unchanged with ErrVerificationFailed.
func MarkVerified(l CredentialLedger, id string) (CredentialLedger, models.Credential, error) {
	c, ok := l.Get(id)
	if !ok {
		return l, models.Credential{}, apperr.NotFound("credential %s", id)
	}

	switch c.Status {
	case models.CredentialStatusVerified:
		return l, c, nil
	case models.CredentialStatusRevoked:
		return l, c, fmt.Errorf("credential %s is revoked: %w", id, apperr.ErrVerificationFailed)
	}

	c.Status = models.CredentialStatusVerified
	return l.Put(c), c, nil
}

// Revoke moves a credential of any status to revoked
func Revoke(l CredentialLedger, id string) (CredentialLedger, models.Credential, error) {
	c, ok := l.Get(id)
	if !ok {
		return l, models.Credential{}, apperr.NotFound("credential %s", id)
	}
	if c.Status == models.CredentialStatusRevoked {
		return l, c, nil
	}

	c.Status = models.CredentialStatusRevoked
	return l.Put(c), c, nil
}

// FilterByStatus returns the credentials with the given status
func FilterByStatus(credentials []models.Credential, status models.CredentialStatus) []models.Credential {
	result := []models.Credential{}
	for _, c := range credentials {
		if c.Status == status {
			result = append(result, c)
		}
	}
	return result
}

// GroupByStatus projects credentials into per-status lists, keeping order
func GroupByStatus(credentials []models.Credential) models.GroupedCredentials {
	return models.GroupedCredentials{
		Verified: FilterByStatus(credentials, models.CredentialStatusVerified),
		Pending:  FilterByStatus(credentials, models.CredentialStatusPending),
		Revoked:  FilterByStatus(credentials, models.CredentialStatusRevoked),
	}
}

func cloneCredential(c models.Credential) models.Credential {
	c.Skills = slices.Clone(c.Skills)
	if c.ExpiryDate != nil {
		expiry := *c.ExpiryDate
		c.ExpiryDate = &expiry
	}
	return c
}
