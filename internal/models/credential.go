package models

import "time"

// CredentialStatus represents the verification status of a credential
type CredentialStatus string

const (
	CredentialStatusPending  CredentialStatus = "pending"
	CredentialStatusVerified CredentialStatus = "verified"
	CredentialStatusRevoked  CredentialStatus = "revoked"
)

// Valid reports whether s is one of the known statuses
func (s CredentialStatus) Valid() bool {
	switch s {
	case CredentialStatusPending, CredentialStatusVerified, CredentialStatusRevoked:
		return true
	}
	return false
}

// Credential represents an issued achievement record
type Credential struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	Title            string           `json:"title"`
	Issuer           string           `json:"issuer"`
	IssueDate        time.Time        `json:"issueDate"`
	ExpiryDate       *time.Time       `json:"expiryDate,omitempty"`
	Description      string           `json:"description"`
	Skills           []string         `json:"skills"`
	VerificationHash string           `json:"verificationHash"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	Status           CredentialStatus `json:"status"`
}

// IssueCredentialRequest represents a request to issue a credential
type IssueCredentialRequest struct {
	UserID      string     `json:"userId" example:"5b0c7a52-8d0e-4a3e-9d51-1f1f1f1f1f1f"`
	Title       string     `json:"title" example:"Blockchain Fundamentals"`
	Issuer      string     `json:"issuer" example:"Blockchain Academy"`
	IssueDate   *time.Time `json:"issueDate,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	Description string     `json:"description"`
	Skills      []string   `json:"skills"`
	ImageURL    string     `json:"imageUrl,omitempty"`
}

// VerificationResponse represents the result of a verify call
type VerificationResponse struct {
	Verified   bool        `json:"verified"`
	Proof      string      `json:"proof,omitempty"`
	Credential *Credential `json:"credential"`
}

// GroupedCredentials is the read-side projection of credentials by status
type GroupedCredentials struct {
	Verified []Credential `json:"verified"`
	Pending  []Credential `json:"pending"`
	Revoked  []Credential `json:"revoked"`
}

// VerificationResult is the outcome of an external credential check
type VerificationResult struct {
	Valid bool
	Proof string
}
