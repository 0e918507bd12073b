// Package signer checks credentials by signing a verification message with an ephemeral Ed25519 key
package signer

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learnledger/backend/internal/models"
)

// Message returns the statement signed for a credential
func Message(credentialID string) string {
	return "Verify credential: " + credentialID
}

type verificationClaims struct {
	Message string `json:"msg"`
	jwt.RegisteredClaims
}

// Signer produces a signed proof and checks it against the signing key
type Signer struct {
	random io.Reader
	now    func() time.Time
}

// NewSigner creates a new signer backed by crypto/rand
func NewSigner() *Signer {
	return &Signer{
		random: rand.Reader,
		now:    time.Now,
	}
}

// Verify signs the verification message of a credential as an EdDSA token with a freshly
// generated key and validates the token with the matching public key.
// The signed token is returned as the proof.
func (s *Signer) Verify(ctx context.Context, credentialID string) (models.VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return models.VerificationResult{}, err
	}

	publicKey, privateKey, err := ed25519.GenerateKey(s.random)
	if err != nil {
		return models.VerificationResult{}, fmt.Errorf("failed to generate signing key: %w", err)
	}

	claims := verificationClaims{
		Message: Message(credentialID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  credentialID,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	proof, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(privateKey)
	if err != nil {
		return models.VerificationResult{}, fmt.Errorf("failed to sign verification message: %w", err)
	}

	return models.VerificationResult{
		Valid: Check(proof, publicKey, credentialID),
		Proof: proof,
	}, nil
}

// Check reports whether proof is an EdDSA token signed by publicKey over the credential's message
func Check(proof string, publicKey ed25519.PublicKey, credentialID string) bool {
	var claims verificationClaims
	token, err := jwt.ParseWithClaims(proof, &claims, func(token *jwt.Token) (any, error) {
		return publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))
	if err != nil || !token.Valid {
		return false
	}
	return claims.Message == Message(credentialID) && claims.Subject == credentialID
}
