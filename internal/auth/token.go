// Package auth issues and validates bearer access tokens
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/learnledger/backend/internal/models"
)

// TokenGenerator handles JWT token generation and validation
type TokenGenerator struct {
	secret            string
	accessTokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, accessExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:            secret,
		accessTokenExpiry: accessExpiry,
	}
}

// GenerateAccessToken creates an access token with userID and role in payload
func (tg *TokenGenerator) GenerateAccessToken(userID string, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": int(role),
		"exp":  now.Add(tg.accessTokenExpiry).Unix(),
		"iat":  now.Unix(),
		"type": "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns the userID and role
func (tg *TokenGenerator) ValidateAccessToken(tokenString string) (string, models.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", 0, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, fmt.Errorf("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return "", 0, fmt.Errorf("token is not an access token")
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", 0, fmt.Errorf("sub not found in token")
	}

	// JWT claims decode numbers as float64
	role, ok := claims["role"].(float64)
	if !ok {
		return "", 0, fmt.Errorf("role not found in token")
	}

	return userID, models.Role(role), nil
}
