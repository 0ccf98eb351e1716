package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing session tokens.
type JWTService interface {
	// GenerateToken creates a signed session token for the user.
	// Every token carries a fresh unique ID so it can be revoked on its own.
	GenerateToken(ctx context.Context, userID int64) (*Token, error)

	// ValidateToken checks the signature and time claims of a token and
	// returns its claims. It does not consult the revocation list.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Token is a freshly issued session token.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Claims represents the validated contents of a session token.
type Claims struct {
	// UserID is the identifier of the user the token was issued for.
	UserID int64 `json:"uid,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
