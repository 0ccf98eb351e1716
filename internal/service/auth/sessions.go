package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/nestly-api/internal/platform/logger"
)

// SessionManager issues, validates and revokes session tokens.
type SessionManager struct {
	tokens JWTService
	store  SessionStore
	logger *slog.Logger
}

// NewSessionManager combines a token service with a revocation store.
func NewSessionManager(tokens JWTService, store SessionStore, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		tokens: tokens,
		store:  store,
		logger: logger.With(slog.String("component", "session_manager")),
	}
}

// Issue starts a new session for the user.
func (m *SessionManager) Issue(ctx context.Context, userID int64) (*Token, error) {
	token, err := m.tokens.GenerateToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	logger.FromContextOrDefault(ctx, m.logger).Debug("session issued",
		slog.Int64("user_id", userID),
		slog.String("token_id", token.ID))
	return token, nil
}

// Authenticate validates tokenString and rejects revoked sessions.
func (m *SessionManager) Authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := m.tokens.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := m.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("session lookup failed: %w", err)
	}
	if revoked {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Revoke ends the session described by claims.
func (m *SessionManager) Revoke(ctx context.Context, claims *Claims) error {
	if err := m.store.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, m.logger).Info("session revoked",
		slog.Int64("user_id", claims.UserID))
	return nil
}
