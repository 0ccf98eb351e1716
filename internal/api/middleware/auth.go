package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/nestly-api/internal/api/shared"
	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/redact"
	"github.com/phrazzld/nestly-api/internal/service/auth"
	"github.com/phrazzld/nestly-api/internal/store"
)

// SessionAuthenticator validates a session token. *auth.SessionManager
// implements it.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*auth.Claims, error)
}

// UserLoader loads the user a session belongs to.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// AuthMiddleware resolves bearer session tokens into users.
type AuthMiddleware struct {
	sessions SessionAuthenticator
	users    UserLoader
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(sessions SessionAuthenticator, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		users:    users,
	}
}

// Authenticate validates the session token from the Authorization header and
// adds the user to the request context. Requests without the header continue
// anonymously; a malformed, expired or revoked token is rejected with 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.sessions.Authenticate(r.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrRevokedToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Error("failed to validate token", slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			logger.FromContextOrDefault(r.Context(), slog.Default()).
				Error("failed to load session user", slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := shared.WithUser(r.Context(), user, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shared.UserFromContext(r.Context()) == nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"Authentication credentials were not provided.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
