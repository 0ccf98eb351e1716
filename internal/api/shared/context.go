package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/service/auth"
)

// ContextKey is the key type for request context values.
type ContextKey string

// Context keys for request-scoped values.
const (
	// UserContextKey holds the authenticated *domain.User.
	UserContextKey ContextKey = "user"

	// ClaimsContextKey holds the *auth.Claims of the presented session token.
	ClaimsContextKey ContextKey = "claims"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns a random 32-character hex string.
func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// WithUser stores the authenticated user and the session claims in ctx.
func WithUser(ctx context.Context, user *domain.User, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, UserContextKey, user)
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// UserFromContext returns the authenticated user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(UserContextKey).(*domain.User)
	return user
}

// ClaimsFromContext returns the session claims, or nil for anonymous requests.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims
}
