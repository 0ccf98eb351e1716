package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/nestly-api/internal/api/shared"
	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/service"
	"github.com/phrazzld/nestly-api/internal/service/auth"
	"github.com/phrazzld/nestly-api/internal/service/oauth"
	"github.com/phrazzld/nestly-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Validation
// failures are checked first, since they may wrap store errors.
func MapErrorToStatusCode(err error) int {
	var fe domain.FieldErrors
	var ve *domain.ValidationError

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Bad request errors
	case errors.As(err, &fe),
		errors.As(err, &ve),
		errors.Is(err, service.ErrWrongCredentials),
		errors.Is(err, oauth.ErrAuthProvider),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrAuthenticationRequired),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrRevokedToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Messages of
// validation errors are written for clients; everything else gets a fixed
// message so internal details never leak.
func GetSafeErrorMessage(err error) string {
	var ve *domain.ValidationError

	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, service.ErrWrongCredentials):
		return "Wrong Password"
	case errors.Is(err, oauth.ErrAuthProvider):
		return "Social login failed"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required."
	case errors.Is(err, service.ErrAuthenticationRequired):
		return "Authentication credentials were not provided."
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrRevokedToken):
		return "Invalid token"
	case errors.Is(err, service.ErrPermissionDenied):
		return "You do not have permission to perform this action."
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found."
	case errors.Is(err, store.ErrRoomNotFound):
		return "Room not found."
	case errors.Is(err, store.ErrAmenityNotFound):
		return "Amenity not found."
	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found."
	case errors.Is(err, store.ErrNotFound):
		return "Not found."
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the response for err. FieldErrors render as a
// field-to-messages map; everything else as {"error": msg}. A non-empty
// fallback replaces the message of 5xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var fe domain.FieldErrors
	if errors.As(err, &fe) {
		shared.RespondWithFieldErrors(w, r, fe)
		return
	}

	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if errors.Is(err, oauth.ErrAuthProvider) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
