package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/nestly-api/internal/api/shared"
	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
)

// getPathID extracts a positive int64 id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "Invalid id.", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(paramName, "Invalid id.", domain.ErrInvalidID)
	}
	return id, nil
}

// handlePathID parses the id path parameter and writes a 400 response when
// it is malformed.
func handlePathID(w http.ResponseWriter, r *http.Request, paramName string, log *slog.Logger) (int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	id, err := getPathID(r, paramName)
	if err != nil {
		log.Warn("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return id, true
}

// handlePageParam parses the page query parameter and writes a 400 response
// when it is malformed.
func handlePageParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	page, err := shared.PageParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return page, true
}

// decodeBody decodes a JSON request body and writes a 400 response when it
// cannot be parsed.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			HandleAPIError(w, r, err, "")
			return false
		}
		HandleAPIError(w, r,
			domain.NewValidationError("", "Malformed JSON request body.", domain.ErrValidation), "")
		return false
	}
	return true
}
