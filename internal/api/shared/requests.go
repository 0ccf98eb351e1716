package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/phrazzld/nestly-api/internal/domain"
)

// maxBodyBytes caps request bodies read by DecodeJSON.
const maxBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	return err
}

// PageParam reads the 1-based "page" query parameter. A missing value means
// the first page; anything that is not a positive integer is rejected.
func PageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, domain.NewValidationError("page", "Invalid page.", domain.ErrValidation)
	}
	return page, nil
}
