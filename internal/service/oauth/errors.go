package oauth

import (
	"errors"
	"fmt"
)

// ErrAuthProvider is the root of every social login failure. Provider
// response bodies never appear in its text.
var ErrAuthProvider = errors.New("auth provider error")

var (
	// ErrUnknownProvider is returned for a provider that is not configured.
	ErrUnknownProvider = fmt.Errorf("%w: unknown provider", ErrAuthProvider)

	// ErrMissingCode is returned when no authorization code was supplied.
	ErrMissingCode = fmt.Errorf("%w: authorization code is required", ErrAuthProvider)

	// ErrNoPrimaryEmail is returned when a GitHub account has no primary email.
	ErrNoPrimaryEmail = fmt.Errorf("%w: no primary email", ErrAuthProvider)

	// ErrMissingEmail is returned when the provider profile carries no email.
	ErrMissingEmail = fmt.Errorf("%w: profile has no email", ErrAuthProvider)
)

// rejectedError marks a 4xx answer from the provider. It does not count
// against the circuit breaker.
type rejectedError struct {
	status int
}

func (e *rejectedError) Error() string {
	return fmt.Sprintf("provider rejected request with status %d", e.status)
}
