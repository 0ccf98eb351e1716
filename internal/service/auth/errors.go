package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrRevokedToken indicates the session was logged out
	ErrRevokedToken = errors.New("authentication token has been revoked")

	// ErrPasswordMismatch indicates a password did not match its stored hash
	ErrPasswordMismatch = errors.New("password does not match")
)
