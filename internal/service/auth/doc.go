// Package auth holds the credential and session primitives: bcrypt password
// hashing, HS256 session tokens, and the revocation list consulted on every
// authenticated request.
package auth
