package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/nestly-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// Unique constraint names from the schema.
const (
	usersEmailConstraint    = "users_email_key"
	usersUsernameConstraint = "users_username_key"
)

// MapError translates a database error into the matching store sentinel.
// The original error stays wrapped for logging; redact it before showing it
// to a client.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	pgErr, ok := asPgError(err)
	if !ok {
		return err
	}
	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case foreignKeyViolationCode:
		return fmt.Errorf("%w: foreign key violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case checkViolationCode:
		return fmt.Errorf("%w: check constraint violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: not null violation (%s): %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	default:
		return err
	}
}

// asPgError unwraps err down to the driver's *pgconn.PgError, if any.
func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}
	return pgErr, true
}

// CheckRowsAffected examines the number of rows affected by an UPDATE or DELETE.
// If no rows were affected, it returns notFound (store.ErrNotFound when nil).
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}

// mapUserUniqueViolation turns a unique violation on the users table into
// ErrEmailExists or ErrUsernameExists depending on the constraint.
// Other errors go through MapError.
func mapUserUniqueViolation(err error) error {
	pgErr, ok := asPgError(err)
	if !ok || pgErr.Code != uniqueViolationCode {
		return MapError(err)
	}

	switch pgErr.ConstraintName {
	case usersEmailConstraint:
		return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
	case usersUsernameConstraint:
		return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
	default:
		return fmt.Errorf("%w: duplicate value for constraint %s: %v", store.ErrDuplicate, pgErr.ConstraintName, err)
	}
}
