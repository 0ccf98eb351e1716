package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/nestly-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and fills in its ID and timestamps.
	// The email is expected to be normalized already.
	// Returns ErrEmailExists or ErrUsernameExists on unique conflicts.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by normalized email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UsernameExists reports whether the username is taken.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// Update persists the profile fields of an existing user. The password
	// hash is not touched; use UpdatePassword.
	// Returns ErrUserNotFound, ErrEmailExists or ErrUsernameExists.
	Update(ctx context.Context, user *domain.User) error

	// UpdatePassword replaces the stored password hash.
	// Returns ErrUserNotFound if the user does not exist.
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
