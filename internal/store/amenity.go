package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/nestly-api/internal/domain"
)

// AmenityStore defines the interface for amenity data persistence.
type AmenityStore interface {
	// Create inserts an amenity and fills in its ID and timestamps.
	Create(ctx context.Context, amenity *domain.Amenity) error

	// GetByID retrieves an amenity by ID.
	// Returns ErrAmenityNotFound if the amenity does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Amenity, error)

	// Update persists the name and description of an amenity.
	// Returns ErrAmenityNotFound if the amenity does not exist.
	Update(ctx context.Context, amenity *domain.Amenity) error

	// Delete removes an amenity and its room links.
	// Returns ErrAmenityNotFound if the amenity does not exist.
	Delete(ctx context.Context, id int64) error

	// List returns every amenity ordered by ID.
	List(ctx context.Context) ([]*domain.Amenity, error)

	// ListByRoom returns one page of the amenities linked to a room and the
	// total number of links. Use All for the full set.
	ListByRoom(ctx context.Context, roomID int64, page PageRequest) ([]*domain.Amenity, int, error)

	// WithTx returns a new AmenityStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AmenityStore
}
