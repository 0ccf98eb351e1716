package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/nestly-api/internal/domain"
)

// RoomStore defines the interface for room data persistence.
//
// Room reads populate Owner, Category and Rating. Amenities are loaded
// separately through AmenityStore.ListByRoom.
type RoomStore interface {
	// Create inserts a room and fills in its ID and timestamps.
	// Returns ErrInvalidEntity if the owner or category does not exist.
	Create(ctx context.Context, room *domain.Room) error

	// GetByID retrieves a room by ID.
	// Returns ErrRoomNotFound if the room does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Room, error)

	// Update persists every mutable column of the room, including its category.
	// Returns ErrRoomNotFound if the room does not exist.
	Update(ctx context.Context, room *domain.Room) error

	// Delete removes a room. Amenity links and reviews go with it
	// through ON DELETE CASCADE.
	// Returns ErrRoomNotFound if the room does not exist.
	Delete(ctx context.Context, id int64) error

	// List returns every room, newest first.
	List(ctx context.Context) ([]*domain.Room, error)

	// ListByOwner returns one page of the owner's rooms, newest first,
	// and the total number of rooms the owner has.
	ListByOwner(ctx context.Context, ownerID int64, page PageRequest) ([]*domain.Room, int, error)

	// ReplaceAmenities clears the room's amenity set and links the given
	// amenities in its place. An empty slice leaves the set empty.
	// IMPORTANT: call this inside RunInTransaction so a failure part way
	// through never leaves a partial set behind.
	ReplaceAmenities(ctx context.Context, roomID int64, amenityIDs []int64) error

	// WithTx returns a new RoomStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) RoomStore
}
