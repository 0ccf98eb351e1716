package store

import (
	"context"

	"github.com/phrazzld/nestly-api/internal/domain"
)

// ReviewStore provides paginated review queries. Every list is ordered
// newest first (created_at DESC, id DESC) and returns the size of the
// whole filtered set alongside the page.
type ReviewStore interface {
	// ListByRoom returns reviews written about a room.
	ListByRoom(ctx context.Context, roomID int64, page PageRequest) ([]*domain.Review, int, error)

	// ListByUser returns reviews written by a user.
	ListByUser(ctx context.Context, userID int64, page PageRequest) ([]*domain.Review, int, error)

	// ListByRoomOwner returns reviews of every room owned by the user.
	ListByRoomOwner(ctx context.Context, ownerID int64, page PageRequest) ([]*domain.Review, int, error)

	// ListByExperienceHost returns reviews of every experience hosted by the user.
	ListByExperienceHost(ctx context.Context, hostID int64, page PageRequest) ([]*domain.Review, int, error)
}
