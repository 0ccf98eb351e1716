package store

import (
	"context"

	"github.com/phrazzld/nestly-api/internal/domain"
)

// ExperienceStore provides read access to experiences.
type ExperienceStore interface {
	// ListByHost returns one page of the host's experiences, newest first,
	// and the total number the host has.
	ListByHost(ctx context.Context, hostID int64, page PageRequest) ([]*domain.Experience, int, error)
}
