package store

import (
	"context"

	"github.com/phrazzld/nestly-api/internal/domain"
)

// CategoryStore provides read access to categories.
type CategoryStore interface {
	// GetByID retrieves a category by ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// List returns every category ordered by kind and name.
	List(ctx context.Context) ([]*domain.Category, error)
}
