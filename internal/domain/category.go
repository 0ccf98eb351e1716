package domain

import "time"

// CategoryKind discriminates which entity types a category may be attached to.
type CategoryKind string

const (
	// CategoryKindRooms applies to rooms.
	CategoryKindRooms CategoryKind = "rooms"

	// CategoryKindExperiences applies to experiences.
	CategoryKindExperiences CategoryKind = "experiences"
)

// Category groups rooms or experiences. Categories are managed outside this API.
type Category struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Kind      CategoryKind `json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// RequireKind returns a ValidationError wrapping ErrCategoryKindMismatch when
// the category does not apply to the given kind.
func (c *Category) RequireKind(kind CategoryKind) error {
	if c.Kind != kind {
		return NewValidationError(
			"category",
			"The category's kind should be '"+string(kind)+"'.",
			ErrCategoryKindMismatch,
		)
	}
	return nil
}
