package domain

import "time"

// Amenity is a feature a room can offer. Amenities are shared across all rooms.
type Amenity struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
