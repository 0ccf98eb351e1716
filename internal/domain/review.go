package domain

import "time"

// Review is a rating left by a user on either a room or an experience.
type Review struct {
	ID           int64
	UserID       int64
	RoomID       *int64
	ExperienceID *int64
	Payload      string
	Rating       int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Populated by read queries.
	Author         *UserSummary
	RoomName       string
	ExperienceName string
}
