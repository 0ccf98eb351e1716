package domain

import "time"

// Experience is an activity hosted by a user.
type Experience struct {
	ID          int64
	HostID      int64
	CategoryID  *int64
	Name        string
	Country     string
	City        string
	Price       int
	Address     string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
