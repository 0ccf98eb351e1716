package domain

import "time"

// RoomKind describes how much of a place a guest gets.
type RoomKind string

// Room kinds.
const (
	RoomKindEntirePlace RoomKind = "entire_place"
	RoomKindPrivateRoom RoomKind = "private_room"
	RoomKindSharedRoom  RoomKind = "shared_room"
)

// Room is a listing owned by a host.
//
// Owner, Category and Amenities are populated by stores when a room is loaded
// for display; writes only use the corresponding IDs.
type Room struct {
	ID          int64
	OwnerID     int64
	CategoryID  int64
	Name        string
	Country     string
	City        string
	Price       int
	Rooms       int
	Toilets     int
	Description string
	Address     string
	PetFriendly bool
	Kind        RoomKind
	Rating      float64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner     *UserSummary
	Category  *Category
	Amenities []*Amenity
}

// IsOwnedBy reports whether the given user owns the room.
func (r *Room) IsOwnedBy(user *User) bool {
	return user != nil && user.ID == r.OwnerID
}
