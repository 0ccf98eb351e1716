package service

import (
	"strings"

	"github.com/phrazzld/nestly-api/internal/domain"
)

// RoomInput is a room payload. A nil field is absent: Create requires the
// core fields, Update changes only the fields that are present. A nil
// Amenities leaves the set alone while an empty slice clears it.
type RoomInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=180"`
	Country     *string `json:"country" validate:"omitempty,min=1,max=50"`
	City        *string `json:"city" validate:"omitempty,min=1,max=80"`
	Price       *int    `json:"price" validate:"omitempty,gte=0"`
	Rooms       *int    `json:"rooms" validate:"omitempty,gte=0"`
	Toilets     *int    `json:"toilets" validate:"omitempty,gte=0"`
	Description *string `json:"description"`
	Address     *string `json:"address" validate:"omitempty,min=1,max=250"`
	PetFriendly *bool   `json:"pet_friendly"`
	Kind        *string `json:"kind" validate:"omitempty,oneof=entire_place private_room shared_room"`
	Category    *int64  `json:"category"`
	Amenities   []int64 `json:"amenities"`
}

// missingForCreate lists the required fields absent from a create payload.
func (in *RoomInput) missingForCreate() domain.FieldErrors {
	fe := domain.FieldErrors{}
	required := map[string]bool{
		"name":        in.Name == nil,
		"country":     in.Country == nil,
		"city":        in.City == nil,
		"price":       in.Price == nil,
		"rooms":       in.Rooms == nil,
		"toilets":     in.Toilets == nil,
		"description": in.Description == nil,
		"address":     in.Address == nil,
		"kind":        in.Kind == nil,
	}
	for field, missing := range required {
		if missing {
			fe.Add(field, "This field is required.")
		}
	}
	return fe
}

// applyTo copies the present fields onto room. Category and amenities are
// resolved separately.
func (in *RoomInput) applyTo(room *domain.Room) {
	if in.Name != nil {
		room.Name = *in.Name
	}
	if in.Country != nil {
		room.Country = *in.Country
	}
	if in.City != nil {
		room.City = *in.City
	}
	if in.Price != nil {
		room.Price = *in.Price
	}
	if in.Rooms != nil {
		room.Rooms = *in.Rooms
	}
	if in.Toilets != nil {
		room.Toilets = *in.Toilets
	}
	if in.Description != nil {
		room.Description = *in.Description
	}
	if in.Address != nil {
		room.Address = *in.Address
	}
	if in.PetFriendly != nil {
		room.PetFriendly = *in.PetFriendly
	}
	if in.Kind != nil {
		room.Kind = domain.RoomKind(*in.Kind)
	}
}

// AmenityInput is an amenity payload. Create requires a name.
type AmenityInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description" validate:"omitempty,max=150"`
}

// SignupInput is the account creation payload.
type SignupInput struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password"`
	Name     string `json:"name" validate:"max=150"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
	IsHost   bool   `json:"is_host"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female"`
	Language string `json:"language" validate:"omitempty,oneof=kr en"`
	Currency string `json:"currency" validate:"omitempty,oneof=won usd"`
}

// ProfileInput is a partial private profile update.
type ProfileInput struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=150"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Name     *string `json:"name" validate:"omitempty,max=150"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
	IsHost   *bool   `json:"is_host"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female"`
	Language *string `json:"language" validate:"omitempty,oneof=kr en"`
	Currency *string `json:"currency" validate:"omitempty,oneof=won usd"`
}

func (in *ProfileInput) applyTo(user *domain.User) {
	if in.Username != nil {
		user.Username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		user.Email = domain.NormalizeEmail(*in.Email)
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.IsHost != nil {
		user.IsHost = *in.IsHost
	}
	if in.Gender != nil {
		user.Gender = *in.Gender
	}
	if in.Language != nil {
		user.Language = *in.Language
	}
	if in.Currency != nil {
		user.Currency = *in.Currency
	}
}

// duplicateFieldErrors renders a unique conflict on username or email as
// field errors.
func duplicateFieldErrors(field string) domain.FieldErrors {
	fe := domain.FieldErrors{}
	switch field {
	case "username":
		fe.Add("username", "A user with that username already exists.")
	case "email":
		fe.Add("email", "A user with that email already exists.")
	}
	return fe
}
