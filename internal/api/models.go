package api

import (
	"time"

	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/service"
	"github.com/phrazzld/nestly-api/internal/service/auth"
)

// LoginRequest defines the payload for the password login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest defines the payload for the change-password endpoint.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// SocialLoginRequest carries the authorization code returned by the provider.
type SocialLoginRequest struct {
	Code string `json:"code"`
}

// SessionResponse is returned by the login endpoints.
type SessionResponse struct {
	OK        string              `json:"ok"`
	Token     string              `json:"token"`
	ExpiresAt string              `json:"expires_at"`
	User      PrivateUserResponse `json:"user"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	OK string `json:"ok"`
}

// TinyUserResponse is the compact user embedded in rooms and reviews.
type TinyUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// PublicUserResponse is what anyone may see about a user.
type PublicUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	IsHost   bool   `json:"is_host"`
	Gender   string `json:"gender"`
	Language string `json:"language"`
}

// PrivateUserResponse is the owner's view of their account.
type PrivateUserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	IsHost    bool   `json:"is_host"`
	Gender    string `json:"gender"`
	Language  string `json:"language"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CategoryResponse describes a category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// AmenityResponse describes an amenity.
type AmenityResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoomListResponse is the flat room shape used in listings.
type RoomListResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	City    string  `json:"city"`
	Price   int     `json:"price"`
	Rating  float64 `json:"rating"`
	IsOwner bool    `json:"is_owner"`
}

// RoomDetailResponse is the expanded room shape.
type RoomDetailResponse struct {
	ID          int64             `json:"id"`
	Owner       *TinyUserResponse `json:"owner"`
	Category    *CategoryResponse `json:"category"`
	Amenities   []AmenityResponse `json:"amenities"`
	Name        string            `json:"name"`
	Country     string            `json:"country"`
	City        string            `json:"city"`
	Price       int               `json:"price"`
	Rooms       int               `json:"rooms"`
	Toilets     int               `json:"toilets"`
	Description string            `json:"description"`
	Address     string            `json:"address"`
	PetFriendly bool              `json:"pet_friendly"`
	Kind        string            `json:"kind"`
	Rating      float64           `json:"rating"`
	IsOwner     bool              `json:"is_owner"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// ReviewResponse describes a review with its author.
type ReviewResponse struct {
	ID             int64             `json:"id"`
	User           *TinyUserResponse `json:"user"`
	Payload        string            `json:"payload"`
	Rating         int               `json:"rating"`
	Room           *int64            `json:"room,omitempty"`
	RoomName       string            `json:"room_name,omitempty"`
	Experience     *int64            `json:"experience,omitempty"`
	ExperienceName string            `json:"experience_name,omitempty"`
	CreatedAt      string            `json:"created_at"`
}

// ExperienceResponse describes an experience.
type ExperienceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Price       int    `json:"price"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Category    *int64 `json:"category"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
}

// PageInfo is the pagination metadata of a listing.
type PageInfo struct {
	Current    int `json:"current"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// PageResponse wraps one page of a listing.
type PageResponse[T any] struct {
	Page    PageInfo `json:"page"`
	Content []T      `json:"content"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toPageResponse[S any, T any](page *service.Page[S], convert func(S) T) PageResponse[T] {
	content := make([]T, 0, len(page.Content))
	for _, item := range page.Content {
		content = append(content, convert(item))
	}
	return PageResponse[T]{
		Page: PageInfo{
			Current:    page.Number,
			Size:       page.Size,
			TotalItems: page.TotalItems,
			TotalPages: page.TotalPages(),
		},
		Content: content,
	}
}

func toTinyUser(s *domain.UserSummary) *TinyUserResponse {
	if s == nil {
		return nil
	}
	return &TinyUserResponse{ID: s.ID, Username: s.Username, Name: s.Name, Avatar: s.Avatar}
}

func toPublicUser(u *domain.User) PublicUserResponse {
	return PublicUserResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Avatar:   u.Avatar,
		IsHost:   u.IsHost,
		Gender:   u.Gender,
		Language: u.Language,
	}
}

func toPrivateUser(u *domain.User) PrivateUserResponse {
	return PrivateUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		IsHost:    u.IsHost,
		Gender:    u.Gender,
		Language:  u.Language,
		Currency:  u.Currency,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

func toSessionResponse(u *domain.User, token *auth.Token) SessionResponse {
	return SessionResponse{
		OK:        "Welcome!",
		Token:     token.Value,
		ExpiresAt: formatTime(token.ExpiresAt),
		User:      toPrivateUser(u),
	}
}

func toCategory(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Kind: string(c.Kind)}
}

func toAmenity(a *domain.Amenity) AmenityResponse {
	return AmenityResponse{ID: a.ID, Name: a.Name, Description: a.Description}
}

func toRoomList(viewer *domain.User) func(*domain.Room) RoomListResponse {
	return func(r *domain.Room) RoomListResponse {
		return RoomListResponse{
			ID:      r.ID,
			Name:    r.Name,
			Country: r.Country,
			City:    r.City,
			Price:   r.Price,
			Rating:  r.Rating,
			IsOwner: r.IsOwnedBy(viewer),
		}
	}
}

func toRoomDetail(r *domain.Room, viewer *domain.User) RoomDetailResponse {
	resp := RoomDetailResponse{
		ID:          r.ID,
		Owner:       toTinyUser(r.Owner),
		Amenities:   make([]AmenityResponse, 0, len(r.Amenities)),
		Name:        r.Name,
		Country:     r.Country,
		City:        r.City,
		Price:       r.Price,
		Rooms:       r.Rooms,
		Toilets:     r.Toilets,
		Description: r.Description,
		Address:     r.Address,
		PetFriendly: r.PetFriendly,
		Kind:        string(r.Kind),
		Rating:      r.Rating,
		IsOwner:     r.IsOwnedBy(viewer),
		CreatedAt:   formatTime(r.CreatedAt),
		UpdatedAt:   formatTime(r.UpdatedAt),
	}
	if r.Category != nil {
		c := toCategory(r.Category)
		resp.Category = &c
	}
	for _, a := range r.Amenities {
		resp.Amenities = append(resp.Amenities, toAmenity(a))
	}
	return resp
}

func toReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:             r.ID,
		User:           toTinyUser(r.Author),
		Payload:        r.Payload,
		Rating:         r.Rating,
		Room:           r.RoomID,
		RoomName:       r.RoomName,
		Experience:     r.ExperienceID,
		ExperienceName: r.ExperienceName,
		CreatedAt:      formatTime(r.CreatedAt),
	}
}

func toExperience(e *domain.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:          e.ID,
		Name:        e.Name,
		Country:     e.Country,
		City:        e.City,
		Price:       e.Price,
		Address:     e.Address,
		Description: e.Description,
		Category:    e.CategoryID,
		StartsAt:    formatTime(e.StartsAt),
		EndsAt:      formatTime(e.EndsAt),
	}
}
