package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/store"
)

// ListingService serves the read-only, paginated listings scoped by room or
// user. Every listing is ordered newest first.
type ListingService interface {
	RoomReviews(ctx context.Context, roomID int64, page int) (*Page[*domain.Review], error)
	RoomAmenities(ctx context.Context, roomID int64, page int) (*Page[*domain.Amenity], error)
	UserReviews(ctx context.Context, username string, page int) (*Page[*domain.Review], error)
	HostRooms(ctx context.Context, username string, page int) (*Page[*domain.Room], error)
	HostRoomReviews(ctx context.Context, username string, page int) (*Page[*domain.Review], error)
	HostExperiences(ctx context.Context, username string, page int) (*Page[*domain.Experience], error)
	HostExperienceReviews(ctx context.Context, username string, page int) (*Page[*domain.Review], error)
	PublicProfile(ctx context.Context, username string) (*domain.User, error)
	Categories(ctx context.Context) ([]*domain.Category, error)
}

// ListingStores groups the stores ListingService reads from.
type ListingStores struct {
	Users       store.UserStore
	Rooms       store.RoomStore
	Amenities   store.AmenityStore
	Categories  store.CategoryStore
	Reviews     store.ReviewStore
	Experiences store.ExperienceStore
}

type listingServiceImpl struct {
	stores   ListingStores
	pageSize int
	logger   *slog.Logger
}

// NewListingService creates a ListingService that serves pages of pageSize items.
func NewListingService(stores ListingStores, pageSize int, logger *slog.Logger) (ListingService, error) {
	switch {
	case stores.Users == nil:
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	case stores.Rooms == nil:
		return nil, domain.NewValidationError("rooms", "cannot be nil", domain.ErrValidation)
	case stores.Amenities == nil:
		return nil, domain.NewValidationError("amenities", "cannot be nil", domain.ErrValidation)
	case stores.Categories == nil:
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	case stores.Reviews == nil:
		return nil, domain.NewValidationError("reviews", "cannot be nil", domain.ErrValidation)
	case stores.Experiences == nil:
		return nil, domain.NewValidationError("experiences", "cannot be nil", domain.ErrValidation)
	}
	if pageSize <= 0 {
		return nil, domain.NewValidationError("pageSize", "must be positive", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &listingServiceImpl{
		stores:   stores,
		pageSize: pageSize,
		logger:   logger.With(slog.String("component", "listing_service")),
	}, nil
}

func (s *listingServiceImpl) pageRequest(page int) (store.PageRequest, error) {
	if page < 1 {
		return store.PageRequest{}, domain.NewValidationError("page", "Invalid page.", domain.ErrValidation)
	}
	return store.PageRequest{Page: page, Size: s.pageSize}, nil
}

// RoomReviews implements ListingService.RoomReviews
func (s *listingServiceImpl) RoomReviews(ctx context.Context, roomID int64, page int) (*Page[*domain.Review], error) {
	req, err := s.pageRequest(page)
	if err != nil {
		return nil, err
	}
	if _, err := s.stores.Rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	reviews, total, err := s.stores.Reviews.ListByRoom(ctx, roomID, req)
	if err != nil {
		return nil, err
	}
	return newPage(reviews, req, total), nil
}

// RoomAmenities implements ListingService.RoomAmenities
func (s *listingServiceImpl) RoomAmenities(ctx context.Context, roomID int64, page int) (*Page[*domain.Amenity], error) {
	req, err := s.pageRequest(page)
	if err != nil {
		return nil, err
	}
	if _, err := s.stores.Rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	amenities, total, err := s.stores.Amenities.ListByRoom(ctx, roomID, req)
	if err != nil {
		return nil, err
	}
	return newPage(amenities, req, total), nil
}

// UserReviews implements ListingService.UserReviews
func (s *listingServiceImpl) UserReviews(ctx context.Context, username string, page int) (*Page[*domain.Review], error) {
	req, err := s.pageRequest(page)
	if err != nil {
		return nil, err
	}
	user, err := s.stores.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	reviews, total, err := s.stores.Reviews.ListByUser(ctx, user.ID, req)
	if err != nil {
		return nil, err
	}
	return newPage(reviews, req, total), nil
}

// HostRooms implements ListingService.HostRooms
func (s *listingServiceImpl) HostRooms(ctx context.Context, username string, page int) (*Page[*domain.Room], error) {
	req, host, err := s.hostPage(ctx, username, page)
	if err != nil {
		return nil, err
	}
	rooms, total, err := s.stores.Rooms.ListByOwner(ctx, host.ID, req)
	if err != nil {
		return nil, err
	}
	return newPage(rooms, req, total), nil
}

// HostRoomReviews implements ListingService.HostRoomReviews
func (s *listingServiceImpl) HostRoomReviews(ctx context.Context, username string, page int) (*Page[*domain.Review], error) {
	req, host, err := s.hostPage(ctx, username, page)
	if err != nil {
		return nil, err
	}
	reviews, total, err := s.stores.Reviews.ListByRoomOwner(ctx, host.ID, req)
	if err != nil {
		return nil, err
	}
	return newPage(reviews, req, total), nil
}

// HostExperiences implements ListingService.HostExperiences
func (s *listingServiceImpl) HostExperiences(
	ctx context.Context,
	username string,
	page int,
) (*Page[*domain.Experience], error) {
	req, host, err := s.hostPage(ctx, username, page)
	if err != nil {
		return nil, err
	}
	experiences, total, err := s.stores.Experiences.ListByHost(ctx, host.ID, req)
	if err != nil {
		return nil, err
	}
	return newPage(experiences, req, total), nil
}

// HostExperienceReviews implements ListingService.HostExperienceReviews
func (s *listingServiceImpl) HostExperienceReviews(
	ctx context.Context,
	username string,
	page int,
) (*Page[*domain.Review], error) {
	req, host, err := s.hostPage(ctx, username, page)
	if err != nil {
		return nil, err
	}
	reviews, total, err := s.stores.Reviews.ListByExperienceHost(ctx, host.ID, req)
	if err != nil {
		return nil, err
	}
	return newPage(reviews, req, total), nil
}

// PublicProfile implements ListingService.PublicProfile
func (s *listingServiceImpl) PublicProfile(ctx context.Context, username string) (*domain.User, error) {
	return s.stores.Users.GetByUsername(ctx, username)
}

// Categories implements ListingService.Categories
func (s *listingServiceImpl) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.stores.Categories.List(ctx)
}

// hostPage resolves the page and the user, rejecting users who are not hosts.
func (s *listingServiceImpl) hostPage(
	ctx context.Context,
	username string,
	page int,
) (store.PageRequest, *domain.User, error) {
	req, err := s.pageRequest(page)
	if err != nil {
		return store.PageRequest{}, nil, err
	}
	user, err := s.stores.Users.GetByUsername(ctx, username)
	if err != nil {
		return store.PageRequest{}, nil, err
	}
	if !user.IsHost {
		return store.PageRequest{}, nil, domain.NewValidationError("", "This user is not a host.", nil)
	}
	return req, user, nil
}
