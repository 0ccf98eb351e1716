package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/nestly-api/internal/config"
	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/store"
)

// AmenityService manages the shared amenity catalogue.
type AmenityService interface {
	List(ctx context.Context) ([]*domain.Amenity, error)
	Get(ctx context.Context, id int64) (*domain.Amenity, error)
	Create(ctx context.Context, input AmenityInput, actor *domain.User) (*domain.Amenity, error)
	Update(ctx context.Context, id int64, input AmenityInput, actor *domain.User) (*domain.Amenity, error)
	Delete(ctx context.Context, id int64, actor *domain.User) error
}

type amenityServiceImpl struct {
	amenities store.AmenityStore
	policy    string
	logger    *slog.Logger
}

// NewAmenityService creates an AmenityService. policy is one of the
// config.AmenityWrite* values and decides who may write amenities.
func NewAmenityService(amenities store.AmenityStore, policy string, logger *slog.Logger) (AmenityService, error) {
	if amenities == nil {
		return nil, domain.NewValidationError("amenities", "cannot be nil", domain.ErrValidation)
	}
	switch policy {
	case "":
		policy = config.AmenityWriteOpen
	case config.AmenityWriteOpen, config.AmenityWriteAuthenticated, config.AmenityWriteHost:
	default:
		return nil, domain.NewValidationError("policy", "unknown amenity write policy", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &amenityServiceImpl{
		amenities: amenities,
		policy:    policy,
		logger:    logger.With(slog.String("component", "amenity_service")),
	}, nil
}

// List implements AmenityService.List
func (s *amenityServiceImpl) List(ctx context.Context) ([]*domain.Amenity, error) {
	return s.amenities.List(ctx)
}

// Get implements AmenityService.Get
func (s *amenityServiceImpl) Get(ctx context.Context, id int64) (*domain.Amenity, error) {
	return s.amenities.GetByID(ctx, id)
}

// Create implements AmenityService.Create
func (s *amenityServiceImpl) Create(
	ctx context.Context,
	input AmenityInput,
	actor *domain.User,
) (*domain.Amenity, error) {
	if err := s.authorizeWrite(actor); err != nil {
		return nil, err
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if input.Name == nil {
		fe := domain.FieldErrors{}
		fe.Add("name", "This field is required.")
		return nil, fe
	}

	amenity := &domain.Amenity{Name: *input.Name}
	if input.Description != nil {
		amenity.Description = *input.Description
	}
	if err := s.amenities.Create(ctx, amenity); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("amenity created",
		slog.Int64("amenity_id", amenity.ID))
	return amenity, nil
}

// Update implements AmenityService.Update
func (s *amenityServiceImpl) Update(
	ctx context.Context,
	id int64,
	input AmenityInput,
	actor *domain.User,
) (*domain.Amenity, error) {
	amenity, err := s.amenities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeWrite(actor); err != nil {
		return nil, err
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	if input.Name != nil {
		amenity.Name = *input.Name
	}
	if input.Description != nil {
		amenity.Description = *input.Description
	}
	if err := s.amenities.Update(ctx, amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}

// Delete implements AmenityService.Delete
func (s *amenityServiceImpl) Delete(ctx context.Context, id int64, actor *domain.User) error {
	if _, err := s.amenities.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.authorizeWrite(actor); err != nil {
		return err
	}
	if err := s.amenities.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("amenity deleted",
		slog.Int64("amenity_id", id))
	return nil
}

func (s *amenityServiceImpl) authorizeWrite(actor *domain.User) error {
	switch s.policy {
	case config.AmenityWriteAuthenticated:
		if actor == nil {
			return ErrAuthenticationRequired
		}
	case config.AmenityWriteHost:
		if actor == nil {
			return ErrAuthenticationRequired
		}
		if !actor.IsHost {
			return ErrPermissionDenied
		}
	}
	return nil
}
