package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/redact"
	"github.com/phrazzld/nestly-api/internal/store"
)

// RoomService manages room listings.
type RoomService interface {
	// Create adds a room owned by actor.
	Create(ctx context.Context, input RoomInput, actor *domain.User) (*domain.Room, error)

	// Update applies a partial update. Only the owner may update a room.
	Update(ctx context.Context, roomID int64, input RoomInput, actor *domain.User) (*domain.Room, error)

	// Delete removes a room along with its amenity links and reviews.
	Delete(ctx context.Context, roomID int64, actor *domain.User) error

	// Get returns a room with owner, category and amenities populated.
	Get(ctx context.Context, roomID int64) (*domain.Room, error)

	// List returns every room, newest first.
	List(ctx context.Context) ([]*domain.Room, error)
}

type roomServiceImpl struct {
	db         store.TxBeginner
	rooms      store.RoomStore
	amenities  store.AmenityStore
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewRoomService creates a RoomService.
// It returns an error if any of the required dependencies are nil.
func NewRoomService(
	db store.TxBeginner,
	rooms store.RoomStore,
	amenities store.AmenityStore,
	categories store.CategoryStore,
	logger *slog.Logger,
) (RoomService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if rooms == nil {
		return nil, domain.NewValidationError("rooms", "cannot be nil", domain.ErrValidation)
	}
	if amenities == nil {
		return nil, domain.NewValidationError("amenities", "cannot be nil", domain.ErrValidation)
	}
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &roomServiceImpl{
		db:         db,
		rooms:      rooms,
		amenities:  amenities,
		categories: categories,
		logger:     logger.With(slog.String("component", "room_service")),
	}, nil
}

// Create implements RoomService.Create
func (s *roomServiceImpl) Create(ctx context.Context, input RoomInput, actor *domain.User) (*domain.Room, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if actor == nil {
		return nil, ErrAuthenticationRequired
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if fe := input.missingForCreate(); len(fe) > 0 {
		return nil, fe
	}

	if input.Category == nil || *input.Category == 0 {
		return nil, domain.NewValidationError("category", "Category is required.", nil)
	}
	category, err := s.resolveCategory(ctx, *input.Category)
	if err != nil {
		return nil, err
	}

	room := &domain.Room{
		OwnerID:     actor.ID,
		CategoryID:  category.ID,
		PetFriendly: true,
	}
	input.applyTo(room)

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txRooms := s.rooms.WithTx(tx)

		amenityIDs, err := resolveAmenities(ctx, s.amenities.WithTx(tx), input.Amenities)
		if err != nil {
			return err
		}
		if err := txRooms.Create(ctx, room); err != nil {
			return err
		}
		if len(amenityIDs) > 0 {
			return txRooms.ReplaceAmenities(ctx, room.ID, amenityIDs)
		}
		return nil
	})
	if err != nil {
		return nil, s.transactionFailure(ctx, "create", err)
	}

	log.Info("room created",
		slog.Int64("room_id", room.ID),
		slog.Int64("owner_id", actor.ID))

	return s.loadDetail(ctx, room.ID)
}

// Update implements RoomService.Update
func (s *roomServiceImpl) Update(
	ctx context.Context,
	roomID int64,
	input RoomInput,
	actor *domain.User,
) (*domain.Room, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	room, err := s.authorizeOwner(ctx, roomID, actor)
	if err != nil {
		return nil, err
	}

	if err := validateStruct(input); err != nil {
		return nil, err
	}

	if input.Category != nil {
		if *input.Category == 0 {
			return nil, domain.NewValidationError("category", "Category is required.", nil)
		}
		category, err := s.resolveCategory(ctx, *input.Category)
		if err != nil {
			return nil, err
		}
		room.CategoryID = category.ID
	}
	input.applyTo(room)

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txRooms := s.rooms.WithTx(tx)

		var amenityIDs []int64
		if input.Amenities != nil {
			ids, err := resolveAmenities(ctx, s.amenities.WithTx(tx), input.Amenities)
			if err != nil {
				return err
			}
			amenityIDs = ids
		}
		if err := txRooms.Update(ctx, room); err != nil {
			return err
		}
		if input.Amenities != nil {
			return txRooms.ReplaceAmenities(ctx, room.ID, amenityIDs)
		}
		return nil
	})
	if err != nil {
		return nil, s.transactionFailure(ctx, "update", err)
	}

	log.Info("room updated", slog.Int64("room_id", room.ID))

	return s.loadDetail(ctx, room.ID)
}

// Delete implements RoomService.Delete
func (s *roomServiceImpl) Delete(ctx context.Context, roomID int64, actor *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.authorizeOwner(ctx, roomID, actor); err != nil {
		return err
	}
	if err := s.rooms.Delete(ctx, roomID); err != nil {
		return err
	}

	log.Info("room deleted", slog.Int64("room_id", roomID))
	return nil
}

// Get implements RoomService.Get
func (s *roomServiceImpl) Get(ctx context.Context, roomID int64) (*domain.Room, error) {
	return s.loadDetail(ctx, roomID)
}

// List implements RoomService.List
func (s *roomServiceImpl) List(ctx context.Context) ([]*domain.Room, error) {
	return s.rooms.List(ctx)
}

// loadDetail reads a room together with its full amenity set.
func (s *roomServiceImpl) loadDetail(ctx context.Context, roomID int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	amenities, _, err := s.amenities.ListByRoom(ctx, roomID, store.All)
	if err != nil {
		return nil, err
	}
	room.Amenities = amenities
	return room, nil
}

// authorizeOwner loads the room and checks that actor owns it. Ownership is
// checked before any input is looked at.
func (s *roomServiceImpl) authorizeOwner(ctx context.Context, roomID int64, actor *domain.User) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrAuthenticationRequired
	}
	if !room.IsOwnedBy(actor) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("room access denied",
			slog.Int64("room_id", roomID),
			slog.Int64("owner_id", room.OwnerID),
			slog.Int64("actor_id", actor.ID))
		return nil, ErrPermissionDenied
	}
	return room, nil
}

func (s *roomServiceImpl) resolveCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, domain.NewValidationError("category", "Category not found.", err)
		}
		return nil, err
	}
	if err := category.RequireKind(domain.CategoryKindRooms); err != nil {
		return nil, err
	}
	return category, nil
}

// resolveAmenities checks that every id exists and returns them deduplicated
// in input order.
func resolveAmenities(ctx context.Context, amenities store.AmenityStore, ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	resolved := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		if _, err := amenities.GetByID(ctx, id); err != nil {
			if errors.Is(err, store.ErrAmenityNotFound) {
				return nil, domain.NewValidationError("amenities", "Amenity not found", err)
			}
			return nil, err
		}
		seen[id] = struct{}{}
		resolved = append(resolved, id)
	}
	return resolved, nil
}

// transactionFailure reports a rolled-back unit of work as a ValidationError.
func (s *roomServiceImpl) transactionFailure(ctx context.Context, operation string, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("room transaction rolled back",
		slog.String("operation", operation),
		slog.String("error", redact.Error(err)))
	return domain.NewValidationError("", redact.Error(err), err)
}
