package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/store"
)

// roomSelect loads a room with its owner summary, category and average rating.
const roomSelect = `
	SELECT r.id, r.owner_id, r.category_id, r.name, r.country, r.city, r.price, r.rooms, r.toilets,
		r.description, r.address, r.pet_friendly, r.kind, r.created_at, r.updated_at,
		u.username, u.name, u.avatar,
		c.name, c.kind, c.created_at, c.updated_at,
		COALESCE((SELECT ROUND(AVG(rv.rating)::numeric, 2) FROM reviews rv WHERE rv.room_id = r.id), 0)::float8
	FROM rooms r
	JOIN users u ON u.id = r.owner_id
	LEFT JOIN categories c ON c.id = r.category_id
`

// PostgresRoomStore implements the store.RoomStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRoomStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRoomStore creates a new PostgreSQL implementation of the RoomStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresRoomStore(db store.DBTX, logger *slog.Logger) *PostgresRoomStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRoomStore{
		db:     db,
		logger: logger.With(slog.String("component", "room_store")),
	}
}

// Ensure PostgresRoomStore implements store.RoomStore interface
var _ store.RoomStore = (*PostgresRoomStore)(nil)

// WithTx implements store.RoomStore.WithTx
func (s *PostgresRoomStore) WithTx(tx *sql.Tx) store.RoomStore {
	return &PostgresRoomStore{db: tx, logger: s.logger}
}

// Create implements store.RoomStore.Create
// Returns store.ErrInvalidEntity if the owner or category does not exist.
func (s *PostgresRoomStore) Create(ctx context.Context, room *domain.Room) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO rooms (owner_id, category_id, name, country, city, price, rooms, toilets,
			description, address, pet_friendly, kind)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		room.OwnerID,
		nullableID(room.CategoryID),
		room.Name,
		room.Country,
		room.City,
		room.Price,
		room.Rooms,
		room.Toilets,
		room.Description,
		room.Address,
		room.PetFriendly,
		string(room.Kind),
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		log.Error("failed to create room",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", room.OwnerID))
		return MapError(err)
	}

	log.Info("room created",
		slog.Int64("room_id", room.ID),
		slog.Int64("owner_id", room.OwnerID))
	return nil
}

// GetByID implements store.RoomStore.GetByID
// Returns store.ErrRoomNotFound if the room does not exist.
func (s *PostgresRoomStore) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	room, err := scanRoom(s.db.QueryRowContext(ctx, roomSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("room not found", slog.Int64("room_id", id))
			return nil, store.ErrRoomNotFound
		}
		log.Error("failed to get room",
			slog.String("error", err.Error()),
			slog.Int64("room_id", id))
		return nil, MapError(err)
	}

	return room, nil
}

// Update implements store.RoomStore.Update
// Returns store.ErrRoomNotFound if the room does not exist.
func (s *PostgresRoomStore) Update(ctx context.Context, room *domain.Room) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	room.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE rooms
		SET category_id = $1, name = $2, country = $3, city = $4, price = $5, rooms = $6,
			toilets = $7, description = $8, address = $9, pet_friendly = $10, kind = $11,
			updated_at = $12
		WHERE id = $13
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		nullableID(room.CategoryID),
		room.Name,
		room.Country,
		room.City,
		room.Price,
		room.Rooms,
		room.Toilets,
		room.Description,
		room.Address,
		room.PetFriendly,
		string(room.Kind),
		room.UpdatedAt,
		room.ID,
	)
	if err != nil {
		log.Error("failed to update room",
			slog.String("error", err.Error()),
			slog.Int64("room_id", room.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrRoomNotFound); err != nil {
		return err
	}

	log.Debug("room updated", slog.Int64("room_id", room.ID))
	return nil
}

// Delete implements store.RoomStore.Delete
// Amenity links and reviews are removed by ON DELETE CASCADE.
func (s *PostgresRoomStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete room",
			slog.String("error", err.Error()),
			slog.Int64("room_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrRoomNotFound); err != nil {
		return err
	}

	log.Info("room deleted", slog.Int64("room_id", id))
	return nil
}

// List implements store.RoomStore.List
func (s *PostgresRoomStore) List(ctx context.Context) ([]*domain.Room, error) {
	return s.query(ctx, roomSelect+` ORDER BY r.created_at DESC, r.id DESC`)
}

// ListByOwner implements store.RoomStore.ListByOwner
func (s *PostgresRoomStore) ListByOwner(
	ctx context.Context,
	ownerID int64,
	page store.PageRequest,
) ([]*domain.Room, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rooms WHERE owner_id = $1`, ownerID,
	).Scan(&total); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count rooms",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", ownerID))
		return nil, 0, MapError(err)
	}

	rooms, err := s.query(ctx,
		roomSelect+` WHERE r.owner_id = $1 ORDER BY r.created_at DESC, r.id DESC LIMIT $2 OFFSET $3`,
		ownerID, page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

// ReplaceAmenities implements store.RoomStore.ReplaceAmenities
func (s *PostgresRoomStore) ReplaceAmenities(ctx context.Context, roomID int64, amenityIDs []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM room_amenities WHERE room_id = $1`, roomID); err != nil {
		log.Error("failed to clear room amenities",
			slog.String("error", err.Error()),
			slog.Int64("room_id", roomID))
		return store.NewStoreError("room", "replace_amenities", "failed to clear amenities", MapError(err))
	}

	for _, amenityID := range amenityIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO room_amenities (room_id, amenity_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			roomID, amenityID,
		)
		if err != nil {
			log.Error("failed to link amenity",
				slog.String("error", err.Error()),
				slog.Int64("room_id", roomID),
				slog.Int64("amenity_id", amenityID))
			return store.NewStoreError("room", "replace_amenities",
				fmt.Sprintf("failed to link amenity %d", amenityID), MapError(err))
		}
	}

	log.Debug("room amenities replaced",
		slog.Int64("room_id", roomID),
		slog.Int("count", len(amenityIDs)))
	return nil
}

func (s *PostgresRoomStore) query(ctx context.Context, query string, args ...any) ([]*domain.Room, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query rooms", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			log.Error("failed to scan room", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating rooms", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return rooms, nil
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var (
		room         domain.Room
		owner        domain.UserSummary
		kind         string
		categoryID   sql.NullInt64
		categoryName sql.NullString
		categoryKind sql.NullString
		categoryCAt  sql.NullTime
		categoryUAt  sql.NullTime
	)

	err := row.Scan(
		&room.ID,
		&room.OwnerID,
		&categoryID,
		&room.Name,
		&room.Country,
		&room.City,
		&room.Price,
		&room.Rooms,
		&room.Toilets,
		&room.Description,
		&room.Address,
		&room.PetFriendly,
		&kind,
		&room.CreatedAt,
		&room.UpdatedAt,
		&owner.Username,
		&owner.Name,
		&owner.Avatar,
		&categoryName,
		&categoryKind,
		&categoryCAt,
		&categoryUAt,
		&room.Rating,
	)
	if err != nil {
		return nil, err
	}

	room.Kind = domain.RoomKind(kind)
	owner.ID = room.OwnerID
	room.Owner = &owner
	if categoryID.Valid {
		room.CategoryID = categoryID.Int64
		room.Category = &domain.Category{
			ID:        categoryID.Int64,
			Name:      categoryName.String,
			Kind:      domain.CategoryKind(categoryKind.String),
			CreatedAt: categoryCAt.Time,
			UpdatedAt: categoryUAt.Time,
		}
	}

	return &room, nil
}
