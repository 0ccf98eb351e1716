package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/store"
)

// PostgresAmenityStore implements the store.AmenityStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAmenityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAmenityStore creates a new PostgreSQL implementation of the AmenityStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAmenityStore(db store.DBTX, logger *slog.Logger) *PostgresAmenityStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAmenityStore{
		db:     db,
		logger: logger.With(slog.String("component", "amenity_store")),
	}
}

// Ensure PostgresAmenityStore implements store.AmenityStore interface
var _ store.AmenityStore = (*PostgresAmenityStore)(nil)

// WithTx implements store.AmenityStore.WithTx
func (s *PostgresAmenityStore) WithTx(tx *sql.Tx) store.AmenityStore {
	return &PostgresAmenityStore{db: tx, logger: s.logger}
}

// Create implements store.AmenityStore.Create
func (s *PostgresAmenityStore) Create(ctx context.Context, amenity *domain.Amenity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO amenities (name, description) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		amenity.Name, amenity.Description,
	).Scan(&amenity.ID, &amenity.CreatedAt, &amenity.UpdatedAt)
	if err != nil {
		log.Error("failed to create amenity", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("amenity created", slog.Int64("amenity_id", amenity.ID))
	return nil
}

// GetByID implements store.AmenityStore.GetByID
func (s *PostgresAmenityStore) GetByID(ctx context.Context, id int64) (*domain.Amenity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var amenity domain.Amenity
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM amenities WHERE id = $1`, id,
	).Scan(&amenity.ID, &amenity.Name, &amenity.Description, &amenity.CreatedAt, &amenity.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("amenity not found", slog.Int64("amenity_id", id))
			return nil, store.ErrAmenityNotFound
		}
		log.Error("failed to get amenity",
			slog.String("error", err.Error()),
			slog.Int64("amenity_id", id))
		return nil, MapError(err)
	}

	return &amenity, nil
}

// Update implements store.AmenityStore.Update
func (s *PostgresAmenityStore) Update(ctx context.Context, amenity *domain.Amenity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	amenity.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`UPDATE amenities SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		amenity.Name, amenity.Description, amenity.UpdatedAt, amenity.ID,
	)
	if err != nil {
		log.Error("failed to update amenity",
			slog.String("error", err.Error()),
			slog.Int64("amenity_id", amenity.ID))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrAmenityNotFound)
}

// Delete implements store.AmenityStore.Delete
func (s *PostgresAmenityStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM amenities WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete amenity",
			slog.String("error", err.Error()),
			slog.Int64("amenity_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrAmenityNotFound); err != nil {
		return err
	}

	log.Info("amenity deleted", slog.Int64("amenity_id", id))
	return nil
}

// List implements store.AmenityStore.List
func (s *PostgresAmenityStore) List(ctx context.Context) ([]*domain.Amenity, error) {
	return s.query(ctx, `SELECT id, name, description, created_at, updated_at FROM amenities ORDER BY id`)
}

// ListByRoom implements store.AmenityStore.ListByRoom
func (s *PostgresAmenityStore) ListByRoom(
	ctx context.Context,
	roomID int64,
	page store.PageRequest,
) ([]*domain.Amenity, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM room_amenities WHERE room_id = $1`, roomID,
	).Scan(&total); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count room amenities",
			slog.String("error", err.Error()),
			slog.Int64("room_id", roomID))
		return nil, 0, MapError(err)
	}

	amenities, err := s.query(ctx, `
		SELECT a.id, a.name, a.description, a.created_at, a.updated_at
		FROM amenities a
		JOIN room_amenities ra ON ra.amenity_id = a.id
		WHERE ra.room_id = $1
		ORDER BY a.id
		LIMIT $2 OFFSET $3`,
		roomID, page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	return amenities, total, nil
}

func (s *PostgresAmenityStore) query(ctx context.Context, query string, args ...any) ([]*domain.Amenity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query amenities", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	amenities := make([]*domain.Amenity, 0)
	for rows.Next() {
		var a domain.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			log.Error("failed to scan amenity", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		amenities = append(amenities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return amenities, nil
}
