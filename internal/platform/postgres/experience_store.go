package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/store"
)

// PostgresExperienceStore implements the store.ExperienceStore interface.
type PostgresExperienceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExperienceStore creates a new PostgreSQL implementation of the ExperienceStore interface.
func NewPostgresExperienceStore(db store.DBTX, logger *slog.Logger) *PostgresExperienceStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresExperienceStore{
		db:     db,
		logger: logger.With(slog.String("component", "experience_store")),
	}
}

var _ store.ExperienceStore = (*PostgresExperienceStore)(nil)

// ListByHost implements store.ExperienceStore.ListByHost
func (s *PostgresExperienceStore) ListByHost(
	ctx context.Context,
	hostID int64,
	page store.PageRequest,
) ([]*domain.Experience, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM experiences WHERE host_id = $1`, hostID,
	).Scan(&total); err != nil {
		log.Error("failed to count experiences",
			slog.String("error", err.Error()),
			slog.Int64("host_id", hostID))
		return nil, 0, MapError(err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, host_id, category_id, name, country, city, price, address, description,
			starts_at, ends_at, created_at, updated_at
		FROM experiences
		WHERE host_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		hostID, page.Limit(), page.Offset(),
	)
	if err != nil {
		log.Error("failed to query experiences", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	experiences := make([]*domain.Experience, 0)
	for rows.Next() {
		var (
			e          domain.Experience
			categoryID sql.NullInt64
		)
		err := rows.Scan(
			&e.ID,
			&e.HostID,
			&categoryID,
			&e.Name,
			&e.Country,
			&e.City,
			&e.Price,
			&e.Address,
			&e.Description,
			&e.StartsAt,
			&e.EndsAt,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan experience", slog.String("error", err.Error()))
			return nil, 0, MapError(err)
		}
		e.CategoryID = int64Ptr(categoryID)
		experiences = append(experiences, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	return experiences, total, nil
}
