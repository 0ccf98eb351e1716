package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/store"
)

// PostgresCategoryStore implements the store.CategoryStore interface.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the CategoryStore interface.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		c    domain.Category
		kind string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, kind, created_at, updated_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &kind, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", slog.Int64("category_id", id))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, MapError(err)
	}
	c.Kind = domain.CategoryKind(kind)

	return &c, nil
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, created_at, updated_at FROM categories ORDER BY kind, name`)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var (
			c    domain.Category
			kind string
		)
		if err := rows.Scan(&c.ID, &c.Name, &kind, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, MapError(err)
		}
		c.Kind = domain.CategoryKind(kind)
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return categories, nil
}
