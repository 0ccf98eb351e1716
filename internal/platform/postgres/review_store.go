package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/store"
)

const reviewFrom = `
	FROM reviews rv
	JOIN users u ON u.id = rv.user_id
	LEFT JOIN rooms r ON r.id = rv.room_id
	LEFT JOIN experiences e ON e.id = rv.experience_id
`

const reviewSelect = `
	SELECT rv.id, rv.user_id, rv.room_id, rv.experience_id, rv.payload, rv.rating,
		rv.created_at, rv.updated_at, u.username, u.name, u.avatar,
		COALESCE(r.name, ''), COALESCE(e.name, '')
` + reviewFrom

// PostgresReviewStore implements the store.ReviewStore interface.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// ListByRoom implements store.ReviewStore.ListByRoom
func (s *PostgresReviewStore) ListByRoom(
	ctx context.Context,
	roomID int64,
	page store.PageRequest,
) ([]*domain.Review, int, error) {
	return s.list(ctx, "rv.room_id = $1", roomID, page)
}

// ListByUser implements store.ReviewStore.ListByUser
func (s *PostgresReviewStore) ListByUser(
	ctx context.Context,
	userID int64,
	page store.PageRequest,
) ([]*domain.Review, int, error) {
	return s.list(ctx, "rv.user_id = $1", userID, page)
}

// ListByRoomOwner implements store.ReviewStore.ListByRoomOwner
func (s *PostgresReviewStore) ListByRoomOwner(
	ctx context.Context,
	ownerID int64,
	page store.PageRequest,
) ([]*domain.Review, int, error) {
	return s.list(ctx, "r.owner_id = $1", ownerID, page)
}

// ListByExperienceHost implements store.ReviewStore.ListByExperienceHost
func (s *PostgresReviewStore) ListByExperienceHost(
	ctx context.Context,
	hostID int64,
	page store.PageRequest,
) ([]*domain.Review, int, error) {
	return s.list(ctx, "e.host_id = $1", hostID, page)
}

// list counts the filtered set, then loads one page of it newest first.
func (s *PostgresReviewStore) list(
	ctx context.Context,
	filter string,
	id int64,
	page store.PageRequest,
) ([]*domain.Review, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("filter", filter))

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) `+reviewFrom+` WHERE `+filter, id).Scan(&total); err != nil {
		log.Error("failed to count reviews", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	rows, err := s.db.QueryContext(ctx,
		reviewSelect+` WHERE `+filter+` ORDER BY rv.created_at DESC, rv.id DESC LIMIT $2 OFFSET $3`,
		id, page.Limit(), page.Offset(),
	)
	if err != nil {
		log.Error("failed to query reviews", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var (
			rv           domain.Review
			author       domain.UserSummary
			roomID       sql.NullInt64
			experienceID sql.NullInt64
		)
		err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&roomID,
			&experienceID,
			&rv.Payload,
			&rv.Rating,
			&rv.CreatedAt,
			&rv.UpdatedAt,
			&author.Username,
			&author.Name,
			&author.Avatar,
			&rv.RoomName,
			&rv.ExperienceName,
		)
		if err != nil {
			log.Error("failed to scan review", slog.String("error", err.Error()))
			return nil, 0, MapError(err)
		}
		author.ID = rv.UserID
		rv.Author = &author
		rv.RoomID = int64Ptr(roomID)
		rv.ExperienceID = int64Ptr(experienceID)
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	return reviews, total, nil
}
