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

const userColumns = `id, username, email, name, avatar, is_host, gender, language, currency,
	password_hash, created_at, updated_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO users (username, email, name, avatar, is_host, gender, language, currency, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.Name,
		user.Avatar,
		user.IsHost,
		user.Gender,
		user.Language,
		user.Currency,
		user.HashedPassword,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		mapped := mapUserUniqueViolation(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("user already exists", slog.String("username", user.Username))
			return mapped
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return mapped
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getOne(ctx, "id = $1", id)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, "username = $1", username)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "email = $1", domain.NormalizeEmail(email))
}

func (s *PostgresUserStore) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Name,
		&user.Avatar,
		&user.IsHost,
		&user.Gender,
		&user.Language,
		&user.Currency,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("lookup", where))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &user, nil
}

// UsernameExists implements store.UserStore.UsernameExists
func (s *PostgresUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check username",
			slog.String("error", err.Error()))
		return false, MapError(err)
	}
	return exists, nil
}

// Update implements store.UserStore.Update
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE users
		SET username = $1, email = $2, name = $3, avatar = $4, is_host = $5,
			gender = $6, language = $7, currency = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.Name,
		user.Avatar,
		user.IsHost,
		user.Gender,
		user.Language,
		user.Currency,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		mapped := mapUserUniqueViolation(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to update user",
				slog.String("error", err.Error()),
				slog.Int64("user_id", user.ID))
		}
		return mapped
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Debug("user updated", slog.Int64("user_id", user.ID))
	return nil
}

// UpdatePassword implements store.UserStore.UpdatePassword
func (s *PostgresUserStore) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		hashedPassword, time.Now().UTC(), id,
	)
	if err != nil {
		log.Error("failed to update password",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("password updated", slog.Int64("user_id", id))
	return nil
}
