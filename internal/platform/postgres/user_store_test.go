package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{
	"id", "username", "email", "name", "avatar", "is_host", "gender", "language", "currency",
	"password_hash", "created_at", "updated_at",
}

func TestPostgresUserStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)
		now := time.Now().UTC()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice", "alice@example.com", "Alice", "", false, "", "", "", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

		user := &domain.User{Username: "alice", Email: "alice@example.com", Name: "Alice", HashedPassword: "hash"}
		require.NoError(t, s.Create(ctx, user))
		assert.Equal(t, int64(5), user.ID)
		assert.Equal(t, now, user.CreatedAt)
	})

	t.Run("maps email conflict", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(newPgError(uniqueViolationCode, usersEmailConstraint))

		err := s.Create(ctx, &domain.User{Username: "alice", Email: "alice@example.com"})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("maps username conflict", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(newPgError(uniqueViolationCode, usersUsernameConstraint))

		err := s.Create(ctx, &domain.User{Username: "alice", Email: "alice@example.com"})
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})
}

func TestPostgresUserStore_Get(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("by email normalizes input", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(
				int64(1), "alice", "alice@example.com", "Alice", "", true, "female", "en", "usd",
				"hash", now, now,
			))

		user, err := s.GetByEmail(ctx, "  Alice@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.True(t, user.IsHost)
		assert.Equal(t, "hash", user.HashedPassword)
	})

	t.Run("missing username", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = \\$1").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("driver failure is not a not-found", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int64(9)).
			WillReturnError(errors.New("connection reset"))

		_, err := s.GetByID(ctx, 9)
		require.Error(t, err)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestPostgresUserStore_UsernameExists(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.UsernameExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresUserStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(ctx, &domain.User{ID: 3, Username: "bob"})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("email taken", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectExec("UPDATE users").
			WillReturnError(newPgError(uniqueViolationCode, usersEmailConstraint))

		err := s.Update(ctx, &domain.User{ID: 3, Username: "bob", Email: "taken@example.com"})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("password", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectExec("UPDATE users SET password_hash").
			WithArgs("newhash", sqlmock.AnyArg(), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.UpdatePassword(ctx, 3, "newhash"))
	})
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET password_hash").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).UpdatePassword(ctx, 1, "h")
	})
	require.NoError(t, err)
}

func TestNewPostgresUserStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil, nil) })
}
