package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/nestly-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		SchemaName:     "public",
		TableName:      "users",
		ColumnName:     "email",
		ConstraintName: constraint,
	}
}

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique violation", err: newPgError(uniqueViolationCode, "x"), wantIs: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError(foreignKeyViolationCode, "rooms_owner_id_fkey"), wantIs: store.ErrInvalidEntity},
		{name: "check violation", err: newPgError(checkViolationCode, "rooms_price_check"), wantIs: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError(notNullViolationCode, ""), wantIs: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantIs)
		})
	}

	t.Run("unmapped error passes through", func(t *testing.T) {
		err := errors.New("connection refused")
		assert.Equal(t, err, MapError(err))
	})
}

func TestMapError_WrappedDriverError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("insert room: %w", newPgError(foreignKeyViolationCode, "rooms_category_id_fkey"))
	got := MapError(wrapped)

	assert.ErrorIs(t, got, store.ErrInvalidEntity)
	assert.Contains(t, got.Error(), "rooms_category_id_fkey")

	unknown := fmt.Errorf("query: %w", newPgError("40001", ""))
	assert.Equal(t, unknown, MapError(unknown))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrRoomNotFound))
	assert.ErrorIs(t, CheckRowsAffected(mockResult{rowsAffected: 0}, store.ErrRoomNotFound), store.ErrRoomNotFound)
	assert.ErrorIs(t, CheckRowsAffected(mockResult{rowsAffected: 0}, nil), store.ErrNotFound)

	resultErr := errors.New("driver exploded")
	assert.ErrorIs(t, CheckRowsAffected(mockResult{err: resultErr}, nil), resultErr)
	assert.Error(t, CheckRowsAffected(nil, nil))
}

func TestMapUserUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, mapUserUniqueViolation(newPgError(uniqueViolationCode, usersEmailConstraint)), store.ErrEmailExists)
	assert.ErrorIs(t, mapUserUniqueViolation(newPgError(uniqueViolationCode, usersUsernameConstraint)), store.ErrUsernameExists)

	other := mapUserUniqueViolation(newPgError(uniqueViolationCode, "something_else"))
	assert.ErrorIs(t, other, store.ErrDuplicate)
	assert.NotErrorIs(t, other, store.ErrEmailExists)

	assert.ErrorIs(t, mapUserUniqueViolation(sql.ErrNoRows), store.ErrNotFound)
}
