//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver
	"github.com/phrazzld/nestly-api/internal/platform/postgres"
)

// URL environment variables, in lookup order.
var urlEnvVars = []string{"NESTLY_TEST_DATABASE_URL", "NESTLY_DATABASE_URL", "DATABASE_URL"}

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDatabaseURL returns the first configured test database URL, or ""
// when none is set.
func GetTestDatabaseURL() string {
	for _, name := range urlEnvVars {
		if url := os.Getenv(name); url != "" {
			return url
		}
	}
	return ""
}

// Open connects to the test database, applying migrations once per test
// binary. The test is skipped when no database URL is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("no test database configured; set NESTLY_TEST_DATABASE_URL")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("test database unreachable: %v", err)
	}

	migrateOnce.Do(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		migrateErr = postgres.Migrate(context.Background(), db, postgres.MigrateUp, logger)
	})
	if migrateErr != nil {
		t.Fatalf("failed to migrate test database: %v", migrateErr)
	}
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// leave no rows behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
