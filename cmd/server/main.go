// Package main implements the entry point for the nestly API server, a
// rental marketplace serving rooms, amenities, reviews and accounts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/nestly-api/internal/config"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		log.Fatalf("nestly-api: %v", err)
	}
}

// run loads configuration, opens the database and either executes a
// migration command or serves HTTP until ctx is canceled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := openDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDatabase(db, appLogger)
		return postgres.Migrate(ctx, db, migrateCmd, appLogger)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, appLogger); err != nil {
			closeDatabase(db, appLogger)
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		closeDatabase(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
