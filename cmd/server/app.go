package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/nestly-api/internal/config"
	"github.com/phrazzld/nestly-api/internal/platform/postgres"
	"github.com/phrazzld/nestly-api/internal/service"
	"github.com/phrazzld/nestly-api/internal/service/auth"
	"github.com/phrazzld/nestly-api/internal/service/oauth"
	"github.com/phrazzld/nestly-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	userStore store.UserStore
	sessions  *auth.SessionManager

	roomService    service.RoomService
	listingService service.ListingService
	amenityService service.AmenityService
	accountService service.AccountService
}

// newApplication creates a new application instance with all dependencies
// initialized. The database connection must already be established.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	roomStore := postgres.NewPostgresRoomStore(db, logger)
	amenityStore := postgres.NewPostgresAmenityStore(db, logger)
	categoryStore := postgres.NewPostgresCategoryStore(db, logger)
	reviewStore := postgres.NewPostgresReviewStore(db, logger)
	experienceStore := postgres.NewPostgresExperienceStore(db, logger)

	// Sessions
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	sessionStore, err := app.newSessionStore(ctx)
	if err != nil {
		return nil, err
	}
	app.sessions = auth.NewSessionManager(jwtService, sessionStore, logger)
	logger.Info("Session manager initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	providers := oauth.NewRegistryFromConfig(cfg.OAuth, logger)
	logger.Info("Social login providers registered", slog.Any("providers", providers.Names()))

	// Services
	app.roomService, err = service.NewRoomService(db, roomStore, amenityStore, categoryStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create room service: %w", err)
	}

	app.listingService, err = service.NewListingService(service.ListingStores{
		Users:       app.userStore,
		Rooms:       roomStore,
		Amenities:   amenityStore,
		Categories:  categoryStore,
		Reviews:     reviewStore,
		Experiences: experienceStore,
	}, cfg.Listing.PageSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing service: %w", err)
	}

	app.amenityService, err = service.NewAmenityService(amenityStore, cfg.Listing.AmenityWritePolicy, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create amenity service: %w", err)
	}

	app.accountService, err = service.NewAccountService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		app.sessions,
		providers,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// newSessionStore selects the revocation store: Redis when a URL is
// configured, otherwise an in-process map.
func (app *application) newSessionStore(ctx context.Context) (auth.SessionStore, error) {
	if app.config.Session.RedisURL == "" {
		app.logger.Info("Using in-memory session store")
		return auth.NewMemorySessionStore(), nil
	}

	opts, err := redis.ParseURL(app.config.Session.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid session redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to session redis: %w", err)
	}

	app.redis = client
	app.logger.Info("Using redis session store", slog.String("addr", opts.Addr))
	return auth.NewRedisSessionStore(client), nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}

	app.logger.Info("Application shutdown completed")
}
