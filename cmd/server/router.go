package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/nestly-api/internal/api"
	apiMiddleware "github.com/phrazzld/nestly-api/internal/api/middleware"
	"github.com/phrazzld/nestly-api/internal/redact"
	"github.com/phrazzld/nestly-api/internal/service/oauth"
)

// loginBurst is the number of login attempts a client may make at once
// before the per-minute rate applies.
const loginBurst = 5

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if app.config.Server.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.sessions, app.userStore)
	r.Use(authMiddleware.Authenticate)

	roomHandler := api.NewRoomHandler(app.roomService, app.listingService, app.logger)
	amenityHandler := api.NewAmenityHandler(app.amenityService, app.logger)
	listingHandler := api.NewListingHandler(app.listingService, app.logger)
	accountHandler := api.NewAccountHandler(app.accountService, app.logger)
	loginLimiter := apiMiddleware.NewRateLimiter(app.config.Auth.LoginRatePerMinute, loginBurst)

	r.Get("/health", app.health)
	r.Get("/categories", listingHandler.Categories)

	r.Route("/amenities", func(r chi.Router) {
		r.Get("/", amenityHandler.List)
		r.Post("/", amenityHandler.Create)
		r.Get("/{id}", amenityHandler.Get)
		r.Put("/{id}", amenityHandler.Update)
		r.Delete("/{id}", amenityHandler.Delete)
	})

	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", roomHandler.List)
		r.Get("/{id}", roomHandler.Get)
		r.Get("/{id}/reviews", roomHandler.Reviews)
		r.Get("/{id}/amenities", roomHandler.Amenities)

		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireUser)
			r.Post("/", roomHandler.Create)
			r.Put("/{id}", roomHandler.Update)
			r.Delete("/{id}", roomHandler.Delete)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", accountHandler.Signup)

		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Limit)
			r.Post("/login", accountHandler.Login)
			r.Post("/social/github", accountHandler.SocialLogin(oauth.GitHub))
			r.Post("/social/kakao", accountHandler.SocialLogin(oauth.Kakao))
		})

		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireUser)
			r.Post("/logout", accountHandler.Logout)
			r.Post("/change-password", accountHandler.ChangePassword)
			r.Put("/change-password", accountHandler.ChangePassword)
			r.Get("/me", accountHandler.Me)
			r.Put("/me", accountHandler.UpdateMe)
		})

		r.Get("/{username}", listingHandler.PublicProfile)
		r.Get("/{username}/reviews", listingHandler.UserReviews)
		r.Get("/{username}/rooms", listingHandler.HostRooms)
		r.Get("/{username}/rooms/reviews", listingHandler.HostRoomReviews)
		r.Get("/{username}/experiences", listingHandler.HostExperiences)
		r.Get("/{username}/experiences/reviews", listingHandler.HostExperienceReviews)
	})

	return r
}

// health reports liveness and whether the database answers.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	if app.db != nil {
		if err := app.db.PingContext(r.Context()); err != nil {
			app.logger.Error("Health check failed", "error", redact.Error(err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
