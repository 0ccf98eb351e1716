package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/nestly-api/internal/api/shared"
	"github.com/phrazzld/nestly-api/internal/service"
)

// ListingHandler serves the read-only public listings: user profiles, their
// reviews, host catalogs and categories.
type ListingHandler struct {
	listings service.ListingService
	logger   *slog.Logger
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listings service.ListingService, logger *slog.Logger) *ListingHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ListingHandler")
	}

	return &ListingHandler{
		listings: listings,
		logger:   logger.With(slog.String("component", "listing_handler")),
	}
}

// Categories handles GET /categories
func (h *ListingHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listings.Categories(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, toCategory(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// PublicProfile handles GET /users/{username}
func (h *ListingHandler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.listings.PublicProfile(r.Context(), usernameParam(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toPublicUser(user))
}

// UserReviews handles GET /users/{username}/reviews
func (h *ListingHandler) UserReviews(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, h.listings.UserReviews, toReview)
}

// HostRooms handles GET /users/{username}/rooms
func (h *ListingHandler) HostRooms(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, h.listings.HostRooms, toRoomList(shared.UserFromContext(r.Context())))
}

// HostRoomReviews handles GET /users/{username}/rooms/reviews
func (h *ListingHandler) HostRoomReviews(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, h.listings.HostRoomReviews, toReview)
}

// HostExperiences handles GET /users/{username}/experiences
func (h *ListingHandler) HostExperiences(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, h.listings.HostExperiences, toExperience)
}

// HostExperienceReviews handles GET /users/{username}/experiences/reviews
func (h *ListingHandler) HostExperienceReviews(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, h.listings.HostExperienceReviews, toReview)
}

// servePage runs a username-scoped paginated listing and writes the page
// envelope.
func servePage[S any, T any](
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, username string, page int) (*service.Page[S], error),
	convert func(S) T,
) {
	page, ok := handlePageParam(w, r)
	if !ok {
		return
	}

	result, err := list(r.Context(), usernameParam(r), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list results")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toPageResponse(result, convert))
}

func usernameParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "username"))
}
