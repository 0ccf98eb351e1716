package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/service"
	"github.com/phrazzld/nestly-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mountListings(h *ListingHandler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/categories", h.Categories)
		r.Get("/users/{username}", h.PublicProfile)
		r.Get("/users/{username}/reviews", h.UserReviews)
		r.Get("/users/{username}/rooms", h.HostRooms)
		r.Get("/users/{username}/rooms/reviews", h.HostRoomReviews)
		r.Get("/users/{username}/experiences", h.HostExperiences)
		r.Get("/users/{username}/experiences/reviews", h.HostExperienceReviews)
	}
}

func TestListingHandler_HostRooms(t *testing.T) {
	t.Run("non-host is rejected", func(t *testing.T) {
		listings := new(MockListingService)
		h := NewListingHandler(listings, testLogger())
		listings.On("HostRooms", mock.Anything, "bob", 1).
			Return(nil, domain.NewValidationError("", "This user is not a host.", nil))

		rec := httptest.NewRecorder()
		newTestRouter(nil, mountListings(h)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/bob/rooms", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "This user is not a host.", decodeError(t, rec))
	})

	t.Run("host rooms page", func(t *testing.T) {
		listings := new(MockListingService)
		h := NewListingHandler(listings, testLogger())
		listings.On("HostRooms", mock.Anything, "alice", 1).Return(&service.Page[*domain.Room]{
			Content: []*domain.Room{sampleRoom()}, Number: 1, Size: 10, TotalItems: 1,
		}, nil)

		rec := httptest.NewRecorder()
		newTestRouter(alice, mountListings(h)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/alice/rooms", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp PageResponse[RoomListResponse]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Page.TotalPages)
		require.Len(t, resp.Content, 1)
		assert.True(t, resp.Content[0].IsOwner)
	})

	t.Run("unknown user", func(t *testing.T) {
		listings := new(MockListingService)
		h := NewListingHandler(listings, testLogger())
		listings.On("HostRooms", mock.Anything, "ghost", 1).Return(nil, store.ErrUserNotFound)

		rec := httptest.NewRecorder()
		newTestRouter(nil, mountListings(h)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/ghost/rooms", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found.", decodeError(t, rec))
	})
}

func TestListingHandler_PublicProfile(t *testing.T) {
	listings := new(MockListingService)
	h := NewListingHandler(listings, testLogger())
	listings.On("PublicProfile", mock.Anything, "alice").Return(alice, nil)

	rec := httptest.NewRecorder()
	newTestRouter(nil, mountListings(h)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/alice", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, true, body["is_host"])
	assert.NotContains(t, body, "email")
}

func TestListingHandler_ReviewRoutes(t *testing.T) {
	listings := new(MockListingService)
	h := NewListingHandler(listings, testLogger())
	expID := int64(4)
	reviews := &service.Page[*domain.Review]{
		Content:    []*domain.Review{{ID: 8, ExperienceID: &expID, ExperienceName: "Food tour", Rating: 4}},
		Number:     1,
		Size:       10,
		TotalItems: 1,
	}
	listings.On("UserReviews", mock.Anything, "bob", 1).Return(reviews, nil)
	listings.On("HostRoomReviews", mock.Anything, "alice", 3).Return(&service.Page[*domain.Review]{
		Content: []*domain.Review{}, Number: 3, Size: 10, TotalItems: 12,
	}, nil)
	listings.On("HostExperienceReviews", mock.Anything, "alice", 1).Return(reviews, nil)

	router := newTestRouter(nil, mountListings(h))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/bob/reviews", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp PageResponse[ReviewResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "Food tour", resp.Content[0].ExperienceName)
	assert.Nil(t, resp.Content[0].Room)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/alice/rooms/reviews?page=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"page":{"current":3,"size":10,"total_items":12,"total_pages":2},"content":[]}`,
		rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/alice/experiences/reviews", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/alice/rooms/reviews?page=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	listings.AssertExpectations(t)
}

func TestListingHandler_HostExperiences(t *testing.T) {
	listings := new(MockListingService)
	h := NewListingHandler(listings, testLogger())
	starts := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	listings.On("HostExperiences", mock.Anything, "alice", 1).Return(&service.Page[*domain.Experience]{
		Content: []*domain.Experience{{
			ID:       4,
			HostID:   alice.ID,
			Name:     "Food tour",
			StartsAt: starts,
			EndsAt:   starts.Add(2 * time.Hour),
		}},
		Number:     1,
		Size:       10,
		TotalItems: 1,
	}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(nil, mountListings(h)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/alice/experiences", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PageResponse[ExperienceResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "2024-05-01T09:00:00Z", resp.Content[0].StartsAt)
	assert.Equal(t, "2024-05-01T11:00:00Z", resp.Content[0].EndsAt)
}

func TestListingHandler_Categories(t *testing.T) {
	listings := new(MockListingService)
	h := NewListingHandler(listings, testLogger())
	listings.On("Categories", mock.Anything).Return([]*domain.Category{
		{ID: 1, Name: "Cabins", Kind: domain.CategoryKindRooms},
		{ID: 5, Name: "Food tours", Kind: domain.CategoryKindExperiences},
	}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(nil, mountListings(h)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"id":1,"name":"Cabins","kind":"rooms"},{"id":5,"name":"Food tours","kind":"experiences"}]`,
		rec.Body.String())
}
