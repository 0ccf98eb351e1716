package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/nestly-api/internal/api/shared"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/service"
)

// RoomHandler handles room-related HTTP requests
type RoomHandler struct {
	rooms    service.RoomService
	listings service.ListingService
	logger   *slog.Logger
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(rooms service.RoomService, listings service.ListingService, logger *slog.Logger) *RoomHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RoomHandler")
	}

	return &RoomHandler{
		rooms:    rooms,
		listings: listings,
		logger:   logger.With(slog.String("component", "room_handler")),
	}
}

// List handles GET /rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list rooms")
		return
	}

	viewer := shared.UserFromContext(r.Context())
	convert := toRoomList(viewer)
	response := make([]RoomListResponse, 0, len(rooms))
	for _, room := range rooms {
		response = append(response, convert(room))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Create handles POST /rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var input service.RoomInput
	if !decodeBody(w, r, &input) {
		return
	}

	actor := shared.UserFromContext(r.Context())
	room, err := h.rooms.Create(r.Context(), input, actor)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create room")
		return
	}

	log.Info("room created", slog.Int64("room_id", room.ID), slog.Int64("owner_id", room.OwnerID))
	shared.RespondWithJSON(w, r, http.StatusOK, toRoomDetail(room, actor))
}

// Get handles GET /rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	room, err := h.rooms.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get room")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toRoomDetail(room, shared.UserFromContext(r.Context())))
}

// Update handles PUT /rooms/{id}
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	var input service.RoomInput
	if !decodeBody(w, r, &input) {
		return
	}

	actor := shared.UserFromContext(r.Context())
	room, err := h.rooms.Update(r.Context(), id, input, actor)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update room")
		return
	}

	log.Debug("room updated", slog.Int64("room_id", room.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, toRoomDetail(room, actor))
}

// Delete handles DELETE /rooms/{id}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.rooms.Delete(r.Context(), id, shared.UserFromContext(r.Context())); err != nil {
		HandleAPIError(w, r, err, "Failed to delete room")
		return
	}

	log.Info("room deleted", slog.Int64("room_id", id))
	shared.RespondNoContent(w)
}

// Reviews handles GET /rooms/{id}/reviews
func (h *RoomHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	page, ok := handlePageParam(w, r)
	if !ok {
		return
	}

	reviews, err := h.listings.RoomReviews(r.Context(), id, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reviews")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toPageResponse(reviews, toReview))
}

// Amenities handles GET /rooms/{id}/amenities
func (h *RoomHandler) Amenities(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	page, ok := handlePageParam(w, r)
	if !ok {
		return
	}

	amenities, err := h.listings.RoomAmenities(r.Context(), id, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list amenities")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toPageResponse(amenities, toAmenity))
}
