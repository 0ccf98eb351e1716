package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/nestly-api/internal/api/shared"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/service"
)

// AmenityHandler handles amenity CRUD requests
type AmenityHandler struct {
	amenities service.AmenityService
	logger    *slog.Logger
}

// NewAmenityHandler creates a new AmenityHandler
func NewAmenityHandler(amenities service.AmenityService, logger *slog.Logger) *AmenityHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AmenityHandler")
	}

	return &AmenityHandler{
		amenities: amenities,
		logger:    logger.With(slog.String("component", "amenity_handler")),
	}
}

// List handles GET /amenities
func (h *AmenityHandler) List(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.amenities.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list amenities")
		return
	}

	response := make([]AmenityResponse, 0, len(amenities))
	for _, a := range amenities {
		response = append(response, toAmenity(a))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Create handles POST /amenities
func (h *AmenityHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var input service.AmenityInput
	if !decodeBody(w, r, &input) {
		return
	}

	amenity, err := h.amenities.Create(r.Context(), input, shared.UserFromContext(r.Context()))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create amenity")
		return
	}

	log.Info("amenity created", slog.Int64("amenity_id", amenity.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, toAmenity(amenity))
}

// Get handles GET /amenities/{id}
func (h *AmenityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	amenity, err := h.amenities.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get amenity")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toAmenity(amenity))
}

// Update handles PUT /amenities/{id}
func (h *AmenityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var input service.AmenityInput
	if !decodeBody(w, r, &input) {
		return
	}

	amenity, err := h.amenities.Update(r.Context(), id, input, shared.UserFromContext(r.Context()))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update amenity")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toAmenity(amenity))
}

// Delete handles DELETE /amenities/{id}
func (h *AmenityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.amenities.Delete(r.Context(), id, shared.UserFromContext(r.Context())); err != nil {
		HandleAPIError(w, r, err, "Failed to delete amenity")
		return
	}

	log.Info("amenity deleted", slog.Int64("amenity_id", id))
	shared.RespondNoContent(w)
}
