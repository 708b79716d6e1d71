package directory

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sivalingapandian/therapist-checkin/internal/api/respond"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

// Handler handles HTTP requests for the therapist directory.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new directory handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// List handles GET /therapists.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	therapists, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	if therapists == nil {
		therapists = []*Therapist{}
	}
	respond.JSON(w, http.StatusOK, therapists)
}

// Get handles GET /therapists/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	therapist, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	if therapist == nil {
		respond.JSON(w, http.StatusNotFound, respond.Message{Message: "therapist not found"})
		return
	}
	respond.JSON(w, http.StatusOK, therapist)
}

// Create handles POST /therapists.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTherapistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("directory: failed to decode create request", "error", err)
		respond.JSON(w, http.StatusBadRequest, respond.Message{Message: "invalid request body"})
		return
	}

	therapist, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, therapist)
}

// Update handles PUT /therapists/{id}. The response carries the freshly
// re-read record so callers see exactly what was stored.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fields UpdateTherapistFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.logger.Error("directory: failed to decode update request", "error", err)
		respond.JSON(w, http.StatusBadRequest, respond.Message{Message: "invalid request body"})
		return
	}

	if err := h.svc.Update(r.Context(), id, fields); err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	therapist, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	if therapist == nil {
		respond.JSON(w, http.StatusNotFound, respond.Message{Message: "therapist not found"})
		return
	}
	respond.JSON(w, http.StatusOK, therapist)
}

// Delete handles DELETE /therapists/{id}. Deleting an unknown id succeeds.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Message{Message: "therapist deleted successfully"})
}
