package scheduling

import (
	"encoding/json"
	"net/http"

	"github.com/sivalingapandian/therapist-checkin/internal/api/respond"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

// Handler handles HTTP requests for appointments and check-ins.
type Handler struct {
	engine *Engine
	logger *logging.Logger
}

// NewHandler creates a new scheduling handler.
func NewHandler(engine *Engine, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{engine: engine, logger: logger}
}

// CreateAppointment handles POST /appointments.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("scheduling: failed to decode appointment request", "error", err)
		respond.JSON(w, http.StatusBadRequest, respond.Message{Message: "invalid request body"})
		return
	}

	appointment, err := h.engine.CreateAppointment(r.Context(), req)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, appointment)
}

// List handles GET /appointments?therapistId=&date=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	therapistID := r.URL.Query().Get("therapistId")
	date := r.URL.Query().Get("date")

	records, err := h.engine.ListByTherapistAndDate(r.Context(), therapistID, date)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	if records == nil {
		records = []*Appointment{}
	}
	respond.JSON(w, http.StatusOK, records)
}

// CheckInResponse wraps a persisted check-in record.
type CheckInResponse struct {
	Message string       `json:"message"`
	CheckIn *Appointment `json:"checkIn"`
}

// CreateCheckIn handles POST /check-in.
func (h *Handler) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("scheduling: failed to decode check-in request", "error", err)
		respond.JSON(w, http.StatusBadRequest, respond.Message{Message: "invalid request body"})
		return
	}

	record, err := h.engine.CreateCheckIn(r.Context(), req)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, CheckInResponse{
		Message: "Check-in completed successfully",
		CheckIn: record,
	})
}
