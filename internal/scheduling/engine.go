package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sivalingapandian/therapist-checkin/internal/apperr"
	"github.com/sivalingapandian/therapist-checkin/internal/directory"
	"github.com/sivalingapandian/therapist-checkin/internal/observability/metrics"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

// TherapistResolver looks up therapists in the directory.
type TherapistResolver interface {
	Get(ctx context.Context, id string) (*directory.Therapist, error)
}

// Notifier dispatches therapist notifications. Confirmation failures are
// reported to the caller; check-in notification failures are handled inside
// the dispatcher and never surface, which is why SendCheckInNotification
// returns nothing.
type Notifier interface {
	SendAppointmentConfirmation(ctx context.Context, a *Appointment, t *directory.Therapist) error
	SendCheckInNotification(ctx context.Context, a *Appointment, t *directory.Therapist)
}

// Engine orchestrates appointment booking and patient check-ins.
type Engine struct {
	appointments Repository
	therapists   TherapistResolver
	notifier     Notifier
	metrics      *metrics.SchedulingMetrics
	logger       *logging.Logger
	newID        func() string
	now          func() time.Time
}

// NewEngine creates the scheduling engine.
func NewEngine(appointments Repository, therapists TherapistResolver, notifier Notifier, m *metrics.SchedulingMetrics, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		appointments: appointments,
		therapists:   therapists,
		notifier:     notifier,
		metrics:      m,
		logger:       logger,
		newID:        uuid.NewString,
		now:          time.Now,
	}
}

// CreateAppointment books a slot for a therapist. The slot is taken only
// while an existing appointment at the same (therapist, date, timeSlot) is
// still scheduled; cancelled and completed slots are reusable. The conflict
// check is read-then-write: two concurrent bookings of the same slot can
// both pass it.
//
// The confirmation notification is business-critical: if it fails after the
// appointment was persisted, the failure is returned so the caller knows to
// retry the notification out of band. The persisted record is not rolled
// back.
func (e *Engine) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		e.metrics.ObserveAppointment("rejected")
		return nil, err
	}

	therapist, err := e.therapists.Get(ctx, req.TherapistID)
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		e.metrics.ObserveAppointment("rejected")
		return nil, apperr.NotFound("therapist not found")
	}

	existing, err := e.appointments.QueryByTherapistAndDate(ctx, req.TherapistID, req.Date)
	if err != nil {
		e.logger.Error("scheduling: conflict check failed", "error", err, "therapist_id", req.TherapistID, "date", req.Date)
		return nil, apperr.Dependency("failed to check slot availability", err)
	}
	for _, a := range existing {
		if a.TimeSlot == req.TimeSlot && a.Status == StatusScheduled {
			e.metrics.ObserveAppointment("conflict")
			return nil, apperr.Conflict("time slot unavailable")
		}
	}

	appointment := &Appointment{
		ID:            e.newID(),
		PatientName:   req.PatientName,
		TherapistID:   req.TherapistID,
		TherapistName: therapist.Name,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		Status:        StatusScheduled,
		CreatedAt:     e.now().UTC().Format(time.RFC3339Nano),
	}
	if err := e.appointments.Put(ctx, appointment); err != nil {
		e.logger.Error("scheduling: failed to save appointment", "error", err, "appointment_id", appointment.ID)
		e.metrics.ObserveAppointment("failed")
		return nil, apperr.Dependency("failed to save appointment", err)
	}
	e.metrics.ObserveAppointment("created")
	e.logger.Info("appointment created",
		"appointment_id", appointment.ID,
		"therapist_id", appointment.TherapistID,
		"date", appointment.Date,
		"time_slot", appointment.TimeSlot,
	)

	if err := e.notifier.SendAppointmentConfirmation(ctx, appointment, therapist); err != nil {
		e.logger.Error("scheduling: confirmation notification failed", "error", err, "appointment_id", appointment.ID)
		return nil, apperr.Dependency("appointment was saved but the confirmation notification failed", err)
	}

	return appointment, nil
}

// CreateCheckIn records a patient arrival. Check-ins are not slot-bound and
// never conflict. The notification is best-effort: the check-in succeeds
// once persisted regardless of notification outcome.
func (e *Engine) CreateCheckIn(ctx context.Context, req CreateCheckInRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	therapist, err := e.therapists.Get(ctx, req.TherapistID)
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperr.NotFound("therapist not found")
	}

	checkInTime := req.CheckInTime
	if checkInTime == "" {
		checkInTime = e.now().UTC().Format(time.RFC3339Nano)
	}
	record := &Appointment{
		ID:            e.newID(),
		TherapistID:   req.TherapistID,
		TherapistName: therapist.Name,
		CheckInTime:   checkInTime,
		CreatedAt:     e.now().UTC().Format(time.RFC3339Nano),
	}
	if err := e.appointments.Put(ctx, record); err != nil {
		e.logger.Error("scheduling: failed to save check-in", "error", err, "therapist_id", req.TherapistID)
		return nil, apperr.Dependency("failed to save check-in", err)
	}
	e.metrics.ObserveCheckIn()
	e.logger.Info("check-in recorded", "check_in_id", record.ID, "therapist_id", record.TherapistID)

	e.notifier.SendCheckInNotification(ctx, record, therapist)

	return record, nil
}

// ListByTherapistAndDate returns the records for a therapist on a given
// date.
func (e *Engine) ListByTherapistAndDate(ctx context.Context, therapistID, date string) ([]*Appointment, error) {
	if therapistID == "" || date == "" {
		return nil, apperr.Validation("therapistId and date are required")
	}
	records, err := e.appointments.QueryByTherapistAndDate(ctx, therapistID, date)
	if err != nil {
		e.logger.Error("scheduling: list failed", "error", err, "therapist_id", therapistID, "date", date)
		return nil, apperr.Dependency("failed to list appointments", err)
	}
	return records, nil
}
