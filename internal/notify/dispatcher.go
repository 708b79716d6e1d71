package notify

import (
	"context"
	"fmt"

	"github.com/sivalingapandian/therapist-checkin/internal/directory"
	"github.com/sivalingapandian/therapist-checkin/internal/observability/metrics"
	"github.com/sivalingapandian/therapist-checkin/internal/scheduling"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

// Dispatcher sends therapist notifications over email and SMS. The SMS
// channel is only attempted when the therapist has a phone on file.
//
// The two workflows carry opposite failure policies: confirmation failures
// are returned to the caller (a missed confirmation may mean an unconfirmed
// booking), while check-in notification failures are logged and discarded so
// a notification outage never blocks the patient-facing check-in.
type Dispatcher struct {
	email   EmailSender
	sms     SMSSender
	metrics *metrics.SchedulingMetrics
	logger  *logging.Logger
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(email EmailSender, sms SMSSender, m *metrics.SchedulingMetrics, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{email: email, sms: sms, metrics: m, logger: logger}
}

// SendAppointmentConfirmation notifies the therapist of a new booking. Both
// channels are attempted; any failure is reported.
func (d *Dispatcher) SendAppointmentConfirmation(ctx context.Context, a *scheduling.Appointment, t *directory.Therapist) error {
	var failed int

	msg := EmailMessage{
		To:      t.Email,
		ToName:  t.Name,
		Subject: fmt.Sprintf("New Appointment: %s", a.PatientName),
		Body: fmt.Sprintf("A new appointment has been scheduled:\n\nPatient: %s\nDate: %s\nTime: %s\nStatus: %s",
			a.PatientName, a.Date, a.TimeSlot, a.Status),
	}
	if err := d.email.Send(ctx, msg); err != nil {
		d.logger.Error("notify: confirmation email failed", "error", err, "to", t.Email, "appointment_id", a.ID)
		d.metrics.ObserveNotification("confirmation", "email", "failed")
		failed++
	} else {
		d.metrics.ObserveNotification("confirmation", "email", "sent")
	}

	if t.Phone != "" {
		body := fmt.Sprintf("New appointment scheduled with %s on %s at %s", a.PatientName, a.Date, a.TimeSlot)
		if err := d.sms.SendSMS(ctx, t.Phone, body); err != nil {
			d.logger.Error("notify: confirmation SMS failed", "error", err, "to", t.Phone, "appointment_id", a.ID)
			d.metrics.ObserveNotification("confirmation", "sms", "failed")
			failed++
		} else {
			d.metrics.ObserveNotification("confirmation", "sms", "sent")
		}
	}

	if failed > 0 {
		return fmt.Errorf("notify: %d confirmation notification(s) failed", failed)
	}
	return nil
}

// SendCheckInNotification notifies the therapist that a patient has arrived.
// Failures never propagate: they are logged and counted, nothing more.
func (d *Dispatcher) SendCheckInNotification(ctx context.Context, c *scheduling.Appointment, t *directory.Therapist) {
	msg := EmailMessage{
		To:      t.Email,
		ToName:  t.Name,
		Subject: "Patient Check-in Notification",
		Body:    fmt.Sprintf("A patient has checked in for their appointment with you at %s.", c.CheckInTime),
		HTML: fmt.Sprintf(`<h2>Patient Check-in Notification</h2>
<p>A patient has checked in for their appointment with you.</p>
<p><strong>Check-in Time:</strong> %s</p>
<p><strong>Therapist:</strong> %s</p>`, c.CheckInTime, t.Name),
	}
	if err := d.email.Send(ctx, msg); err != nil {
		d.logger.Error("notify: check-in email failed", "error", err, "to", t.Email, "check_in_id", c.ID)
		d.metrics.ObserveNotification("check_in", "email", "failed")
	} else {
		d.metrics.ObserveNotification("check_in", "email", "sent")
	}

	if t.Phone != "" {
		body := fmt.Sprintf("Patient check-in notification: A patient has checked in for their appointment with you at %s.", c.CheckInTime)
		if err := d.sms.SendSMS(ctx, t.Phone, body); err != nil {
			d.logger.Error("notify: check-in SMS failed", "error", err, "to", t.Phone, "check_in_id", c.ID)
			d.metrics.ObserveNotification("check_in", "sms", "failed")
		} else {
			d.metrics.ObserveNotification("check_in", "sms", "sent")
		}
	}
}

var _ scheduling.Notifier = (*Dispatcher)(nil)
