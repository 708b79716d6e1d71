package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sivalingapandian/therapist-checkin/internal/directory"
	"github.com/sivalingapandian/therapist-checkin/internal/scheduling"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

type mockEmail struct {
	sent []EmailMessage
	err  error
}

func (m *mockEmail) Send(_ context.Context, msg EmailMessage) error {
	m.sent = append(m.sent, msg)
	return m.err
}

type mockSMS struct {
	sent []string
	err  error
}

func (m *mockSMS) SendSMS(_ context.Context, to, body string) error {
	m.sent = append(m.sent, body)
	return m.err
}

func testTherapist(phone string) *directory.Therapist {
	return &directory.Therapist{ID: "t-1", Name: "Dr. A", Email: "a@x.com", Phone: phone}
}

func testAppointment() *scheduling.Appointment {
	return &scheduling.Appointment{
		ID:          "a-1",
		PatientName: "Pat",
		TherapistID: "t-1",
		Date:        "2024-06-01",
		TimeSlot:    "09:00",
		Status:      scheduling.StatusScheduled,
	}
}

func TestConfirmationSendsBothChannels(t *testing.T) {
	email := &mockEmail{}
	sms := &mockSMS{}
	d := NewDispatcher(email, sms, nil, logging.Default())

	err := d.SendAppointmentConfirmation(context.Background(), testAppointment(), testTherapist("+15551234567"))
	if err != nil {
		t.Fatalf("SendAppointmentConfirmation returned error: %v", err)
	}
	if len(email.sent) != 1 || len(sms.sent) != 1 {
		t.Fatalf("expected one email and one SMS, got %d/%d", len(email.sent), len(sms.sent))
	}
	if !strings.Contains(email.sent[0].Subject, "Pat") {
		t.Fatalf("subject should name the patient: %s", email.sent[0].Subject)
	}
	if !strings.Contains(sms.sent[0], "2024-06-01") {
		t.Fatalf("SMS should carry the date: %s", sms.sent[0])
	}
}

func TestConfirmationSkipsSMSWithoutPhone(t *testing.T) {
	email := &mockEmail{}
	sms := &mockSMS{}
	d := NewDispatcher(email, sms, nil, logging.Default())

	if err := d.SendAppointmentConfirmation(context.Background(), testAppointment(), testTherapist("")); err != nil {
		t.Fatalf("SendAppointmentConfirmation returned error: %v", err)
	}
	if len(sms.sent) != 0 {
		t.Fatal("no SMS may be sent without a phone on file")
	}
	if len(email.sent) != 1 {
		t.Fatal("email must still be sent")
	}
}

func TestConfirmationEmailFailureStillAttemptsSMS(t *testing.T) {
	email := &mockEmail{err: errors.New("ses down")}
	sms := &mockSMS{}
	d := NewDispatcher(email, sms, nil, logging.Default())

	err := d.SendAppointmentConfirmation(context.Background(), testAppointment(), testTherapist("+15551234567"))
	if err == nil {
		t.Fatal("expected an error when the email channel fails")
	}
	if len(sms.sent) != 1 {
		t.Fatal("SMS must still be attempted after an email failure")
	}
}

func TestConfirmationSMSFailureIsReported(t *testing.T) {
	d := NewDispatcher(&mockEmail{}, &mockSMS{err: errors.New("sns down")}, nil, logging.Default())

	err := d.SendAppointmentConfirmation(context.Background(), testAppointment(), testTherapist("+15551234567"))
	if err == nil {
		t.Fatal("expected an error when the SMS channel fails")
	}
}

func TestCheckInNotificationSwallowsAllFailures(t *testing.T) {
	email := &mockEmail{err: errors.New("ses down")}
	sms := &mockSMS{err: errors.New("sns down")}
	d := NewDispatcher(email, sms, nil, logging.Default())

	checkIn := &scheduling.Appointment{
		ID:          "ci-1",
		TherapistID: "t-1",
		CheckInTime: "2024-06-01T09:15:00Z",
	}
	// Must not panic and has no error to return.
	d.SendCheckInNotification(context.Background(), checkIn, testTherapist("+15551234567"))

	if len(email.sent) != 1 || len(sms.sent) != 1 {
		t.Fatalf("both channels must still be attempted, got %d/%d", len(email.sent), len(sms.sent))
	}
}

func TestCheckInNotificationCarriesTime(t *testing.T) {
	email := &mockEmail{}
	d := NewDispatcher(email, &mockSMS{}, nil, logging.Default())

	checkIn := &scheduling.Appointment{
		ID:          "ci-1",
		TherapistID: "t-1",
		CheckInTime: "2024-06-01T09:15:00Z",
	}
	d.SendCheckInNotification(context.Background(), checkIn, testTherapist(""))

	if len(email.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(email.sent))
	}
	msg := email.sent[0]
	if !strings.Contains(msg.Body, "2024-06-01T09:15:00Z") || !strings.Contains(msg.HTML, "2024-06-01T09:15:00Z") {
		t.Fatalf("check-in time missing from bodies: %+v", msg)
	}
}
