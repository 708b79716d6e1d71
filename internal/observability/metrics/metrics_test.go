package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAppointmentOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSchedulingMetrics(reg)

	m.ObserveAppointment("created")
	m.ObserveAppointment("created")
	m.ObserveAppointment("conflict")

	if got := testutil.ToFloat64(m.appointmentsTotal.WithLabelValues("created")); got != 2 {
		t.Fatalf("expected 2 created, got %v", got)
	}
	if got := testutil.ToFloat64(m.appointmentsTotal.WithLabelValues("conflict")); got != 1 {
		t.Fatalf("expected 1 conflict, got %v", got)
	}
}

func TestObserveNotification(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSchedulingMetrics(reg)

	m.ObserveNotification("check_in", "sms", "failed")

	if got := testutil.ToFloat64(m.notificationsTotal.WithLabelValues("check_in", "sms", "failed")); got != 1 {
		t.Fatalf("expected 1 failed sms, got %v", got)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *SchedulingMetrics
	m.ObserveAppointment("created")
	m.ObserveCheckIn()
	m.ObserveNotification("check_in", "email", "sent")
}
