package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters for booking and notification flows.
type SchedulingMetrics struct {
	appointmentsTotal  *prometheus.CounterVec
	checkInsTotal      prometheus.Counter
	notificationsTotal *prometheus.CounterVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		appointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkin",
			Subsystem: "scheduling",
			Name:      "appointments_total",
			Help:      "Appointment creation attempts by outcome",
		}, []string{"outcome"}),
		checkInsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "checkin",
			Subsystem: "scheduling",
			Name:      "check_ins_total",
			Help:      "Persisted patient check-ins",
		}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkin",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Notification sends by kind, channel and status",
		}, []string{"kind", "channel", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.appointmentsTotal, m.checkInsTotal, m.notificationsTotal)
	return m
}

// ObserveAppointment records a booking attempt outcome
// (created, conflict, rejected, failed).
func (m *SchedulingMetrics) ObserveAppointment(outcome string) {
	if m == nil {
		return
	}
	m.appointmentsTotal.WithLabelValues(outcome).Inc()
}

// ObserveCheckIn records a persisted check-in.
func (m *SchedulingMetrics) ObserveCheckIn() {
	if m == nil {
		return
	}
	m.checkInsTotal.Inc()
}

// ObserveNotification records a notification send attempt.
func (m *SchedulingMetrics) ObserveNotification(kind, channel, status string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(kind, channel, status).Inc()
}
