package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters/histograms for slot and booking flows.
type SchedulingMetrics struct {
	slotsReturned    *prometheus.HistogramVec
	validations      *prometheus.CounterVec
	bookings         *prometheus.CounterVec
	repositoryErrors *prometheus.CounterVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		slotsReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "telehealth",
			Subsystem: "scheduling",
			Name:      "slots_returned",
			Help:      "Number of slots returned per slot generation call",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		}, []string{"duration"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "telehealth",
			Subsystem: "scheduling",
			Name:      "validations_total",
			Help:      "Booking and slot validations by kind and result code",
		}, []string{"kind", "code"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "telehealth",
			Subsystem: "scheduling",
			Name:      "bookings_total",
			Help:      "Appointment create/cancel outcomes",
		}, []string{"action", "status"}),
		repositoryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "telehealth",
			Subsystem: "scheduling",
			Name:      "repository_errors_total",
			Help:      "Repository failures swallowed by fail-closed operations",
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotsReturned, m.validations, m.bookings, m.repositoryErrors)
	return m
}

func (m *SchedulingMetrics) ObserveSlots(durationLabel string, count int) {
	if m == nil {
		return
	}
	m.slotsReturned.WithLabelValues(durationLabel).Observe(float64(count))
}

// ObserveValidation records a validation outcome; an empty code means valid.
func (m *SchedulingMetrics) ObserveValidation(kind, code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "ok"
	}
	m.validations.WithLabelValues(kind, code).Inc()
}

func (m *SchedulingMetrics) ObserveBooking(action, status string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(action, status).Inc()
}

func (m *SchedulingMetrics) ObserveRepositoryError(operation string) {
	if m == nil {
		return
	}
	m.repositoryErrors.WithLabelValues(operation).Inc()
}
