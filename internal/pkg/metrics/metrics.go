package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the booking and billing flows.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	BookingsCreated  *prometheus.CounterVec
	BookingConflicts *prometheus.CounterVec
	BillsPaid        prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "condo_bookings_created_total",
			Help: "Bookings accepted and confirmed, by service type",
		}, []string{"service_type"}),

		BookingConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "condo_booking_conflicts_total",
			Help: "Booking requests rejected because the slot was already taken, by service type",
		}, []string{"service_type"}),

		BillsPaid: factory.NewCounter(prometheus.CounterOpts{
			Name: "condo_bills_paid_total",
			Help: "Bills marked as paid",
		}),
	}
}

func (m *Metrics) IncBookingCreated(serviceType string) {
	if m != nil {
		m.BookingsCreated.WithLabelValues(serviceType).Inc()
	}
}

func (m *Metrics) IncBookingConflict(serviceType string) {
	if m != nil {
		m.BookingConflicts.WithLabelValues(serviceType).Inc()
	}
}

func (m *Metrics) IncBillPaid() {
	if m != nil {
		m.BillsPaid.Inc()
	}
}
