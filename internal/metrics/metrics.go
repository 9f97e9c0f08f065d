// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service's collectors.  A nil *Metrics is valid and
// records nothing, so components can be built without instrumentation.
type Metrics struct {
	BookingsTotal        *prometheus.CounterVec
	SeatsBooked          prometheus.Counter
	SeatConflicts        prometheus.Counter
	GroupPaySessions     *prometheus.CounterVec
	UpgradesTotal        prometheus.Counter
	ShowtimesGenerated   prometheus.Counter
	HTTPRequestDuration  *prometheus.HistogramVec
	InventoryInitialized prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinema_bookings_total",
			Help: "Bookings appended to the ledger, by source.",
		}, []string{"source"}),
		SeatsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinema_seats_booked_total",
			Help: "Seats reserved by successful bookings.",
		}),
		SeatConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinema_seat_conflicts_total",
			Help: "Reservations rejected because a seat was already occupied.",
		}),
		GroupPaySessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinema_group_pay_sessions_total",
			Help: "Group-pay session transitions, by resulting status.",
		}, []string{"status"}),
		UpgradesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinema_seat_upgrades_total",
			Help: "Bookings moved to a premium seat by the upgrade lottery.",
		}),
		ShowtimesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinema_showtimes_generated_total",
			Help: "Showtimes produced on showtime cache misses.",
		}),
		InventoryInitialized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinema_inventory_initialized_total",
			Help: "Showtime inventories created by seat generation.",
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cinema_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		m.BookingsTotal, m.SeatsBooked, m.SeatConflicts, m.GroupPaySessions,
		m.UpgradesTotal, m.ShowtimesGenerated, m.InventoryInitialized, m.HTTPRequestDuration,
	)
	return m
}

func (m *Metrics) BookingCreated(source string, seats int) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(source).Inc()
	m.SeatsBooked.Add(float64(seats))
}

func (m *Metrics) SeatConflict() {
	if m == nil {
		return
	}
	m.SeatConflicts.Inc()
}

func (m *Metrics) GroupPay(status string) {
	if m == nil {
		return
	}
	m.GroupPaySessions.WithLabelValues(status).Inc()
}

func (m *Metrics) Upgraded(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.UpgradesTotal.Add(float64(n))
}

func (m *Metrics) Generated(showtimes int) {
	if m == nil {
		return
	}
	m.ShowtimesGenerated.Add(float64(showtimes))
}

func (m *Metrics) InventoryCreated() {
	if m == nil {
		return
	}
	m.InventoryInitialized.Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
