package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchpoint_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchpoint_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchpoint_bookings_created_total",
			Help: "Total number of bookings created",
		},
	)

	SlotConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchpoint_slot_conflicts_total",
			Help: "Total number of booking attempts rejected because the slot was taken",
		},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchpoint_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	PlayersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchpoint_players_registered_total",
			Help: "Total number of registered players",
		},
	)

	RatingRecomputationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchpoint_rating_recomputations_total",
			Help: "Total number of skill rating computations",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated() {
	BookingsCreatedTotal.Inc()
}

func RecordSlotConflict() {
	SlotConflictsTotal.Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordPlayerRegistered() {
	PlayersRegisteredTotal.Inc()
}

func RecordRatingRecomputation() {
	RatingRecomputationsTotal.Inc()
}
