package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pistas_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pistas_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pistas_reservations_created_total",
			Help: "Total number of reservations created, by court",
		},
		[]string{"court"},
	)

	ReservationsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pistas_reservations_rejected_total",
			Help: "Total number of rejected reservation attempts, by reason",
		},
		[]string{"reason"},
	)

	ReservationsPaidTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pistas_reservations_paid_total",
			Help: "Total number of reservations marked as paid",
		},
	)

	ReservationsCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pistas_reservations_cancelled_total",
			Help: "Total number of reservations cancelled",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pistas_notifications_total",
			Help: "Total number of front desk notifications",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pistas_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservationCreated(court string) {
	ReservationsCreatedTotal.WithLabelValues(court).Inc()
}

func RecordReservationRejected(reason string) {
	ReservationsRejectedTotal.WithLabelValues(reason).Inc()
}

func RecordReservationPaid() {
	ReservationsPaidTotal.Inc()
}

func RecordReservationCancelled() {
	ReservationsCancelledTotal.Inc()
}

func RecordNotification(notifType, status string) {
	NotificationsTotal.WithLabelValues(notifType, status).Inc()
}
