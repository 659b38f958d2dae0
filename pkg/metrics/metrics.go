package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reservation outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeUpdated  = "updated"
	OutcomeDeleted  = "deleted"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campsite_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campsite_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campsite_reservations_total",
			Help: "Total number of reservation write attempts by outcome",
		},
		[]string{"outcome"},
	)

	AvailabilityRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campsite_availability_requests_total",
			Help: "Total number of availability queries",
		},
	)

	KafkaMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campsite_kafka_messages_published_total",
			Help: "Total number of Kafka publish attempts",
		},
		[]string{"topic", "status"},
	)

	KafkaMessagesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campsite_kafka_messages_consumed_total",
			Help: "Total number of Kafka messages handled",
		},
		[]string{"topic", "status"},
	)

	KafkaOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campsite_kafka_operation_duration_seconds",
			Help:    "Kafka publish and consume duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(outcome string) {
	ReservationsTotal.WithLabelValues(outcome).Inc()
}

func RecordAvailabilityRequest() {
	AvailabilityRequestsTotal.Inc()
}

func RecordKafkaPublish(topic, status string, duration float64) {
	KafkaMessagesPublished.WithLabelValues(topic, status).Inc()
	KafkaOperationDuration.WithLabelValues("publish").Observe(duration)
}

func RecordKafkaConsume(topic, status string, duration float64) {
	KafkaMessagesConsumed.WithLabelValues(topic, status).Inc()
	KafkaOperationDuration.WithLabelValues("consume").Observe(duration)
}
