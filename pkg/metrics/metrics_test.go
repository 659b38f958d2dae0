package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/reservation", "201", 0.05)
	RecordHTTPRequest("POST", "/reservation", "201", 0.07)
	RecordHTTPRequest("POST", "/reservation", "400", 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/reservation", "201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/reservation", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordReservation(t *testing.T) {
	ReservationsTotal.Reset()

	RecordReservation(OutcomeCreated)
	RecordReservation(OutcomeConflict)
	RecordReservation(OutcomeConflict)

	assert.Equal(t, float64(1), testutil.ToFloat64(ReservationsTotal.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, float64(2), testutil.ToFloat64(ReservationsTotal.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, float64(0), testutil.ToFloat64(ReservationsTotal.WithLabelValues(OutcomeDeleted)))
}

func TestRecordAvailabilityRequest(t *testing.T) {
	testCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campsite_availability_requests_total_test",
		Help: "Total number of availability queries",
	})

	old := AvailabilityRequestsTotal
	AvailabilityRequestsTotal = testCounter
	defer func() { AvailabilityRequestsTotal = old }()

	RecordAvailabilityRequest()
	RecordAvailabilityRequest()

	assert.Equal(t, float64(2), testutil.ToFloat64(testCounter))
}

func TestRecordKafka(t *testing.T) {
	KafkaMessagesPublished.Reset()
	KafkaMessagesConsumed.Reset()

	RecordKafkaPublish("campsite.reservations", "success", 0.01)
	RecordKafkaPublish("campsite.reservations", "error", 0.02)
	RecordKafkaConsume("campsite.reservations", "success", 0.01)

	assert.Equal(t, float64(1), testutil.ToFloat64(KafkaMessagesPublished.WithLabelValues("campsite.reservations", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(KafkaMessagesPublished.WithLabelValues("campsite.reservations", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(KafkaMessagesConsumed.WithLabelValues("campsite.reservations", "success")))
}
