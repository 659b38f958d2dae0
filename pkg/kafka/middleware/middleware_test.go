package kafka_middleware

import (
	"bytes"
	"campsite/pkg/kafka"
	"campsite/pkg/logger"
	"campsite/pkg/metrics"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage(t *testing.T) kafka.Message {
	msg, err := kafka.NewMessage().
		WithKey("42").
		WithEventType("reservation.created").
		WithRawValue([]byte(`{"id":42}`)).
		Build()
	require.NoError(t, err)
	msg.Topic = "campsite.reservations"
	return msg
}

func TestLoggingProducerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Output: &buf, Level: logger.DEBUG})
	mw := LoggingProducerMiddleware(log)

	err := mw(context.Background(), testMessage(t), func(ctx context.Context, msg kafka.Message) error {
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Published kafka message")
	assert.Contains(t, buf.String(), "reservation.created")

	buf.Reset()
	boom := errors.New("broker down")
	err = mw(context.Background(), testMessage(t), func(ctx context.Context, msg kafka.Message) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "broker down")
}

func TestLoggingConsumerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Output: &buf, Level: logger.DEBUG})
	mw := LoggingConsumerMiddleware(log)

	err := mw(context.Background(), testMessage(t), func(ctx context.Context, msg kafka.Message) error {
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Processed kafka message")
}

func TestMetricsMiddleware(t *testing.T) {
	metrics.KafkaMessagesPublished.Reset()
	metrics.KafkaMessagesConsumed.Reset()

	pub := MetricsProducerMiddleware()
	_ = pub(context.Background(), testMessage(t), func(ctx context.Context, msg kafka.Message) error { return nil })
	_ = pub(context.Background(), testMessage(t), func(ctx context.Context, msg kafka.Message) error { return errors.New("x") })

	con := MetricsConsumerMiddleware()
	_ = con(context.Background(), testMessage(t), func(ctx context.Context, msg kafka.Message) error { return nil })

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.KafkaMessagesPublished.WithLabelValues("campsite.reservations", statusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.KafkaMessagesPublished.WithLabelValues("campsite.reservations", statusError)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("campsite.reservations", statusSuccess)))
}
