package kafka_middleware

import (
	"campsite/pkg/kafka"
	"campsite/pkg/metrics"
	"context"
	"time"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.RecordKafkaPublish(msg.Topic, status(err), time.Since(start).Seconds())
		return err
	}
}

func MetricsConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.RecordKafkaConsume(msg.Topic, status(err), time.Since(start).Seconds())
		return err
	}
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}
