package main

import (
	"campsite/internal/reservations/events"
	"campsite/pkg/kafka"
	kafka_config "campsite/pkg/kafka/config"
	kafkamiddleware "campsite/pkg/kafka/middleware"
	"campsite/pkg/logger"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

const ServiceName = "campsite-reservation-events"

func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:     os.Getenv("LOG_LEVEL"),
		Format:    logger.JSON,
		AddSource: true,
		Service:   ServiceName,
	})

	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled() {
		log.Fatal("KAFKA_BROKERS must be set for the reservation events consumer")
	}
	if err := kafkaCfg.Validate(); err != nil {
		log.Fatal(err.Error())
	}
	kafkaCfg.LogConfiguration(log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		kafkaCfg.ReservationsTopic,
		kafkaCfg.AuditGroupID,
		kafkaCfg.ReservationsDLQTopic,
		events.NewAuditHandler(log).Handle,
		log,
	)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(log))
		consumer.Use(kafkamiddleware.MetricsConsumerMiddleware())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting reservation events consumer", "topic", kafkaCfg.ReservationsTopic, "group_id", kafkaCfg.AuditGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, kafka.ErrConsumerClosed) {
		log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}
	log.Info("Reservation events consumer stopped")
}
