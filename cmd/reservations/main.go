package main

import (
	"campsite/internal/reservations/events"
	"campsite/internal/reservations/handler"
	"campsite/internal/reservations/repository"
	"campsite/internal/reservations/service"
	"campsite/internal/reservations/validator"
	"campsite/pkg/app"
	"campsite/pkg/config"
	"campsite/pkg/kafka"
	kafka_config "campsite/pkg/kafka/config"
	kafkamiddleware "campsite/pkg/kafka/middleware"
	"time"
)

const ServiceName = "campsite-reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetStore()
	cfg.SetRedis()

	repo := newRepository(cfg)
	publisher := newPublisher(cfg)

	reservationService := service.NewReservationService(
		repo,
		validator.NewReservationValidator(cfg.Log, time.Now),
		publisher,
		cfg,
		time.Now,
	)
	reservationHandler := handler.NewReservationHandler(reservationService, cfg.Log)

	application := app.NewApplication(cfg)
	application.SetApp(reservationHandler, repo)
	application.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	application.OnShutdown(cfg.GracefulShutdown)
	application.Run()
}

func newRepository(cfg *config.Config) repository.ReservationRepository {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		return repository.NewMongoReservationRepository(cfg)
	case config.StorePostgres:
		return repository.NewPostgresReservationRepository(cfg)
	default:
		cfg.Log.Warn("Using in-memory reservation store, data is lost on restart")
		return repository.NewMemoryReservationRepository()
	}
}

func newPublisher(cfg *config.Config) events.Publisher {
	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, reservation events disabled")
		return events.NoopPublisher{}
	}
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.ReservationsTopic, kafkaCfg.ReservationsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafkamiddleware.MetricsProducerMiddleware())
	}
	return events.NewKafkaPublisher(producer, cfg.Log)
}
