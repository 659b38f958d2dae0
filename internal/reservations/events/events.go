package events

import (
	"campsite/pkg/kafka"
	"campsite/pkg/logger"
	"campsite/pkg/middleware"
	"campsite/pkg/model"
	"context"
	"strconv"
	"time"
)

const (
	TypeCreated = "reservation.created"
	TypeUpdated = "reservation.updated"
	TypeDeleted = "reservation.deleted"

	SchemaVersion = "1"
	Source        = "campsite-reservations"

	HeaderReservationID = "reservation-id"
)

// Event is the payload published after a reservation write commits.
// Reservation is nil for deletions.
type Event struct {
	Type          string             `json:"type"`
	ReservationID int64              `json:"reservation_id"`
	Reservation   *model.Reservation `json:"reservation,omitempty"`
	OccurredAt    time.Time          `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Producer is the subset of *kafka.Producer the publisher uses.
type Producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer Producer, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, log: log}
}

// Publish keys the message by reservation id so events for one reservation stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	msg, err := kafka.NewMessage().
		WithKey(strconv.FormatInt(event.ReservationID, 10)).
		WithValue(event).
		WithEventType(event.Type).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(middleware.GetRequestID(ctx)).
		WithTimestamp(event.OccurredAt).
		WithHeader(HeaderReservationID, strconv.FormatInt(event.ReservationID, 10)).
		Build()
	if err != nil {
		return err
	}

	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
