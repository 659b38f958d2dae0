package events

import (
	"campsite/pkg/kafka"
	"campsite/pkg/logger"
	"context"
	"fmt"
)

// AuditHandler writes every reservation event to the audit log.
type AuditHandler struct {
	log *logger.Logger
}

func NewAuditHandler(log *logger.Logger) *AuditHandler {
	return &AuditHandler{log: log.With("component", "reservation-audit")}
}

func (h *AuditHandler) Handle(ctx context.Context, msg kafka.Message) error {
	if source, ok := msg.GetHeader(kafka.HeaderSource); ok && source != Source {
		h.log.Warn("Reservation event from unexpected source", "source", source, "event_id", msg.GetEventID())
	}

	var event Event
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("failed to decode reservation event", err)
	}

	switch event.Type {
	case TypeCreated, TypeUpdated:
		if event.Reservation == nil {
			return kafka.NewPermanentError(fmt.Sprintf("%s event without reservation", event.Type), nil)
		}
		h.log.Info("Reservation audit",
			"event_type", event.Type,
			"event_id", msg.GetEventID(),
			"reservation_id", event.ReservationID,
			"email", event.Reservation.Email,
			"from_date", event.Reservation.FromDate,
			"to_date", event.Reservation.ToDate,
			"occurred_at", event.OccurredAt,
		)
	case TypeDeleted:
		h.log.Info("Reservation audit",
			"event_type", event.Type,
			"event_id", msg.GetEventID(),
			"reservation_id", event.ReservationID,
			"occurred_at", event.OccurredAt,
		)
	default:
		h.log.Warn("Ignoring unknown reservation event", "event_type", event.Type, "event_id", msg.GetEventID())
	}

	return nil
}
