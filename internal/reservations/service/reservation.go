package service

import (
	reservationerrors "campsite/internal/reservations/errors"
	"campsite/internal/reservations/events"
	"campsite/internal/reservations/repository"
	"campsite/internal/reservations/validator"
	"campsite/pkg/config"
	apperrors "campsite/pkg/errors"
	"campsite/pkg/metrics"
	"campsite/pkg/model"
	"campsite/pkg/sanitizer"
	"context"
	"errors"
	"time"
)

type ReservationService interface {
	// CreateOrUpdate inserts when existingID is nil and overwrites that id otherwise.
	CreateOrUpdate(ctx context.Context, req *model.ReservationRequest, existingID *int64) (*model.Reservation, error)
	Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	Update(ctx context.Context, id int64, req *model.ReservationRequest) (*model.Reservation, error)
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	GetAvailability(ctx context.Context, from, to *time.Time) ([]model.Availability, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	validator *validator.ReservationValidator
	publisher events.Publisher
	cfg       *config.Config
	clock     func() time.Time
}

func NewReservationService(
	repo repository.ReservationRepository,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
	clock func() time.Time,
) ReservationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &reservationService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		clock:     clock,
	}
}

func (s *reservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	return s.CreateOrUpdate(ctx, req, nil)
}

// Update validates the payload before checking the id, so a bad body on an
// unknown reservation is reported as a validation error.
func (s *reservationService) Update(ctx context.Context, id int64, req *model.ReservationRequest) (*model.Reservation, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	exists, err := s.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFoundWithID("Reservation", id)
	}
	return s.save(ctx, req, &id)
}

func (s *reservationService) CreateOrUpdate(ctx context.Context, req *model.ReservationRequest, existingID *int64) (*model.Reservation, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return s.save(ctx, req, existingID)
}

func (s *reservationService) validate(req *model.ReservationRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		metrics.RecordReservation(metrics.OutcomeInvalid)
		return err
	}
	return nil
}

// save runs the conflict check and write for an already validated request.
func (s *reservationService) save(ctx context.Context, req *model.ReservationRequest, existingID *int64) (*model.Reservation, error) {
	var id int64
	if existingID != nil {
		id = *existingID
	}
	reservation := s.sanitize(req).ToReservation(id)

	var saved *model.Reservation
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		conflicts, err := s.repo.FindConflicting(txCtx, reservation.FromDate, reservation.ToDate, reservation.Email)
		if err != nil {
			return apperrors.Internal("Failed to check reservation conflicts", err)
		}
		if len(conflicts) > 0 {
			return reservationerrors.Conflict()
		}

		saved, err = s.repo.Save(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationerrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Reservation", id)
			}
			return apperrors.Internal("Failed to save reservation", err)
		}
		return nil
	})
	if err != nil {
		if reservationerrors.IsConflict(err) {
			metrics.RecordReservation(metrics.OutcomeConflict)
			s.cfg.Log.Info("Reservation dates already taken",
				"from_date", reservation.FromDate,
				"to_date", reservation.ToDate,
			)
			return nil, err
		}
		s.cfg.Log.Error("Failed to save reservation", "id", id, "error", err)
		if !apperrors.IsAppError(err) {
			return nil, apperrors.Internal("Failed to save reservation", err)
		}
		return nil, err
	}

	eventType, outcome := events.TypeCreated, metrics.OutcomeCreated
	if existingID != nil {
		eventType, outcome = events.TypeUpdated, metrics.OutcomeUpdated
	}
	metrics.RecordReservation(outcome)
	s.publish(ctx, events.Event{
		Type:          eventType,
		ReservationID: saved.ID,
		Reservation:   saved,
		OccurredAt:    s.clock().UTC(),
	})

	s.cfg.Log.Info("Reservation saved successfully",
		"id", saved.ID,
		"from_date", saved.FromDate,
		"to_date", saved.ToDate,
		"event", eventType,
	)
	return saved, nil
}

func (s *reservationService) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		s.cfg.Log.Error("Failed to retrieve reservation", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}
	return reservation, nil
}

// Delete succeeds whether or not the reservation exists.
func (s *reservationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.cfg.Log.Error("Failed to delete reservation", "id", id, "error", err)
		return apperrors.Internal("Failed to delete reservation", err)
	}

	metrics.RecordReservation(metrics.OutcomeDeleted)
	s.publish(ctx, events.Event{
		Type:          events.TypeDeleted,
		ReservationID: id,
		OccurredAt:    s.clock().UTC(),
	})

	s.cfg.Log.Info("Reservation deleted", "id", id)
	return nil
}

func (s *reservationService) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to check reservation existence", "id", id, "error", err)
		return false, apperrors.Internal("Failed to check reservation existence", err)
	}
	return exists, nil
}

func (s *reservationService) sanitize(req *model.ReservationRequest) *model.ReservationRequest {
	clean := *req
	clean.FirstName = sanitizer.NormalizeName(req.FirstName)
	clean.LastName = sanitizer.NormalizeName(req.LastName)
	clean.Email = sanitizer.NormalizeEmail(req.Email)
	return &clean
}

// publish runs after the write committed, so a failure is only logged.
func (s *reservationService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to publish reservation event",
			"type", event.Type,
			"id", event.ReservationID,
			"error", err,
		)
	}
}
