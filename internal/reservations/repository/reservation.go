package repository

import (
	"campsite/pkg/db"
	"campsite/pkg/model"
	"context"
	"time"
)

const (
	CollectionName        = "Reservations"
	LockCollectionName    = "Reservation_locks"
	CounterCollectionName = "Counters"
	TableName             = "reservations"
)

// ReservationRepository is the persistence port of the reservation engine.
//
// Range queries use containment: a reservation matches [from, to] when
// from_date >= from and to_date <= to. Results are ordered by from_date.
type ReservationRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Reservation, error)
	FindInRange(ctx context.Context, from, to time.Time) ([]*model.Reservation, error)
	// FindConflicting is FindInRange minus reservations held by excludeEmail.
	// Inside ExecuteTransaction it also serializes concurrent writers.
	FindConflicting(ctx context.Context, from, to time.Time, excludeEmail string) ([]*model.Reservation, error)
	// Save inserts when r.ID is zero and overwrites otherwise.
	Save(ctx context.Context, r *model.Reservation) (*model.Reservation, error)
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error
	Ping(ctx context.Context) error
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
