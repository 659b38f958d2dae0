package repository

import (
	reservationerrors "campsite/internal/reservations/errors"
	"campsite/pkg/db"
	"campsite/pkg/model"
	"context"
	"sort"
	"sync"
	"time"
)

type memoryTxKey struct{}

// memoryTx records undo steps for the writes made inside one transaction.
type memoryTx struct {
	undo []func()
}

// memoryReservationRepository keeps reservations in process. Transactions are
// serialized by txMu and rolled back by replaying their undo journal.
type memoryReservationRepository struct {
	txMu sync.Mutex

	mu           sync.RWMutex
	reservations map[int64]model.Reservation
	seq          int64
}

func NewMemoryReservationRepository() ReservationRepository {
	return newMemoryReservationRepository()
}

func newMemoryReservationRepository() *memoryReservationRepository {
	return &memoryReservationRepository{
		reservations: make(map[int64]model.Reservation),
	}
}

func (r *memoryReservationRepository) FindByID(ctx context.Context, id int64) (*model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservation, ok := r.reservations[id]
	if !ok {
		return nil, reservationerrors.ErrNotFound
	}
	return &reservation, nil
}

func (r *memoryReservationRepository) FindInRange(ctx context.Context, from, to time.Time) ([]*model.Reservation, error) {
	return r.filter(func(res model.Reservation) bool {
		return contained(res, from, to)
	}), nil
}

func (r *memoryReservationRepository) FindConflicting(ctx context.Context, from, to time.Time, excludeEmail string) ([]*model.Reservation, error) {
	return r.filter(func(res model.Reservation) bool {
		return contained(res, from, to) && res.Email != excludeEmail
	}), nil
}

func contained(res model.Reservation, from, to time.Time) bool {
	return !res.FromDate.Before(from) && !res.ToDate.After(to)
}

func (r *memoryReservationRepository) filter(match func(model.Reservation) bool) []*model.Reservation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Reservation{}
	for _, res := range r.reservations {
		if match(res) {
			res := res
			result = append(result, &res)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].FromDate.Equal(result[j].FromDate) {
			return result[i].ID < result[j].ID
		}
		return result[i].FromDate.Before(result[j].FromDate)
	})
	return result
}

func (r *memoryReservationRepository) Save(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *reservation
	ts := now()

	if saved.ID == 0 {
		r.seq++
		saved.ID = r.seq
		saved.CreatedAt = ts
		saved.UpdatedAt = ts
		r.reservations[saved.ID] = saved

		id := saved.ID
		r.journal(ctx, func() { delete(r.reservations, id) })
		return &saved, nil
	}

	previous, ok := r.reservations[saved.ID]
	if !ok {
		return nil, reservationerrors.ErrNotFound
	}
	saved.CreatedAt = previous.CreatedAt
	saved.UpdatedAt = ts
	r.reservations[saved.ID] = saved

	r.journal(ctx, func() { r.reservations[previous.ID] = previous })
	return &saved, nil
}

func (r *memoryReservationRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.reservations[id]
	if !ok {
		return nil
	}
	delete(r.reservations, id)

	r.journal(ctx, func() { r.reservations[previous.ID] = previous })
	return nil
}

func (r *memoryReservationRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.reservations[id]
	return ok, nil
}

// journal must be called with mu held.
func (r *memoryReservationRepository) journal(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok {
		tx.undo = append(tx.undo, undo)
	}
}

func (r *memoryReservationRepository) ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error {
	if _, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok {
		return fn(ctx)
	}

	r.txMu.Lock()
	defer r.txMu.Unlock()

	tx := &memoryTx{}
	if err := fn(context.WithValue(ctx, memoryTxKey{}, tx)); err != nil {
		r.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *memoryReservationRepository) Ping(ctx context.Context) error {
	return nil
}
