package repository

import (
	reservationerrors "campsite/internal/reservations/errors"
	"campsite/pkg/config"
	"campsite/pkg/db"
	pgtx "campsite/pkg/db/postgres"
	"campsite/pkg/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// advisoryLockKey is the pg_advisory_xact_lock key shared by reservation writers.
const advisoryLockKey int64 = 0x63616d70

const (
	selectColumns = `SELECT id, first_name, last_name, email, from_date, to_date, created_at, updated_at FROM reservations`

	queryFindByID = selectColumns + ` WHERE id = $1`

	queryFindInRange = selectColumns + ` WHERE from_date >= $1 AND to_date <= $2 ORDER BY from_date`

	queryFindConflicting = selectColumns + ` WHERE from_date >= $1 AND to_date <= $2 AND email <> $3 ORDER BY from_date FOR UPDATE`

	queryInsert = `INSERT INTO reservations (first_name, last_name, email, from_date, to_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id, created_at, updated_at`

	queryUpdate = `UPDATE reservations SET first_name = $1, last_name = $2, email = $3, from_date = $4, to_date = $5, updated_at = $6
WHERE id = $7 RETURNING created_at, updated_at`

	queryDelete = `DELETE FROM reservations WHERE id = $1`

	queryExists = `SELECT EXISTS(SELECT 1 FROM reservations WHERE id = $1)`

	queryAdvisoryLock = `SELECT pg_advisory_xact_lock($1)`
)

type postgresReservationRepository struct {
	db           *sqlx.DB
	txManager    db.TransactionManager
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewPostgresReservationRepository(cfg *config.Config) ReservationRepository {
	return newPostgresReservationRepository(cfg.Client.Postgres, cfg.ReadTimeout, cfg.WriteTimeout)
}

func newPostgresReservationRepository(conn *sqlx.DB, readTimeout, writeTimeout time.Duration) *postgresReservationRepository {
	return &postgresReservationRepository{
		db:           conn,
		txManager:    pgtx.NewTransactionManager(conn),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// withTimeout leaves transaction contexts alone; the transaction owns their lifetime.
func (r *postgresReservationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := pgtx.TxFromContext(ctx); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *postgresReservationRepository) FindByID(ctx context.Context, id int64) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	var reservation model.Reservation
	if err := sqlx.GetContext(ctx, pgtx.Ext(ctx, r.db), &reservation, queryFindByID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservationerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &reservation, nil
}

func (r *postgresReservationRepository) FindInRange(ctx context.Context, from, to time.Time) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	reservations := []*model.Reservation{}
	if err := sqlx.SelectContext(ctx, pgtx.Ext(ctx, r.db), &reservations, queryFindInRange, from, to); err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	return reservations, nil
}

func (r *postgresReservationRepository) FindConflicting(ctx context.Context, from, to time.Time, excludeEmail string) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	ext := pgtx.Ext(ctx, r.db)
	if _, ok := pgtx.TxFromContext(ctx); ok {
		if _, err := ext.ExecContext(ctx, queryAdvisoryLock, advisoryLockKey); err != nil {
			return nil, fmt.Errorf("failed to acquire reservation lock: %w", err)
		}
	}

	reservations := []*model.Reservation{}
	if err := sqlx.SelectContext(ctx, ext, &reservations, queryFindConflicting, from, to, excludeEmail); err != nil {
		return nil, fmt.Errorf("failed to find conflicting reservations: %w", err)
	}
	return reservations, nil
}

func (r *postgresReservationRepository) Save(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	saved := *reservation
	ext := pgtx.Ext(ctx, r.db)

	if saved.ID == 0 {
		row := ext.QueryRowxContext(ctx, queryInsert,
			saved.FirstName, saved.LastName, saved.Email, saved.FromDate, saved.ToDate, now())
		if err := row.Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to create reservation: %w", err)
		}
		return &saved, nil
	}

	row := ext.QueryRowxContext(ctx, queryUpdate,
		saved.FirstName, saved.LastName, saved.Email, saved.FromDate, saved.ToDate, now(), saved.ID)
	if err := row.Scan(&saved.CreatedAt, &saved.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservationerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	return &saved, nil
}

func (r *postgresReservationRepository) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	if _, err := pgtx.Ext(ctx, r.db).ExecContext(ctx, queryDelete, id); err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

func (r *postgresReservationRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	var exists bool
	if err := sqlx.GetContext(ctx, pgtx.Ext(ctx, r.db), &exists, queryExists, id); err != nil {
		return false, fmt.Errorf("failed to check reservation: %w", err)
	}
	return exists, nil
}

func (r *postgresReservationRepository) ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *postgresReservationRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	return r.db.PingContext(ctx)
}
