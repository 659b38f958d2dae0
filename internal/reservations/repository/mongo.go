package repository

import (
	reservationerrors "campsite/internal/reservations/errors"
	"campsite/pkg/config"
	"campsite/pkg/db"
	mongotx "campsite/pkg/db/mongo"
	"campsite/pkg/model"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const reservationSequence = "reservations"

type mongoReservationRepository struct {
	db           *mongo.Database
	collection   *mongo.Collection
	counters     *mongo.Collection
	lock         *reservationLock
	txManager    db.TransactionManager
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	database := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return newMongoReservationRepository(database, cfg.ReadTimeout, cfg.WriteTimeout)
}

func newMongoReservationRepository(database *mongo.Database, readTimeout, writeTimeout time.Duration) *mongoReservationRepository {
	return &mongoReservationRepository{
		db:           database,
		collection:   database.Collection(CollectionName),
		counters:     database.Collection(CounterCollectionName),
		lock:         newReservationLock(database.Collection(LockCollectionName)),
		txManager:    mongotx.NewTransactionManager(database.Client()),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// A SessionContext is returned unchanged since wrapping it detaches the session.
func (r *mongoReservationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id int64) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	var reservation model.Reservation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) FindInRange(ctx context.Context, from, to time.Time) ([]*model.Reservation, error) {
	return r.find(ctx, rangeFilter(from, to))
}

func (r *mongoReservationRepository) FindConflicting(ctx context.Context, from, to time.Time, excludeEmail string) ([]*model.Reservation, error) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		if err := r.lock.acquire(ctx); err != nil {
			return nil, err
		}
	}

	filter := rangeFilter(from, to)
	filter["email"] = bson.M{"$ne": excludeEmail}
	return r.find(ctx, filter)
}

func (r *mongoReservationRepository) find(ctx context.Context, filter bson.M) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "from_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []*model.Reservation{}
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func rangeFilter(from, to time.Time) bson.M {
	return bson.M{
		"from_date": bson.M{"$gte": from},
		"to_date":   bson.M{"$lte": to},
	}
}

func (r *mongoReservationRepository) Save(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error) {
	if reservation.ID == 0 {
		return r.insert(ctx, reservation)
	}
	return r.update(ctx, reservation)
}

func (r *mongoReservationRepository) insert(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	saved := *reservation
	saved.ID = id
	saved.CreatedAt = now()
	saved.UpdatedAt = saved.CreatedAt

	if _, err := r.collection.InsertOne(ctx, &saved); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	return &saved, nil
}

func (r *mongoReservationRepository) update(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"first_name": reservation.FirstName,
			"last_name":  reservation.LastName,
			"email":      reservation.Email,
			"from_date":  reservation.FromDate,
			"to_date":    reservation.ToDate,
			"updated_at": now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var saved model.Reservation
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": reservation.ID}, update, opts).Decode(&saved)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	return &saved, nil
}

// nextID issues the next value of the reservation sequence.
func (r *mongoReservationRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter model.ReservationCounter
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": reservationSequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate reservation id: %w", err)
	}

	return counter.Seq, nil
}

func (r *mongoReservationRepository) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

func (r *mongoReservationRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count > 0, nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoReservationRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	return r.db.Client().Ping(ctx, readpref.Primary())
}
