package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LockID names the single lock document.
const LockID = "campsite"

// reservationLock serializes reservation writers. Every writer bumps the same
// document inside its transaction, so a second concurrent writer hits a write
// conflict and the driver retries it after the first one commits.
type reservationLock struct {
	collection *mongo.Collection
}

func newReservationLock(collection *mongo.Collection) *reservationLock {
	return &reservationLock{collection: collection}
}

func (l *reservationLock) acquire(ctx context.Context) error {
	_, err := l.collection.UpdateOne(ctx,
		bson.M{"_id": LockID},
		bson.M{
			"$inc": bson.M{"version": int64(1)},
			"$set": bson.M{"updated_at": now()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to acquire reservation lock: %w", err)
	}
	return nil
}
