package model

import "time"

// ReservationLock is the single advisory lock document that serializes
// conflicting writers inside a Mongo transaction.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	Version   int64     `bson:"version" json:"version"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ReservationCounter holds the last issued reservation id.
type ReservationCounter struct {
	ID  string `bson:"_id" json:"id"`
	Seq int64  `bson:"seq" json:"seq"`
}
