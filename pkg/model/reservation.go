package model

import "time"

// Reservation is the persisted campsite booking.
type Reservation struct {
	ID        int64     `json:"id" bson:"_id" db:"id"`
	FirstName string    `json:"first_name" bson:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name" db:"last_name"`
	Email     string    `json:"email" bson:"email" db:"email"`
	FromDate  time.Time `json:"from_date" bson:"from_date" db:"from_date"`
	ToDate    time.Time `json:"to_date" bson:"to_date" db:"to_date"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// ReservationRequest is the wire shape accepted and returned by the API.
type ReservationRequest struct {
	ID        *int64    `json:"id,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	FromDate  time.Time `json:"fromDate"`
	ToDate    time.Time `json:"toDate"`
}

type CreatedReservation struct {
	ID int64 `json:"id"`
}

// Availability is a free, inclusive date range.
type Availability struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`
}

type AvailabilityRange struct {
	Availability []Availability `json:"availability"`
}

// ToReservation maps the request onto a record. A zero id means a new reservation.
func (r *ReservationRequest) ToReservation(id int64) *Reservation {
	return &Reservation{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		FromDate:  r.FromDate,
		ToDate:    r.ToDate,
	}
}

func NewReservationRequest(r *Reservation) *ReservationRequest {
	id := r.ID
	return &ReservationRequest{
		ID:        &id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		FromDate:  r.FromDate,
		ToDate:    r.ToDate,
	}
}
