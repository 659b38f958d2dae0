package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestReservationRequest_ToReservation(t *testing.T) {
	from := time.Date(2030, 5, 10, 12, 0, 0, 0, time.UTC)
	to := from.Add(48 * time.Hour)

	req := &ReservationRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@gmail.com",
		FromDate:  from,
		ToDate:    to,
	}

	tests := []struct {
		name string
		id   int64
	}{
		{name: "new reservation", id: 0},
		{name: "existing reservation", id: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := req.ToReservation(tt.id)
			if got.ID != tt.id {
				t.Errorf("ID = %d, want %d", got.ID, tt.id)
			}
			if got.FirstName != "John" || got.LastName != "Doe" || got.Email != "john.doe@gmail.com" {
				t.Errorf("unexpected guest fields: %+v", got)
			}
			if !got.FromDate.Equal(from) || !got.ToDate.Equal(to) {
				t.Errorf("unexpected dates: %v - %v", got.FromDate, got.ToDate)
			}
		})
	}
}

func TestNewReservationRequest(t *testing.T) {
	r := &Reservation{
		ID:        7,
		FirstName: "Jane",
		LastName:  "Roe",
		Email:     "jane@example.com",
		FromDate:  time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		ToDate:    time.Date(2030, 1, 3, 0, 0, 0, 0, time.UTC),
	}

	req := NewReservationRequest(r)
	if req.ID == nil || *req.ID != 7 {
		t.Fatalf("expected id 7, got %v", req.ID)
	}

	r.ID = 8
	if *req.ID != 7 {
		t.Errorf("request id must not alias the record id")
	}
}

func TestReservationRequest_JSONShape(t *testing.T) {
	body := `{"firstName":"John","lastName":"Doe","email":"john.doe@gmail.com","fromDate":"2030-05-10T12:00:00Z","toDate":"2030-05-12T12:00:00Z"}`

	var req ReservationRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if req.ID != nil {
		t.Errorf("expected no id, got %d", *req.ID)
	}
	if req.FromDate.Day() != 10 || req.ToDate.Day() != 12 {
		t.Errorf("unexpected dates: %v - %v", req.FromDate, req.ToDate)
	}

	out, err := json.Marshal(AvailabilityRange{Availability: []Availability{}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"availability":[]}` {
		t.Errorf("unexpected availability json: %s", out)
	}
}
