package client

import (
	"campsite/pkg/model"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const reservationPath = "/reservation"

type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(baseURL string) *ReservationClient {
	return &ReservationClient{
		httpClient: NewHttpClient(baseURL),
	}
}

// WithHTTPClient swaps the transport, e.g. for httptest servers.
func (c *ReservationClient) WithHTTPClient(hc *HttpClient) *ReservationClient {
	c.httpClient = hc
	return c
}

func (c *ReservationClient) Create(ctx context.Context, req *model.ReservationRequest, idempotencyKey string) (*Response, error) {
	return c.httpClient.POST(ctx, reservationPath, req, idempotencyHeaders(idempotencyKey))
}

func (c *ReservationClient) GetByID(ctx context.Context, id int64) (*Response, error) {
	return c.httpClient.GET(ctx, reservationPath+"/"+strconv.FormatInt(id, 10))
}

func (c *ReservationClient) Update(ctx context.Context, id int64, req *model.ReservationRequest) (*Response, error) {
	return c.httpClient.PUT(ctx, reservationPath+"/"+strconv.FormatInt(id, 10), req, nil)
}

func (c *ReservationClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.httpClient.DELETE(ctx, reservationPath+"/"+strconv.FormatInt(id, 10))
}

// Availability queries free blocks. Zero bounds fall back to the server default window.
func (c *ReservationClient) Availability(ctx context.Context, from, to time.Time) (*Response, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.UTC().Format(time.RFC3339))
	}
	if !to.IsZero() {
		q.Set("to", to.UTC().Format(time.RFC3339))
	}

	path := reservationPath + "/availability"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.httpClient.GET(ctx, path)
}

func (c *ReservationClient) DecodeCreated(resp *Response) (int64, error) {
	var created model.CreatedReservation
	if err := resp.DecodeJSON(&created); err != nil {
		return 0, fmt.Errorf("could not decode created reservation:\n%s\n%w", resp.String(), err)
	}
	return created.ID, nil
}

func (c *ReservationClient) DecodeReservation(resp *Response) (*model.ReservationRequest, error) {
	var reservation model.ReservationRequest
	if err := resp.DecodeJSON(&reservation); err != nil {
		return nil, fmt.Errorf("could not decode reservation:\n%s\n%w", resp.String(), err)
	}
	return &reservation, nil
}

func (c *ReservationClient) DecodeAvailability(resp *Response) ([]model.Availability, error) {
	var availability model.AvailabilityRange
	if err := resp.DecodeJSON(&availability); err != nil {
		return nil, fmt.Errorf("could not decode availability:\n%s\n%w", resp.String(), err)
	}
	return availability.Availability, nil
}

func idempotencyHeaders(key string) map[string]string {
	if key == "" {
		return nil
	}
	return map[string]string{"Idempotency-Key": key}
}
