package handler

import (
	"bytes"
	reservationerrors "campsite/internal/reservations/errors"
	"campsite/internal/reservations/repository"
	"campsite/internal/reservations/service"
	"campsite/internal/reservations/validator"
	"campsite/pkg/client"
	"campsite/pkg/config"
	apperrors "campsite/pkg/errors"
	"campsite/pkg/logger"
	"campsite/pkg/model"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return now.AddDate(0, 0, n)
}

type mockReservationService struct {
	createFunc       func(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	updateFunc       func(ctx context.Context, id int64, req *model.ReservationRequest) (*model.Reservation, error)
	getByIDFunc      func(ctx context.Context, id int64) (*model.Reservation, error)
	deleteFunc       func(ctx context.Context, id int64) error
	availabilityFunc func(ctx context.Context, from, to *time.Time) ([]model.Availability, error)
}

func (m *mockReservationService) CreateOrUpdate(ctx context.Context, req *model.ReservationRequest, existingID *int64) (*model.Reservation, error) {
	if existingID != nil {
		return m.Update(ctx, *existingID, req)
	}
	return m.Create(ctx, req)
}

func (m *mockReservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return req.ToReservation(1), nil
}

func (m *mockReservationService) Update(ctx context.Context, id int64, req *model.ReservationRequest) (*model.Reservation, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return req.ToReservation(id), nil
}

func (m *mockReservationService) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, apperrors.NotFoundWithID("Reservation", id)
}

func (m *mockReservationService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockReservationService) Exists(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

func (m *mockReservationService) GetAvailability(ctx context.Context, from, to *time.Time) ([]model.Availability, error) {
	if m.availabilityFunc != nil {
		return m.availabilityFunc(ctx, from, to)
	}
	return []model.Availability{}, nil
}

func newRouter(svc service.ReservationService) *httprouter.Router {
	router := httprouter.New()
	NewReservationHandler(svc, logger.NewNop()).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate_ReturnsID(t *testing.T) {
	router := newRouter(&mockReservationService{
		createFunc: func(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
			return req.ToReservation(17), nil
		},
	})

	rec := serve(router, http.MethodPost, "/reservation", []byte(`{"firstName":"John","lastName":"Smith","email":"j@x.com","fromDate":"2026-06-03T00:00:00Z","toDate":"2026-06-04T00:00:00Z"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":17}`, rec.Body.String())
}

func TestCreate_ErrorShapes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "malformed body",
			body:     `{"firstName":`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Invalid request body","code":"INVALID_INPUT"}`,
		},
		{
			name:     "validation is the bare details map",
			body:     `{}`,
			err:      apperrors.Validation(validator.MsgFirstNameBlank, map[string]any{validator.MsgFirstNameBlank: ""}),
			wantCode: http.StatusBadRequest,
			wantBody: `{"First name shouldn't be blank":""}`,
		},
		{
			name:     "conflict is the plain message",
			body:     `{}`,
			err:      reservationerrors.Conflict(),
			wantCode: http.StatusBadRequest,
			wantBody: reservationerrors.ConflictMessage,
		},
		{
			name:     "storage failure hides the cause",
			body:     `{}`,
			err:      apperrors.Internal("Failed to save reservation", errors.New("disk full")),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Internal server error","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockReservationService{
				createFunc: func(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
					return nil, tt.err
				},
			})

			rec := serve(router, http.MethodPost, "/reservation", []byte(tt.body))

			assert.Equal(t, tt.wantCode, rec.Code)
			if json.Valid([]byte(tt.wantBody)) {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	router := newRouter(&mockReservationService{
		getByIDFunc: func(ctx context.Context, id int64) (*model.Reservation, error) {
			if id != 3 {
				return nil, apperrors.NotFoundWithID("Reservation", id)
			}
			return &model.Reservation{ID: 3, FirstName: "John", LastName: "Smith", Email: "j@x.com", FromDate: day(2), ToDate: day(3)}, nil
		},
	})

	rec := serve(router, http.MethodGet, "/reservation/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.ReservationRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.ID)
	assert.Equal(t, int64(3), *got.ID)
	assert.Equal(t, "John", got.FirstName)

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/reservation/4", nil).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/reservation/abc", nil).Code)
}

func TestAvailability_DispatchesFromIDRoute(t *testing.T) {
	var gotFrom, gotTo *time.Time
	router := newRouter(&mockReservationService{
		availabilityFunc: func(ctx context.Context, from, to *time.Time) ([]model.Availability, error) {
			gotFrom, gotTo = from, to
			return []model.Availability{{FromDate: day(1), ToDate: day(5)}}, nil
		},
	})

	rec := serve(router, http.MethodGet, "/reservation/availability?from=2026-06-02T00:00:00Z", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"availability":[{"fromDate":"2026-06-02T00:00:00Z","toDate":"2026-06-06T00:00:00Z"}]}`, rec.Body.String())
	require.NotNil(t, gotFrom)
	assert.True(t, gotFrom.Equal(day(1)))
	assert.Nil(t, gotTo)

	rec = serve(router, http.MethodGet, "/reservation/availability?to=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdate(t *testing.T) {
	router := newRouter(&mockReservationService{
		updateFunc: func(ctx context.Context, id int64, req *model.ReservationRequest) (*model.Reservation, error) {
			if id == 9 {
				return nil, apperrors.NotFoundWithID("Reservation", id)
			}
			return req.ToReservation(id), nil
		},
	})
	body := []byte(`{"firstName":"Jane","lastName":"Doe","email":"jd@x.com","fromDate":"2026-06-03T00:00:00Z","toDate":"2026-06-04T00:00:00Z"}`)

	rec := serve(router, http.MethodPut, "/reservation/2", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.ReservationRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.ID)
	assert.Equal(t, int64(2), *got.ID)
	assert.Equal(t, "Jane", got.FirstName)

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPut, "/reservation/9", body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPut, "/reservation/x", body).Code)
}

func TestDelete(t *testing.T) {
	var deleted int64
	router := newRouter(&mockReservationService{
		deleteFunc: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	})

	rec := serve(router, http.MethodDelete, "/reservation/12", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", string(bytes.TrimSpace(rec.Body.Bytes())))
	assert.Equal(t, int64(12), deleted)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodDelete, "/reservation/-", nil).Code)
}

func TestReservationLifecycle_OverHTTP(t *testing.T) {
	clock := func() time.Time { return now }
	cfg := &config.Config{Log: logger.NewNop(), AvailabilityWindowDays: 30}
	svc := service.NewReservationService(
		repository.NewMemoryReservationRepository(),
		validator.NewReservationValidator(cfg.Log, clock),
		nil,
		cfg,
		clock,
	)
	server := httptest.NewServer(newRouter(svc))
	defer server.Close()

	api := client.NewReservationClient(server.URL)
	ctx := context.Background()

	resp, err := api.Create(ctx, &model.ReservationRequest{
		FirstName: "John", LastName: "Smith", Email: "john@example.com",
		FromDate: day(3), ToDate: day(4),
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.String())
	id, err := api.DecodeCreated(resp)
	require.NoError(t, err)

	resp, err = api.Create(ctx, &model.ReservationRequest{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		FromDate: day(2), ToDate: day(5),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, reservationerrors.ConflictMessage, string(resp.Body))

	resp, err = api.Availability(ctx, day(1), day(6))
	require.NoError(t, err)
	blocks, err := api.DecodeAvailability(resp)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.True(t, blocks[0].ToDate.Equal(day(2)))
	assert.True(t, blocks[1].FromDate.Equal(day(5)))

	resp, err = api.Update(ctx, id, &model.ReservationRequest{
		FirstName: "John", LastName: "Smith", Email: "john@example.com",
		FromDate: day(7), ToDate: day(8),
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.String())
	updated, err := api.DecodeReservation(resp)
	require.NoError(t, err)
	assert.True(t, updated.FromDate.Equal(day(7)))

	resp, err = api.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = api.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = api.Update(ctx, id, &model.ReservationRequest{
		FirstName: "John", LastName: "Smith", Email: "john@example.com",
		FromDate: day(7), ToDate: day(8),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
