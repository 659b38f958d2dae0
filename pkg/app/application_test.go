package app

import (
	"campsite/pkg/config"
	"campsite/pkg/logger"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoHandler struct{}

func (echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/reservation", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	})
	router.GET("/reservation/:id", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		panic("boom")
	})
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestApplication(t *testing.T, ping error) *Application {
	t.Helper()
	cfg := &config.Config{
		Port:               "0",
		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
		RequestTimeout:     time.Second,
		IdempotencyTTL:     time.Minute,
		MaxRequestSize:     1024,
		CORSAllowedOrigins: []string{"https://example.com"},
		ShutdownTimeout:    time.Second,
		Log:                logger.NewNop(),
	}
	a := NewApplication(cfg)
	a.SetApp(echoHandler{}, pingFunc(func(context.Context) error { return ping }))
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateLimiter.Stop()
	})
	return a
}

func TestApplication_Routes(t *testing.T) {
	a := newTestApplication(t, errors.New("store down"))
	h := a.Handler()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"ready reflects store", http.MethodGet, "/ready", "", http.StatusServiceUnavailable},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"app route", http.MethodPost, "/reservation", `{}`, http.StatusCreated},
		{"panic recovered", http.MethodGet, "/reservation/1", "", http.StatusInternalServerError},
		{"body too large", http.MethodPost, "/reservation", strings.Repeat("x", 2048), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestApplication_AppRoutesCarryRequestIDAndCORS(t *testing.T) {
	a := newTestApplication(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/reservation", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestApplication_OnShutdownHooksRun(t *testing.T) {
	a := newTestApplication(t, nil)

	var order []string
	a.OnShutdown(func() { order = append(order, "producer") })
	a.OnShutdown(func() { order = append(order, "clients") })

	a.gracefulShutdown()

	assert.Equal(t, []string{"producer", "clients"}, order)
}
