package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusBadRequest)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "Reservation not found",
			},
			expected: "NOT_FOUND: Reservation not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if errors.Unwrap(appErr) != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{name: "explicit status", err: New(CodeNotFound, "not found", http.StatusNotFound), want: http.StatusNotFound},
		{name: "missing status defaults to 500", err: &AppError{Code: CodeInternal}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Reservation", int64(12345))

	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Message != "Reservation not found" {
		t.Errorf("expected message 'Reservation not found', got %s", err.Message)
	}
	if err.Details["id"] != int64(12345) {
		t.Errorf("expected id 12345, got %v", err.Details["id"])
	}
}

func TestValidation(t *testing.T) {
	details := map[string]any{"First name shouldn't be blank": ""}
	err := Validation("Invalid reservation", details)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if v, ok := err.Details["First name shouldn't be blank"]; !ok || v != "" {
		t.Errorf("expected rejected value to be echoed, got %v", err.Details)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{name: "invalid input", err: InvalidInput("bad id"), code: CodeInvalidInput, status: http.StatusBadRequest},
		{name: "conflict", err: Conflict("taken"), code: CodeConflict, status: http.StatusConflict},
		{name: "internal", err: Internal("boom", errors.New("db")), code: CodeInternal, status: http.StatusInternalServerError},
		{name: "timeout", err: Timeout("too slow"), code: CodeTimeout, status: http.StatusServiceUnavailable},
		{name: "unavailable", err: Unavailable("MongoDB"), code: CodeUnavailable, status: http.StatusServiceUnavailable},
		{name: "rate limited", err: RateLimited(), code: CodeRateLimited, status: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.HTTPStatus)
			}
		})
	}
}

func TestIsAppError(t *testing.T) {
	appErr := NotFound("Reservation")
	wrapped := fmt.Errorf("lookup: %w", appErr)
	regularErr := errors.New("regular error")

	if !IsAppError(appErr) {
		t.Errorf("IsAppError() should return true for AppError")
	}
	if !IsAppError(wrapped) {
		t.Errorf("IsAppError() should see through wrapping")
	}
	if IsAppError(regularErr) {
		t.Errorf("IsAppError() should return false for regular error")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("tx: %w", Conflict("taken"))

	if !HasCode(err, CodeConflict) {
		t.Errorf("HasCode() should match wrapped conflict")
	}
	if HasCode(err, CodeNotFound) {
		t.Errorf("HasCode() should not match a different code")
	}
	if HasCode(errors.New("plain"), CodeConflict) {
		t.Errorf("HasCode() should be false for plain errors")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Reservation")
	regularErr := errors.New("regular error")

	if AsAppError(appErr) != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}

	result := AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
}

func TestAppError_ToJSON(t *testing.T) {
	err := NotFoundWithID("Reservation", 5)

	var body ErrorResponse
	if jsonErr := json.Unmarshal(err.ToJSON(), &body); jsonErr != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", jsonErr)
	}
	if body.Error != "Reservation not found" {
		t.Errorf("expected error message, got %q", body.Error)
	}
	if body.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, body.Code)
	}
}
