package validator

import (
	apperrors "campsite/pkg/errors"
	"campsite/pkg/logger"
	"campsite/pkg/model"
	"errors"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestValidator() *ReservationValidator {
	return NewReservationValidator(logger.NewNop(), func() time.Time { return fixedNow })
}

func validRequest() *model.ReservationRequest {
	return &model.ReservationRequest{
		FirstName: "John",
		LastName:  "Smith",
		Email:     "john.smith@example.com",
		FromDate:  fixedNow.Add(48 * time.Hour),
		ToDate:    fixedNow.Add(72 * time.Hour),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *model.ReservationRequest)
		wantMsg   string
		wantValue any
	}{
		{
			name:   "valid request",
			mutate: func(r *model.ReservationRequest) {},
		},
		{
			name:      "blank first name",
			mutate:    func(r *model.ReservationRequest) { r.FirstName = "   " },
			wantMsg:   MsgFirstNameBlank,
			wantValue: "   ",
		},
		{
			name:      "empty last name",
			mutate:    func(r *model.ReservationRequest) { r.LastName = "" },
			wantMsg:   MsgLastNameBlank,
			wantValue: "",
		},
		{
			name:      "email without at sign",
			mutate:    func(r *model.ReservationRequest) { r.Email = "john.example.com" },
			wantMsg:   MsgEmailInvalid,
			wantValue: "john.example.com",
		},
		{
			name:      "email with illegal local part",
			mutate:    func(r *model.ReservationRequest) { r.Email = "jo hn@example.com" },
			wantMsg:   MsgEmailInvalid,
			wantValue: "jo hn@example.com",
		},
		{
			name: "arrival tomorrow minus a minute",
			mutate: func(r *model.ReservationRequest) {
				r.FromDate = fixedNow.Add(24*time.Hour - time.Minute)
			},
			wantMsg:   MsgTooSoon,
			wantValue: fixedNow.Add(24*time.Hour - time.Minute),
		},
		{
			name: "arrival exactly one day ahead",
			mutate: func(r *model.ReservationRequest) {
				r.FromDate = fixedNow.Add(24 * time.Hour)
				r.ToDate = r.FromDate
			},
		},
		{
			name: "start after end",
			mutate: func(r *model.ReservationRequest) {
				r.ToDate = r.FromDate.Add(-time.Hour)
			},
			wantMsg:   MsgStartAfterEnd,
			wantValue: fixedNow.Add(48 * time.Hour),
		},
		{
			name: "exactly three days",
			mutate: func(r *model.ReservationRequest) {
				r.ToDate = r.FromDate.Add(72 * time.Hour)
			},
		},
		{
			name: "longer than three days",
			mutate: func(r *model.ReservationRequest) {
				r.ToDate = r.FromDate.Add(72*time.Hour + time.Second)
			},
			wantMsg:   MsgTooLong,
			wantValue: fixedNow.Add(48*time.Hour + 72*time.Hour + time.Second),
		},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != apperrors.CodeValidation {
				t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeValidation)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", appErr.Message, tt.wantMsg)
			}
			if len(appErr.Details) != 1 {
				t.Fatalf("expected a single detail, got %v", appErr.Details)
			}
			got := appErr.Details[tt.wantMsg]
			if gotTime, ok := got.(time.Time); ok {
				if !gotTime.Equal(tt.wantValue.(time.Time)) {
					t.Errorf("value = %v, want %v", gotTime, tt.wantValue)
				}
				return
			}
			if got != tt.wantValue {
				t.Errorf("value = %v, want %v", got, tt.wantValue)
			}
		})
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	v := newTestValidator()
	req := validRequest()
	req.FirstName = ""
	req.Email = "not-an-email"
	req.FromDate = fixedNow

	err := v.Validate(req)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Message != MsgFirstNameBlank {
		t.Errorf("message = %q, want %q", appErr.Message, MsgFirstNameBlank)
	}
	if _, ok := appErr.Details[MsgEmailInvalid]; ok {
		t.Error("email rule should not be reported")
	}
}

func TestValidate_NilRequest(t *testing.T) {
	err := newTestValidator().Validate(nil)
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}
