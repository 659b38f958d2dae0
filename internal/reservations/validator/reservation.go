package validator

import (
	apperrors "campsite/pkg/errors"
	"campsite/pkg/logger"
	"campsite/pkg/model"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	MsgFirstNameBlank = "First name shouldn't be blank"
	MsgLastNameBlank  = "Last name shouldn't be blank"
	MsgEmailInvalid   = "Provided email not valid"
	MsgTooSoon        = "Unable to book campsite less than 1 day to arrival"
	MsgStartAfterEnd  = "Reservation start date is after end date"
	MsgTooLong        = "Max reservation are 3 days"

	minArrivalLead = 24 * time.Hour
	maxStay        = 72 * time.Hour
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// rule is one predicate in the ordered rule list. It returns the offending
// value and false when the request breaks it.
type rule struct {
	message string
	check   func(req *model.ReservationRequest, now time.Time) (any, bool)
}

type ReservationValidator struct {
	validate *validator.Validate
	clock    func() time.Time
	rules    []rule
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger, clock func() time.Time) *ReservationValidator {
	v := validator.New()

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		log.Fatal("Failed to register 'notblank' validator", "error", err)
	}
	if err := v.RegisterValidation("reservation_email", validateEmail); err != nil {
		log.Fatal("Failed to register 'reservation_email' validator", "error", err)
	}

	if clock == nil {
		clock = time.Now
	}

	rv := &ReservationValidator{
		validate: v,
		clock:    clock,
		logger:   log,
	}
	rv.rules = []rule{
		{MsgFirstNameBlank, rv.tagRule(func(r *model.ReservationRequest) string { return r.FirstName }, "notblank")},
		{MsgLastNameBlank, rv.tagRule(func(r *model.ReservationRequest) string { return r.LastName }, "notblank")},
		{MsgEmailInvalid, rv.tagRule(func(r *model.ReservationRequest) string { return r.Email }, "reservation_email")},
		{MsgTooSoon, func(r *model.ReservationRequest, now time.Time) (any, bool) {
			return r.FromDate, !now.Add(minArrivalLead).After(r.FromDate)
		}},
		{MsgStartAfterEnd, func(r *model.ReservationRequest, _ time.Time) (any, bool) {
			return r.FromDate, !r.FromDate.After(r.ToDate)
		}},
		{MsgTooLong, func(r *model.ReservationRequest, _ time.Time) (any, bool) {
			return r.ToDate, !r.ToDate.Add(-maxStay).After(r.FromDate)
		}},
	}

	return rv
}

func validateEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func (v *ReservationValidator) tagRule(field func(*model.ReservationRequest) string, tag string) func(*model.ReservationRequest, time.Time) (any, bool) {
	return func(r *model.ReservationRequest, _ time.Time) (any, bool) {
		value := field(r)
		return value, v.validate.Var(value, tag) == nil
	}
}

// Validate stops at the first broken rule. The returned error details map
// the rule message to the rejected value.
func (v *ReservationValidator) Validate(req *model.ReservationRequest) error {
	if req == nil {
		return apperrors.InvalidInput("reservation payload is required")
	}

	now := v.clock()
	for _, r := range v.rules {
		if value, ok := r.check(req, now); !ok {
			v.logger.Debug("Reservation rejected by validation", "rule", r.message)
			return apperrors.Validation(r.message, map[string]any{r.message: value})
		}
	}
	return nil
}
