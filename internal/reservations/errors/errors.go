package errors

import (
	apperrors "campsite/pkg/errors"
	"errors"
	"net/http"
)

const ConflictMessage = "Campsite already reserved for provided dates. Please try another dates"

var ErrNotFound = errors.New("reservation not found")

// Conflict is returned when the requested dates overlap an existing reservation.
func Conflict() *apperrors.AppError {
	return apperrors.New(apperrors.CodeConflict, ConflictMessage, http.StatusBadRequest)
}

func IsConflict(err error) bool {
	return apperrors.HasCode(err, apperrors.CodeConflict)
}
