package handler

import (
	reservationerrors "campsite/internal/reservations/errors"
	"campsite/internal/reservations/service"
	apperrors "campsite/pkg/errors"
	httputil "campsite/pkg/http"
	"campsite/pkg/logger"
	"campsite/pkg/model"
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const availabilityPath = "availability"

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, model.CreatedReservation{ID: created.ID}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

// GetByID also serves GET /reservation/availability, which shares the
// wildcard segment.
func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == availabilityPath {
		h.Availability(w, r, ps)
		return
	}

	id, err := httputil.ParseID(ps)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	reservation, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.NewReservationRequest(reservation)); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	from, err := httputil.ParseTimeQuery(r, "from")
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}
	to, err := httputil.ParseTimeQuery(r, "to")
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	blocks, err := h.service.GetAvailability(r.Context(), from, to)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.AvailabilityRange{Availability: blocks}); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	var req model.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.NewReservationRequest(updated)); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps)
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, true); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

// writeError keeps the public error shapes: a validation failure is the bare
// details map and a date conflict is the plain message.
func (h *ReservationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	var writeErr error
	switch {
	case apperrors.HasCode(err, apperrors.CodeValidation):
		writeErr = httputil.WriteJSON(w, http.StatusBadRequest, apperrors.AsAppError(err).Details)
	case reservationerrors.IsConflict(err):
		writeErr = httputil.WriteText(w, http.StatusBadRequest, reservationerrors.ConflictMessage)
	default:
		writeErr = httputil.WriteError(w, err)
	}
	if writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/reservation", h.Create)
	router.GET("/reservation/:id", h.GetByID)
	router.PUT("/reservation/:id", h.Update)
	router.DELETE("/reservation/:id", h.Delete)
}
