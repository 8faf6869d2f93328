package update_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeRange   = "endAt должен быть позже startAt"
	msgNotFound           = "запись не найдена"
	msgNotOwner           = "недостаточно прав или запись принадлежит другому клиенту"
	msgCannotReassign     = "нельзя передать запись другому клиенту"
	msgReferenceNotFound  = "услуга, клиент или сотрудник не найдены"
	msgStaffBusy          = "у сотрудника уже есть запись на это время"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor, _ := middleware.GetActor(r.Context())

	var req models.UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidBody, msgInvalidRequestBody)
		return
	}

	appt, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, handlers.CodeAppointmentNotFound, msgNotFound)

		case errors.Is(err, appointments.ErrNotOwner):
			h.logger.Warn("PATCH /appointments/{id} - Access denied: id=%s, by=%s", id, actor.UserID)
			handlers.RespondForbidden(w, handlers.CodeInsufficientOrNotOwner, msgNotOwner)

		case errors.Is(err, appointments.ErrCannotReassignCustomer):
			h.logger.Warn("PATCH /appointments/{id} - Reassign attempt: id=%s, by=%s", id, actor.UserID)
			handlers.RespondForbidden(w, handlers.CodeCannotReassignCustomer, msgCannotReassign)

		case errors.Is(err, appointments.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, handlers.CodeInvalidTimeRange, msgInvalidTimeRange)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())

		case errors.Is(err, appointments.ErrReferenceNotFound):
			handlers.RespondNotFound(w, handlers.CodeReferenceNotFound, msgReferenceNotFound)

		case errors.Is(err, appointments.ErrStaffBusy):
			handlers.RespondConflict(w, handlers.CodeStaffBusy, msgStaffBusy)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated: id=%s, status=%s, by=%s", id, appt.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, appt)
}
