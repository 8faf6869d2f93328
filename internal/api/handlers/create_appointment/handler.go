package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeRange   = "endAt должен быть позже startAt"
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

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	var req models.CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidBody, msgInvalidRequestBody)
		return
	}

	appt, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, handlers.CodeInvalidTimeRange, msgInvalidTimeRange)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())

		case errors.Is(err, appointments.ErrReferenceNotFound):
			h.logger.Warn("POST /appointments - Reference not found: service_id=%s, customer_id=%s", req.ServiceID, req.CustomerID)
			handlers.RespondNotFound(w, handlers.CodeReferenceNotFound, msgReferenceNotFound)

		case errors.Is(err, appointments.ErrStaffBusy):
			h.logger.Warn("POST /appointments - Staff busy: start=%s, end=%s", req.StartAt, req.EndAt)
			handlers.RespondConflict(w, handlers.CodeStaffBusy, msgStaffBusy)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, customer_id=%s, by=%s", appt.ID, appt.CustomerID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, appt)
}
