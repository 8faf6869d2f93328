package cancel_appointment

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const (
	msgNotFound = "запись не найдена"
	msgNotOwner = "недостаточно прав или запись принадлежит другому клиенту"
)

type AppointmentService interface {
	Cancel(ctx context.Context, actor domain.Actor, id string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

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

// Handle POST /api/v1/appointments/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor, _ := middleware.GetActor(r.Context())

	appt, err := h.service.Cancel(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/cancel - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w, handlers.CodeAppointmentNotFound, msgNotFound)

		case errors.Is(err, appointments.ErrNotOwner):
			h.logger.Warn("POST /appointments/{id}/cancel - Access denied: id=%s, by=%s", id, actor.UserID)
			handlers.RespondForbidden(w, handlers.CodeInsufficientOrNotOwner, msgNotOwner)

		default:
			h.logger.Error("POST /appointments/{id}/cancel - Failed to cancel appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/cancel - Appointment cancelled: id=%s, by=%s", id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, appt)
}
