package get_appointment

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
	GetByID(ctx context.Context, actor domain.Actor, id string) (*models.AppointmentResponse, error)
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

// Handle GET /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor, _ := middleware.GetActor(r.Context())

	appt, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id} - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w, handlers.CodeAppointmentNotFound, msgNotFound)

		case errors.Is(err, appointments.ErrNotOwner):
			h.logger.Warn("GET /appointments/{id} - Access denied: id=%s, by=%s", id, actor.UserID)
			handlers.RespondForbidden(w, handlers.CodeInsufficientOrNotOwner, msgNotOwner)

		default:
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, appt)
}
