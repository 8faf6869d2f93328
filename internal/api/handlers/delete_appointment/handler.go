package delete_appointment

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const msgNotFound = "запись не найдена"

type AppointmentService interface {
	Delete(ctx context.Context, id string) (*models.DeleteAppointmentResponse, error)
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

// Handle DELETE /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	resp, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, appointments.ErrAppointmentNotFound) {
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w, handlers.CodeAppointmentNotFound, msgNotFound)
			return
		}
		h.logger.Error("DELETE /appointments/{id} - Failed to delete appointment: id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment deleted: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
