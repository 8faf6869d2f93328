package delete_availability

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities/models"
)

const (
	msgNotFound = "окно доступности не найдено"
	msgNotOwner = "окно принадлежит другому сотруднику"
	msgBusy     = "расписание сотрудника изменяется, повторите позже"
)

type AvailabilityService interface {
	Delete(ctx context.Context, actor domain.Actor, id string) (*models.DeleteAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/staff-availabilities/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor, _ := middleware.GetActor(r.Context())

	resp, err := h.service.Delete(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, availabilities.ErrAvailabilityNotFound):
			handlers.RespondNotFound(w, handlers.CodeAvailabilityNotFound, msgNotFound)

		case errors.Is(err, availabilities.ErrNotOwner):
			h.logger.Warn("DELETE /staff-availabilities/{id} - Not owner: id=%s, by=%s", id, actor.UserID)
			handlers.RespondForbidden(w, handlers.CodeNotOwnerOfAvailability, msgNotOwner)

		case errors.Is(err, availabilities.ErrBusy):
			handlers.RespondConflict(w, handlers.CodeScheduleBusy, msgBusy)

		default:
			h.logger.Error("DELETE /staff-availabilities/{id} - Failed to delete availability: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /staff-availabilities/{id} - Availability deleted: id=%s, by=%s", id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
