package get_availability

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
)

type AvailabilityService interface {
	GetByID(ctx context.Context, actor domain.Actor, id string) (*models.AvailabilityResponse, error)
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

// Handle GET /api/v1/staff-availabilities/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor, _ := middleware.GetActor(r.Context())

	item, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, availabilities.ErrAvailabilityNotFound):
			h.logger.Warn("GET /staff-availabilities/{id} - Availability not found: id=%s", id)
			handlers.RespondNotFound(w, handlers.CodeAvailabilityNotFound, msgNotFound)

		case errors.Is(err, availabilities.ErrNotOwner):
			h.logger.Warn("GET /staff-availabilities/{id} - Not owner: id=%s, by=%s", id, actor.UserID)
			handlers.RespondForbidden(w, handlers.CodeNotOwnerOfAvailability, msgNotOwner)

		default:
			h.logger.Error("GET /staff-availabilities/{id} - Failed to get availability: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}
