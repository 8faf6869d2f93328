package update_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeRange   = "startTime должен быть раньше endTime"
	msgNotFound           = "окно доступности не найдено"
	msgNotOwner           = "окно принадлежит другому сотруднику"
	msgCannotReassign     = "нельзя передать окно другому сотруднику"
	msgStaffNotFound      = "сотрудник не найден"
	msgBusy               = "расписание сотрудника изменяется, повторите позже"
)

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

// Handle PATCH /api/v1/staff-availabilities/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor, _ := middleware.GetActor(r.Context())

	var req models.UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /staff-availabilities/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidBody, msgInvalidRequestBody)
		return
	}

	item, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		var overlap *availabilities.OverlapError
		switch {
		case errors.As(err, &overlap):
			h.logger.Warn("PATCH /staff-availabilities/{id} - Overlap: id=%s, conflict_id=%s", id, overlap.ConflictID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeAvailabilityOverlap, overlap.Error(), map[string]string{
				"id":        overlap.ConflictID,
				"day":       string(overlap.Day),
				"startTime": overlap.StartTime.String(),
				"endTime":   overlap.EndTime.String(),
			})

		case errors.Is(err, availabilities.ErrAvailabilityNotFound):
			handlers.RespondNotFound(w, handlers.CodeAvailabilityNotFound, msgNotFound)

		case errors.Is(err, availabilities.ErrNotOwner):
			h.logger.Warn("PATCH /staff-availabilities/{id} - Not owner: id=%s, by=%s", id, actor.UserID)
			handlers.RespondForbidden(w, handlers.CodeNotOwnerOfAvailability, msgNotOwner)

		case errors.Is(err, availabilities.ErrCannotReassignStaff):
			h.logger.Warn("PATCH /staff-availabilities/{id} - Reassign attempt: id=%s, by=%s", id, actor.UserID)
			handlers.RespondForbidden(w, handlers.CodeCannotReassignStaff, msgCannotReassign)

		case errors.Is(err, availabilities.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, handlers.CodeInvalidTimeRange, msgInvalidTimeRange)

		case errors.Is(err, availabilities.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())

		case errors.Is(err, availabilities.ErrStaffNotFound):
			handlers.RespondNotFound(w, handlers.CodeStaffNotFound, msgStaffNotFound)

		case errors.Is(err, availabilities.ErrBusy):
			handlers.RespondConflict(w, handlers.CodeScheduleBusy, msgBusy)

		default:
			h.logger.Error("PATCH /staff-availabilities/{id} - Failed to update availability: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /staff-availabilities/{id} - Availability updated: id=%s, by=%s", id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, item)
}
