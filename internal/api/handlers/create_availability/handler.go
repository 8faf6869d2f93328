package create_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeRange   = "startTime должен быть раньше endTime"
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

// Handle POST /api/v1/staff-availabilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	var req models.CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff-availabilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidBody, msgInvalidRequestBody)
		return
	}

	item, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		var overlap *availabilities.OverlapError
		switch {
		case errors.As(err, &overlap):
			h.logger.Warn("POST /staff-availabilities - Overlap: staff_id=%s, conflict_id=%s", req.StaffID, overlap.ConflictID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeAvailabilityOverlap, overlap.Error(), overlapDetails(overlap))

		case errors.Is(err, availabilities.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, handlers.CodeInvalidTimeRange, msgInvalidTimeRange)

		case errors.Is(err, availabilities.ErrInvalidInput):
			h.logger.Warn("POST /staff-availabilities - Validation failed: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())

		case errors.Is(err, availabilities.ErrStaffNotFound):
			h.logger.Warn("POST /staff-availabilities - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, handlers.CodeStaffNotFound, msgStaffNotFound)

		case errors.Is(err, availabilities.ErrBusy):
			handlers.RespondConflict(w, handlers.CodeScheduleBusy, msgBusy)

		default:
			h.logger.Error("POST /staff-availabilities - Failed to create availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff-availabilities - Availability created: id=%s, staff_id=%s, by=%s", item.ID, item.StaffID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, item)
}
