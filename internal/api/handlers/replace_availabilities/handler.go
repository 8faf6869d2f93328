package replace_availabilities

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	replaceAvailabilities "github.com/m04kA/SMC-SalonService/internal/usecase/replace_availabilities"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStaffMismatch      = "все окна должны принадлежать сотруднику из staffId"
	msgInvalidTimeRange   = "startTime должен быть раньше endTime"
	msgStaffNotFound      = "сотрудник не найден"
	msgBusy               = "расписание сотрудника изменяется, повторите позже"
)

type Handler struct {
	useCase ReplaceAvailabilitiesUseCase
	logger  Logger
}

func NewHandler(useCase ReplaceAvailabilitiesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/staff-availabilities/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	var req BulkReplaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff-availabilities/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidBody, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(actor, &req))
	if err != nil {
		var overlap *replaceAvailabilities.BatchOverlapError
		switch {
		case errors.As(err, &overlap):
			h.logger.Warn("PUT /staff-availabilities/bulk - Batch overlap: staff_id=%s, day=%s", req.StaffID, overlap.Day)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeBatchOverlap, overlap.Error(), toBatchOverlapDetails(overlap))

		case errors.Is(err, replaceAvailabilities.ErrStaffMismatch):
			handlers.RespondBadRequest(w, handlers.CodeStaffMismatch, msgStaffMismatch)

		case errors.Is(err, replaceAvailabilities.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, handlers.CodeInvalidTimeRange, msgInvalidTimeRange)

		case errors.Is(err, replaceAvailabilities.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())

		case errors.Is(err, replaceAvailabilities.ErrStaffNotFound):
			handlers.RespondNotFound(w, handlers.CodeStaffNotFound, msgStaffNotFound)

		case errors.Is(err, replaceAvailabilities.ErrBusy):
			h.logger.Warn("PUT /staff-availabilities/bulk - Schedule busy: staff_id=%s", req.StaffID)
			handlers.RespondConflict(w, handlers.CodeScheduleBusy, msgBusy)

		default:
			h.logger.Error("PUT /staff-availabilities/bulk - Failed to replace availabilities: staff_id=%s, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff-availabilities/bulk - Availabilities replaced: staff_id=%s, count=%d, by=%s",
		result.StaffID, len(result.Items), actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
