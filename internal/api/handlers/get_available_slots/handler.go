package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStep   = "stepMinutes должен быть целым числом"
	msgInvalidBuffer = "bufferMinutes должен быть целым числом"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound      = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/availabilities/day
// Query params: date (YYYY-MM-DD), serviceId, staffId, stepMinutes, bufferMinutes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	serviceID := q.Get("serviceId")

	step, err := handlers.QueryInt(r, "stepMinutes")
	if err != nil {
		h.logger.Warn("GET /public/availabilities/day - Invalid stepMinutes: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeValidation, msgInvalidStep)
		return
	}

	buffer, err := handlers.QueryInt(r, "bufferMinutes")
	if err != nil {
		h.logger.Warn("GET /public/availabilities/day - Invalid bufferMinutes: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeValidation, msgInvalidBuffer)
		return
	}

	req := ToUseCaseRequest(date, serviceID, handlers.QueryString(r, "staffId"), step, buffer)

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /public/availabilities/day - Invalid date: date=%q", date)
			handlers.RespondBadRequest(w, handlers.CodeInvalidDate, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /public/availabilities/day - Validation failed: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /public/availabilities/day - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, handlers.CodeServiceNotFound, msgNotFound)

		default:
			h.logger.Error("GET /public/availabilities/day - Failed to compute slots: date=%s, service_id=%s, error=%v",
				date, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/availabilities/day - Slots retrieved: date=%s, service_id=%s, slots_count=%d",
		date, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
