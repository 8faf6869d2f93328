package list_availabilities

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities/models"
)

const msgInvalidPagination = "skip и take должны быть целыми числами"

type AvailabilityService interface {
	List(ctx context.Context, req *models.ListAvailabilitiesRequest) (*models.AvailabilityListResponse, error)
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

// Handle GET /api/v1/staff-availabilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	skip, err := handlers.QueryInt(r, "skip")
	if err != nil {
		handlers.RespondBadRequest(w, handlers.CodeValidation, msgInvalidPagination)
		return
	}
	take, err := handlers.QueryInt(r, "take")
	if err != nil {
		handlers.RespondBadRequest(w, handlers.CodeValidation, msgInvalidPagination)
		return
	}

	resp, err := h.service.List(r.Context(), &models.ListAvailabilitiesRequest{
		StaffID: handlers.QueryString(r, "staffId"),
		Day:     handlers.QueryString(r, "day"),
		Skip:    skip,
		Take:    take,
	})
	if err != nil {
		if errors.Is(err, availabilities.ErrInvalidInput) {
			h.logger.Warn("GET /staff-availabilities - Validation failed: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())
			return
		}
		h.logger.Error("GET /staff-availabilities - Failed to list availabilities: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff-availabilities - Availabilities retrieved: count=%d, total=%d", len(resp.Items), resp.Total)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
