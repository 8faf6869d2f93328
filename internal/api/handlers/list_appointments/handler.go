package list_appointments

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const msgInvalidPagination = "skip и take должны быть целыми числами"

type AppointmentService interface {
	List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error)
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

// Handle GET /api/v1/appointments
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

	req := &models.ListAppointmentsRequest{
		CustomerID: handlers.QueryString(r, "customerId"),
		StaffID:    handlers.QueryString(r, "staffId"),
		ServiceID:  handlers.QueryString(r, "serviceId"),
		Status:     handlers.QueryString(r, "status"),
		StartFrom:  handlers.QueryString(r, "startFrom"),
		EndTo:      handlers.QueryString(r, "endTo"),
		Skip:       skip,
		Take:       take,
		OrderBy:    handlers.QueryString(r, "orderBy"),
		OrderDir:   handlers.QueryString(r, "orderDir"),
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())
			return
		}
		h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved: count=%d, total=%d", len(resp.Items), resp.Total)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
