package create_service

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type CatalogService interface {
	Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidBody, msgInvalidRequestBody)
		return
	}

	svc, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("POST /services - Validation failed: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())
			return
		}
		h.logger.Error("POST /services - Failed to create service: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%s", svc.ID)
	handlers.RespondJSON(w, http.StatusCreated, svc)
}
