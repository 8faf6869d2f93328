package list_services

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

const msgInvalidPagination = "skip и take должны быть целыми числами"

type CatalogService interface {
	List(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error)
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

// Handle GET /api/v1/services
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

	req := &models.ListServicesRequest{
		Search:   handlers.QueryString(r, "search"),
		Skip:     skip,
		Take:     take,
		OrderBy:  handlers.QueryString(r, "orderBy"),
		OrderDir: handlers.QueryString(r, "orderDir"),
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("GET /services - Validation failed: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())
			return
		}
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services retrieved: count=%d, total=%d", len(resp.Items), resp.Total)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
