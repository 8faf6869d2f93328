package delete_service

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

const (
	msgNotFound = "услуга не найдена"
	msgInUse    = "на услугу есть записи, удаление невозможно"
)

type CatalogService interface {
	Delete(ctx context.Context, id string) (*models.DeleteServiceResponse, error)
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

// Handle DELETE /api/v1/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	resp, err := h.service.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /services/{id} - Service not found: service_id=%s", id)
			handlers.RespondNotFound(w, handlers.CodeServiceNotFound, msgNotFound)

		case errors.Is(err, catalog.ErrServiceInUse):
			h.logger.Warn("DELETE /services/{id} - Service in use: service_id=%s", id)
			handlers.RespondConflict(w, handlers.CodeServiceInUse, msgInUse)

		default:
			h.logger.Error("DELETE /services/{id} - Failed to delete service: service_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted: service_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
