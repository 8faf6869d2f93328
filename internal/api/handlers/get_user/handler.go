package get_user

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/users"
	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
)

const msgNotFound = "пользователь не найден"

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			h.logger.Warn("GET /users/{id} - User not found: user_id=%s", id)
			handlers.RespondNotFound(w, handlers.CodeUserNotFound, msgNotFound)
			return
		}
		h.logger.Error("GET /users/{id} - Failed to get user: user_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{id} - User retrieved: user_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, user)
}
