package update_user

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/users"
	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
)

const (
	msgProfileNotFinalized = "профиль не заполнен"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgNotFound            = "пользователь не найден"
	msgRoleChangeForbidden = "менять роль может только владелец"
	msgEmailTaken          = "пользователь с таким email уже существует"
)

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

// Handle PATCH /api/v1/users/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondForbidden(w, handlers.CodeProfileNotFinalized, msgProfileNotFinalized)
		return
	}

	var req models.UpdateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidBody, msgInvalidRequestBody)
		return
	}

	user, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PATCH /users/{id} - User not found: user_id=%s", id)
			handlers.RespondNotFound(w, handlers.CodeUserNotFound, msgNotFound)

		case errors.Is(err, users.ErrRoleChangeForbidden):
			h.logger.Warn("PATCH /users/{id} - Role change forbidden: user_id=%s, by=%s", id, actor.UserID)
			handlers.RespondForbidden(w, handlers.CodeRoleChangeForbidden, msgRoleChangeForbidden)

		case errors.Is(err, users.ErrEmailTaken):
			h.logger.Warn("PATCH /users/{id} - Email taken: user_id=%s", id)
			handlers.RespondConflict(w, handlers.CodeEmailTaken, msgEmailTaken)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PATCH /users/{id} - Validation failed: user_id=%s, error=%v", id, err)
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())

		default:
			h.logger.Error("PATCH /users/{id} - Failed to update user: user_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /users/{id} - User updated: user_id=%s, by=%s", id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, user)
}
