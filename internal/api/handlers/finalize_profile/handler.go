package finalize_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/users"
	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
)

const (
	msgMissingIdentity    = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmailTaken         = "пользователь с таким email уже существует"
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

// Handle POST /api/v1/users/me/finalize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /users/me/finalize - Missing identity")
		handlers.RespondUnauthorized(w, handlers.CodeMissingAuthToken, msgMissingIdentity)
		return
	}

	var req models.FinalizeProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/me/finalize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidBody, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.FinalizeProfile(r.Context(), id.UID, id.Email, &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /users/me/finalize - Validation failed: uid=%s, error=%v", id.UID, err)
			handlers.RespondBadRequest(w, handlers.CodeValidation, err.Error())

		case errors.Is(err, users.ErrEmailTaken):
			h.logger.Warn("POST /users/me/finalize - Email taken: uid=%s", id.UID)
			handlers.RespondConflict(w, handlers.CodeEmailTaken, msgEmailTaken)

		default:
			h.logger.Error("POST /users/me/finalize - Failed to finalize profile: uid=%s, error=%v", id.UID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/me/finalize - Profile ready: uid=%s, user_id=%s", id.UID, resp.User.ID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
