package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/auth"
	"github.com/m04kA/SMC-SalonService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIDToken     = "idToken обязателен"
	msgInvalidToken       = "недействительный ID токен"
)

type Handler struct {
	service AuthService
	cookie  handlers.CookieSettings
	logger  Logger
}

func NewHandler(service AuthService, cookie handlers.CookieSettings, logger Logger) *Handler {
	return &Handler{
		service: service,
		cookie:  cookie,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidBody, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /auth/login - Missing idToken")
			handlers.RespondBadRequest(w, handlers.CodeValidation, msgMissingIDToken)

		case errors.Is(err, auth.ErrInvalidToken):
			h.logger.Warn("POST /auth/login - Invalid idToken")
			handlers.RespondUnauthorized(w, handlers.CodeInvalidAuthToken, msgInvalidToken)

		default:
			h.logger.Error("POST /auth/login - Failed to login: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if resp.SessionCookie != "" {
		handlers.SetSessionCookie(w, h.cookie, resp.SessionCookie, resp.ExpiresIn)
	}

	h.logger.Info("POST /auth/login - Login processed: authenticated=%t", resp.Authenticated)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
