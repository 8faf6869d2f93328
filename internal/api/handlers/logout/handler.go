package logout

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

type Logger interface {
	Info(format string, v ...interface{})
}

// Response ответ на выход
type Response struct {
	OK bool `json:"ok"`
}

type Handler struct {
	cookie handlers.CookieSettings
	logger Logger
}

func NewHandler(cookie handlers.CookieSettings, logger Logger) *Handler {
	return &Handler{
		cookie: cookie,
		logger: logger,
	}
}

// Handle POST /api/v1/auth/logout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.ClearSessionCookie(w, h.cookie)

	h.logger.Info("POST /auth/logout - Session cookie cleared")
	handlers.RespondJSON(w, http.StatusOK, Response{OK: true})
}
