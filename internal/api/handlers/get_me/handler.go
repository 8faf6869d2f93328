package get_me

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
)

const msgMissingIdentity = "требуется аутентификация"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Response проверенная личность
type Response struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/auth/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /auth/me - Missing identity")
		handlers.RespondUnauthorized(w, handlers.CodeMissingAuthToken, msgMissingIdentity)
		return
	}

	h.logger.Info("GET /auth/me - uid=%s", id.UID)
	handlers.RespondJSON(w, http.StatusOK, Response{UID: id.UID, Email: id.Email})
}
