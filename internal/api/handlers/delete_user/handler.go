package delete_user

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
	deleteUser "github.com/m04kA/SMC-SalonService/internal/usecase/delete_user"
)

const msgNotFound = "пользователь не найден"

type Handler struct {
	useCase DeleteUserUseCase
	logger  Logger
}

func NewHandler(useCase DeleteUserUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/users/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor, _ := middleware.GetActor(r.Context())

	result, err := h.useCase.Execute(r.Context(), &deleteUser.Request{ActorID: actor.UserID, UserID: id})
	if err != nil {
		if errors.Is(err, deleteUser.ErrUserNotFound) {
			h.logger.Warn("DELETE /users/{id} - User not found: user_id=%s", id)
			handlers.RespondNotFound(w, handlers.CodeUserNotFound, msgNotFound)
			return
		}
		h.logger.Error("DELETE /users/{id} - Failed to delete user: user_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /users/{id} - User deleted: user_id=%s, by=%s, cancelled_staff=%d, cancelled_customer=%d",
		id, actor.UserID, result.CancelledAsStaff, result.CancelledAsCustomer)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainUser(result.User))
}
