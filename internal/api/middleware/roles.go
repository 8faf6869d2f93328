package middleware

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/users"
)

const (
	msgProfileNotFinalized = "профиль не заполнен"
	msgInsufficientRole    = "недостаточно прав"
)

// UserLoader загружает профиль приложения по проверенной личности
type UserLoader struct {
	users  UserFinder
	logger Logger
}

// NewUserLoader создает middleware загрузки пользователя
func NewUserLoader(users UserFinder, logger Logger) *UserLoader {
	return &UserLoader{users: users, logger: logger}
}

// LoadUser кладет в контекст пользователя с ролью; без профиля - 403 profile_not_finalized
// Должен стоять после Authenticate
func (l *UserLoader) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIdentity(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, handlers.CodeMissingAuthToken, msgMissingToken)
			return
		}

		user, err := l.users.GetByFirebaseUID(r.Context(), id.UID)
		if err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				l.logger.Warn("LoadUser: no profile for uid=%s", id.UID)
				handlers.RespondForbidden(w, handlers.CodeProfileNotFinalized, msgProfileNotFinalized)
				return
			}
			l.logger.Error("LoadUser: failed to load uid=%s: %v", id.UID, err)
			handlers.RespondInternalError(w)
			return
		}

		actor := domain.Actor{UserID: user.ID, Role: user.Role}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// RequireRoles пропускает только пользователей с одной из ролей
func RequireRoles(roles ...domain.Role) mux.MiddlewareFunc {
	return RequireRolesOrSelf("", roles...)
}

// RequireRolesOrSelf дополнительно пропускает пользователя, чей ID совпадает с параметром маршрута
func RequireRolesOrSelf(param string, roles ...domain.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				handlers.RespondForbidden(w, handlers.CodeProfileNotFinalized, msgProfileNotFinalized)
				return
			}

			if actor.Is(roles...) {
				next.ServeHTTP(w, r)
				return
			}

			if param != "" && mux.Vars(r)[param] == actor.UserID {
				next.ServeHTTP(w, r)
				return
			}

			handlers.RespondForbidden(w, handlers.CodeInsufficientRole, msgInsufficientRole)
		})
	}
}
