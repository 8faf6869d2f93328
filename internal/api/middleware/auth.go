package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/integrations/identity"
)

const (
	msgMissingToken = "требуется аутентификация"
	msgInvalidToken = "недействительный токен аутентификации"
)

// Authenticator проверяет Bearer токен или сессионную cookie
type Authenticator struct {
	verifier   TokenVerifier
	cookieName string
	logger     Logger
}

// NewAuthenticator создает middleware аутентификации
func NewAuthenticator(verifier TokenVerifier, cookieName string, logger Logger) *Authenticator {
	return &Authenticator{
		verifier:   verifier,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Authenticate пропускает запрос с действительным токеном и кладет личность в контекст
// Заголовок Authorization: Bearer имеет приоритет над cookie
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			id  *identity.Identity
			err error
		)

		if token, ok := bearerToken(r); ok {
			id, err = a.verifier.VerifyIDToken(r.Context(), token)
		} else if cookie, cerr := r.Cookie(a.cookieName); cerr == nil && cookie.Value != "" {
			id, err = a.verifier.VerifySessionCookie(r.Context(), cookie.Value)
		} else {
			a.logger.Warn("Auth: %s %s - missing token", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, handlers.CodeMissingAuthToken, msgMissingToken)
			return
		}

		if err != nil {
			if errors.Is(err, identity.ErrInvalidToken) {
				a.logger.Warn("Auth: %s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, handlers.CodeInvalidAuthToken, msgInvalidToken)
				return
			}
			a.logger.Error("Auth: %s %s - verification failed: %v", r.Method, r.URL.Path, err)
			handlers.RespondInternalError(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
