package middleware

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/identity"
)

// TokenVerifier проверка ID токенов и сессионных cookie
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*identity.Identity, error)
	VerifySessionCookie(ctx context.Context, cookie string) (*identity.Identity, error)
}

// UserFinder поиск профиля по UID провайдера идентификации
type UserFinder interface {
	GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
