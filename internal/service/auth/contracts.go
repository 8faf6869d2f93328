package auth

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/identity"
)

// IdentityProvider клиент провайдера идентификации
type IdentityProvider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*identity.Identity, error)
	CreateSessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
