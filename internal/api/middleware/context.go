package middleware

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/identity"
)

type contextKey int

const (
	identityKey contextKey = iota
	actorKey
	requestIDKey
)

// WithIdentity кладет проверенную личность в контекст
func WithIdentity(ctx context.Context, id *identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity возвращает личность, установленную Authenticate
func GetIdentity(ctx context.Context) (*identity.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*identity.Identity)
	return id, ok && id != nil
}

// WithActor кладет пользователя приложения в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor возвращает пользователя, установленного LoadUser
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetRequestID возвращает ID запроса, установленный RequestID
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
