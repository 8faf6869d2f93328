package lock

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrLocked возвращается, когда ключ уже захвачен другим писателем
var ErrLocked = errors.New("lock: resource is locked")

// Locker распределенная блокировка по ключу
// Lock возвращает токен владельца, Unlock снимает блокировку только по этому токену
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// StaffKey ключ блокировки записей расписания сотрудника
func StaffKey(staffID string) string {
	return "staff-availability:" + staffID
}

// WithLock выполняет fn под блокировкой key
// Если ключ занят, возвращает ErrLocked, fn не вызывается
func WithLock(ctx context.Context, l Locker, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	token, locked, err := l.Lock(ctx, key, ttl)
	if err != nil {
		return fmt.Errorf("lock.WithLock: acquire %s: %w", key, err)
	}
	if !locked {
		return fmt.Errorf("lock.WithLock: %s: %w", key, ErrLocked)
	}
	defer func() {
		// отпускаем даже при отмене запроса
		_ = l.Unlock(context.WithoutCancel(ctx), key, token)
	}()

	return fn(ctx)
}
