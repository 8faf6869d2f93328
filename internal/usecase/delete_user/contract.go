package delete_user

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Delete(ctx context.Context, id string) (*domain.User, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CancelFutureByStaff(ctx context.Context, staffID string, now time.Time) (int64, error)
	CancelFutureByCustomer(ctx context.Context, customerID string, now time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
