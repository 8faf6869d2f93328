package availabilities

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности сотрудников
type AvailabilityRepository interface {
	Create(ctx context.Context, a *domain.StaffAvailability) (*domain.StaffAvailability, error)
	GetByID(ctx context.Context, id string) (*domain.StaffAvailability, error)
	List(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.StaffAvailability, int, error)
	ListByStaffAndDay(ctx context.Context, staffID string, day domain.Weekday, excludeID *string) ([]*domain.StaffAvailability, error)
	Update(ctx context.Context, a *domain.StaffAvailability) (*domain.StaffAvailability, error)
	Delete(ctx context.Context, id string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка записи расписания одного сотрудника
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
