package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// ListByDay возвращает окна дня недели, опционально только одного сотрудника
	ListByDay(ctx context.Context, day domain.Weekday, staffID *string) ([]*domain.StaffAvailability, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListActiveByStaffInRange возвращает неотмененные записи сотрудников, пересекающие [from, to)
	ListActiveByStaffInRange(ctx context.Context, staffIDs []string, from, to time.Time) ([]*domain.Appointment, error)
}

// Metrics интерфейс метрик расчета слотов
type Metrics interface {
	ObserveSlotQuery(result string, weekday string, slots int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
