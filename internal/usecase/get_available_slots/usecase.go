package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
)

// Результаты расчета для метрик
const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultError    = "error"
)

// UseCase use case расчета доступных слотов дня
type UseCase struct {
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если метрики выключены
func NewUseCase(
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute выполняет расчет слотов на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, service=%s", req.Date, req.ServiceID)

	// 1. Валидация входных данных
	p, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		uc.observe(resultInvalid, "", 0)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, p.serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", p.serviceID)
			uc.observe(resultNotFound, "", 0)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", p.serviceID, err)
		uc.observe(resultError, "", 0)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	weekday := domain.WeekdayOf(p.date)

	resp := &Response{
		Date:      p.date,
		Weekday:   weekday,
		ServiceID: service.ID,
		Slots:     []domain.Slot{},
	}

	// Слот длиннее суток не помещается ни в одно окно
	effectiveMinutes := int64(service.DurationMin) + int64(p.buffer)
	if effectiveMinutes <= 0 || effectiveMinutes > domain.MinutesPerDay {
		uc.logger.Warn("GetAvailableSlots: service id=%s effective duration %d min does not fit a day",
			service.ID, effectiveMinutes)
		uc.observe(resultOK, string(weekday), 0)
		return resp, nil
	}
	effective := time.Duration(effectiveMinutes) * time.Minute

	// 3. Получаем окна доступности на день недели
	windows, err := uc.availabilityRepo.ListByDay(ctx, weekday, p.staffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availabilities for %s: %v", weekday, err)
		uc.observe(resultError, string(weekday), 0)
		return nil, fmt.Errorf("%w: failed to get availabilities: %v", ErrInternal, err)
	}

	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no availability on %s (%s)", p.date.Format(domain.DateFormat), weekday)
		uc.observe(resultOK, string(weekday), 0)
		return resp, nil
	}

	// 4. Получаем активные записи сотрудников за сутки
	dayStart, dayEnd := domain.DayBounds(p.date)
	appointments, err := uc.appointmentRepo.ListActiveByStaffInRange(ctx, distinctStaffIDs(windows), dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		uc.observe(resultError, string(weekday), 0)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты
	resp.Slots = generateSlots(p.date, windows, appointments, effective, time.Duration(p.step)*time.Minute)

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%s, date=%s, windows=%d, appointments=%d",
		len(resp.Slots), service.ID, p.date.Format(domain.DateFormat), len(windows), len(appointments))
	uc.observe(resultOK, string(weekday), len(resp.Slots))

	return resp, nil
}

func (uc *UseCase) observe(result, weekday string, slots int) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ObserveSlotQuery(result, weekday, slots)
}
