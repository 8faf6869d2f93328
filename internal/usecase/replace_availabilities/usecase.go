package replace_availabilities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/lock"
	availabilityRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/availability"
)

// UseCase use case полной замены расписания сотрудника
type UseCase struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	locker           Locker
	lockTTL          time.Duration
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	locker Locker,
	lockTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		locker:           locker,
		lockTTL:          lockTTL,
		logger:           logger,
	}
}

// Execute заменяет все окна сотрудника переданным набором
// Удаление и вставка выполняются в одной сериализуемой транзакции под блокировкой сотрудника
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. STAFF заменяет только свое расписание
	staffID := req.StaffID
	if req.Actor.Is(domain.RoleStaff) {
		staffID = req.Actor.UserID
	}

	uc.logger.Info("ReplaceAvailabilities: by=%s, role=%s, staff=%s, slots=%d",
		req.Actor.UserID, req.Actor.Role, staffID, len(req.Slots))

	// 2. Валидация набора
	items, err := validateBatch(staffID, req.Slots)
	if err != nil {
		uc.logger.Warn("ReplaceAvailabilities: validation failed for staff=%s: %v", staffID, err)
		return nil, err
	}

	// 3. Атомарная замена
	var result []*domain.StaffAvailability
	err = lock.WithLock(ctx, uc.locker, lock.StaffKey(staffID), uc.lockTTL, func(ctx context.Context) error {
		return uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
			deleted, err := uc.availabilityRepo.DeleteByStaff(ctx, staffID)
			if err != nil {
				return err
			}

			if err := uc.availabilityRepo.CreateBatch(ctx, items); err != nil {
				return err
			}

			result, err = uc.availabilityRepo.ListByStaff(ctx, staffID)
			if err != nil {
				return err
			}

			uc.logger.Info("ReplaceAvailabilities: staff=%s deleted=%d inserted=%d", staffID, deleted, len(items))
			return nil
		})
	})
	if err != nil {
		return nil, uc.mapWriteError(staffID, err)
	}

	return &Response{StaffID: staffID, Items: result}, nil
}

func (uc *UseCase) mapWriteError(staffID string, err error) error {
	switch {
	case errors.Is(err, lock.ErrLocked):
		uc.logger.Warn("ReplaceAvailabilities: staff=%s is locked by another writer", staffID)
		return ErrBusy
	case errors.Is(err, availabilityRepo.ErrStaffNotFound):
		uc.logger.Warn("ReplaceAvailabilities: staff=%s not found", staffID)
		return ErrStaffNotFound
	case errors.Is(err, availabilityRepo.ErrOverlap):
		uc.logger.Warn("ReplaceAvailabilities: storage rejected overlapping windows for staff=%s", staffID)
		return fmt.Errorf("%w: rejected by storage", ErrBatchOverlap)
	default:
		uc.logger.Error("ReplaceAvailabilities: failed to replace windows for staff=%s: %v", staffID, err)
		return fmt.Errorf("%w: failed to replace availabilities: %v", ErrInternal, err)
	}
}
