package availabilities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/lock"
	availabilityRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities/models"
)

// Service сервис управления окнами доступности сотрудников
// Все записи одного сотрудника выполняются под блокировкой и в SERIALIZABLE транзакции
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	locker           Locker
	lockTTL          time.Duration
	logger           Logger
}

// NewService создает новый экземпляр сервиса окон доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	locker Locker,
	lockTTL time.Duration,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		locker:           locker,
		lockTTL:          lockTTL,
		logger:           logger,
	}
}

// Create создает окно доступности
// STAFF создает окна только для себя
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	candidate := toDomainWindow(req)
	if actor.Is(domain.RoleStaff) {
		candidate.StaffID = actor.UserID
	}
	s.logger.Info("Create: user=%s creating availability staff=%s day=%s %s-%s",
		actor.UserID, candidate.StaffID, req.Day, req.StartTime, req.EndTime)

	if err := validateWindow(candidate); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.StaffAvailability
	err := s.writeForStaff(ctx, candidate.StaffID, func(ctx context.Context) error {
		existing, err := s.availabilityRepo.ListByStaffAndDay(ctx, candidate.StaffID, candidate.Day, nil)
		if err != nil {
			return err
		}
		if err := findConflict(candidate, existing); err != nil {
			return err
		}

		created, err = s.availabilityRepo.Create(ctx, candidate)
		return err
	})
	if err != nil {
		return nil, s.mapWriteError("Create", err)
	}

	s.logger.Info("Create: created availability id=%s for staff=%s", created.ID, created.StaffID)
	return models.FromDomainAvailability(created), nil
}

// GetByID получает окно по ID
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id string) (*models.AvailabilityResponse, error) {
	current, err := s.getOwned(ctx, "GetByID", actor, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAvailability(current), nil
}

// List возвращает страницу окон, упорядоченную по сотруднику, дню и началу
func (s *Service) List(ctx context.Context, req *models.ListAvailabilitiesRequest) (*models.AvailabilityListResponse, error) {
	filter, err := toFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid query: %v", err)
		return nil, err
	}

	items, total, err := s.availabilityRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d availabilities", len(items), total)
	return &models.AvailabilityListResponse{
		Items: models.FromDomainAvailabilityList(items),
		Total: total,
		Skip:  filter.Skip,
		Take:  filter.Take,
	}, nil
}

// Update частично обновляет окно
// Пересечение проверяется для итоговых значений, исключая само окно
func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Update: user=%s updating availability id=%s", actor.UserID, id)

	current, err := s.getOwned(ctx, "Update", actor, id)
	if err != nil {
		return nil, err
	}

	if actor.Is(domain.RoleStaff) && req.StaffID != nil && *req.StaffID != actor.UserID {
		s.logger.Warn("Update: staff=%s tried to reassign availability id=%s to %s", actor.UserID, id, *req.StaffID)
		return nil, ErrCannotReassignStaff
	}

	candidate := mergeWindow(current, req)
	if err := validateWindow(candidate); err != nil {
		s.logger.Warn("Update: validation failed for availability id=%s: %v", id, err)
		return nil, err
	}

	var updated *domain.StaffAvailability
	err = s.writeForStaff(ctx, candidate.StaffID, func(ctx context.Context) error {
		existing, err := s.availabilityRepo.ListByStaffAndDay(ctx, candidate.StaffID, candidate.Day, &candidate.ID)
		if err != nil {
			return err
		}
		if err := findConflict(candidate, existing); err != nil {
			return err
		}

		updated, err = s.availabilityRepo.Update(ctx, candidate)
		return err
	})
	if err != nil {
		return nil, s.mapWriteError("Update", err)
	}

	s.logger.Info("Update: updated availability id=%s", id)
	return models.FromDomainAvailability(updated), nil
}

// Delete удаляет окно
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) (*models.DeleteAvailabilityResponse, error) {
	s.logger.Info("Delete: user=%s deleting availability id=%s", actor.UserID, id)

	if _, err := s.getOwned(ctx, "Delete", actor, id); err != nil {
		return nil, err
	}

	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		s.logger.Error("Delete: repository error for availability id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted availability id=%s", id)
	return &models.DeleteAvailabilityResponse{ID: id, Deleted: true}, nil
}

// getOwned загружает окно и проверяет, что STAFF работает только со своими окнами
func (s *Service) getOwned(ctx context.Context, op string, actor domain.Actor, id string) (*domain.StaffAvailability, error) {
	current, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("%s: availability id=%s not found", op, id)
			return nil, ErrAvailabilityNotFound
		}
		s.logger.Error("%s: repository error for availability id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if actor.Is(domain.RoleStaff) && current.StaffID != actor.UserID {
		s.logger.Warn("%s: staff=%s is not owner of availability id=%s", op, actor.UserID, id)
		return nil, ErrNotOwner
	}

	return current, nil
}

// writeForStaff выполняет fn под блокировкой сотрудника в SERIALIZABLE транзакции
func (s *Service) writeForStaff(ctx context.Context, staffID string, fn func(ctx context.Context) error) error {
	return lock.WithLock(ctx, s.locker, lock.StaffKey(staffID), s.lockTTL, func(ctx context.Context) error {
		return s.txManager.DoSerializable(ctx, fn)
	})
}

func (s *Service) mapWriteError(op string, err error) error {
	var overlapErr *OverlapError
	switch {
	case errors.As(err, &overlapErr):
		s.logger.Warn("%s: %v", op, overlapErr)
		return overlapErr
	case errors.Is(err, availabilityRepo.ErrOverlap):
		s.logger.Warn("%s: storage rejected overlapping window: %v", op, err)
		return fmt.Errorf("%w: rejected by storage", ErrOverlap)
	case errors.Is(err, availabilityRepo.ErrStaffNotFound):
		s.logger.Warn("%s: staff not found: %v", op, err)
		return ErrStaffNotFound
	case errors.Is(err, availabilityRepo.ErrAvailabilityNotFound):
		return ErrAvailabilityNotFound
	case errors.Is(err, lock.ErrLocked):
		s.logger.Warn("%s: %v", op, err)
		return ErrBusy
	}
	s.logger.Error("%s: write failed: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
