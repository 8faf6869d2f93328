package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// Service сервис для работы с записями на услуги
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создает запись, по умолчанию в статусе PENDING
// CUSTOMER создает записи только для себя
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateAppointmentRequest) (*models.AppointmentResponse, error) {
	if actor.Is(domain.RoleCustomer) {
		own := *req
		own.CustomerID = actor.UserID
		req = &own
	}
	s.logger.Info("Create: user=%s role=%s creating appointment service=%s customer=%s",
		actor.UserID, actor.Role, req.ServiceID, req.CustomerID)

	appt, err := toDomainAppointment(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Appointment
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.ensureStaffFree(ctx, appt); err != nil {
			return err
		}
		var err error
		created, err = s.appointmentRepo.Create(ctx, appt)
		return err
	})
	if err != nil {
		return nil, s.mapWriteError("Create", err)
	}

	s.logger.Info("Create: created appointment id=%s status=%s", created.ID, created.Status)
	return models.FromDomainAppointment(created), nil
}

// List возвращает страницу записей, по умолчанию по возрастанию startAt
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := toFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid query: %v", err)
		return nil, err
	}

	items, total, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d appointments", len(items), total)
	return models.FromDomainAppointmentList(items, total), nil
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id string) (*models.AppointmentResponse, error) {
	appt, err := s.getOwned(ctx, "GetByID", actor, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appt), nil
}

// Update частично обновляет запись
// endAt > startAt проверяется для итоговых значений
func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: user=%s updating appointment id=%s", actor.UserID, id)

	current, err := s.getOwned(ctx, "Update", actor, id)
	if err != nil {
		return nil, err
	}

	if actor.Is(domain.RoleCustomer) && req.CustomerID != nil && *req.CustomerID != actor.UserID {
		s.logger.Warn("Update: customer=%s tried to reassign appointment id=%s", actor.UserID, id)
		return nil, ErrCannotReassignCustomer
	}

	merged, err := mergeAppointment(current, req)
	if err != nil {
		s.logger.Warn("Update: validation failed for appointment id=%s: %v", id, err)
		return nil, err
	}

	var updated *domain.Appointment
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.ensureStaffFree(ctx, merged); err != nil {
			return err
		}
		var err error
		updated, err = s.appointmentRepo.Update(ctx, merged)
		return err
	})
	if err != nil {
		return nil, s.mapWriteError("Update", err)
	}

	s.logger.Info("Update: updated appointment id=%s", id)
	return models.FromDomainAppointment(updated), nil
}

// Cancel переводит запись в статус CANCELLED
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: user=%s cancelling appointment id=%s", actor.UserID, id)

	if _, err := s.getOwned(ctx, "Cancel", actor, id); err != nil {
		return nil, err
	}

	cancelled, err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusCancelled)
	if err != nil {
		return nil, s.mapWriteError("Cancel", err)
	}

	s.logger.Info("Cancel: cancelled appointment id=%s", id)
	return models.FromDomainAppointment(cancelled), nil
}

// Delete удаляет запись
func (s *Service) Delete(ctx context.Context, id string) (*models.DeleteAppointmentResponse, error) {
	s.logger.Info("Delete: deleting appointment id=%s", id)

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted appointment id=%s", id)
	return &models.DeleteAppointmentResponse{ID: id, Deleted: true}, nil
}

// getOwned загружает запись и проверяет, что CUSTOMER работает только со своими записями
func (s *Service) getOwned(ctx context.Context, op string, actor domain.Actor, id string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if actor.Is(domain.RoleCustomer) && !appt.BelongsTo(actor.UserID) {
		s.logger.Warn("%s: customer=%s is not owner of appointment id=%s", op, actor.UserID, id)
		return nil, ErrNotOwner
	}

	return appt, nil
}

// ensureStaffFree проверяет, что у назначенного сотрудника нет другой активной записи,
// пересекающейся с [StartAt, EndAt)
func (s *Service) ensureStaffFree(ctx context.Context, appt *domain.Appointment) error {
	if appt.StaffID == nil || !appt.IsActive() {
		return nil
	}

	busy, err := s.appointmentRepo.ListActiveByStaffInRange(ctx, []string{*appt.StaffID}, appt.StartAt, appt.EndAt)
	if err != nil {
		return err
	}
	for _, other := range busy {
		if other.ID != appt.ID {
			s.logger.Warn("ensureStaffFree: staff=%s busy with appointment id=%s", *appt.StaffID, other.ID)
			return ErrStaffBusy
		}
	}
	return nil
}

func (s *Service) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, ErrStaffBusy):
		return ErrStaffBusy
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		s.logger.Warn("%s: appointment not found", op)
		return ErrAppointmentNotFound
	case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
		s.logger.Warn("%s: %v", op, err)
		return ErrReferenceNotFound
	}
	s.logger.Error("%s: write failed: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
