package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// Service сервис каталога услуг салона
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Create создает услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q duration=%d", req.Name, req.DurationMin)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ServiceResponse, error) {
	svc, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainService(svc), nil
}

// List возвращает страницу каталога
func (s *Service) List(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error) {
	filter, err := toFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid query: %v", err)
		return nil, err
	}

	items, total, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d services (skip=%d, take=%d)", len(items), total, filter.Skip, filter.Take)
	return models.FromDomainServiceList(items, total, filter), nil
}

// Update частично обновляет услугу
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%s", id)

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed for service id=%s: %v", id, err)
		return nil, err
	}

	svc, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.PriceCents != nil {
		svc.PriceCents = *req.PriceCents
	}

	updated, err := s.serviceRepo.Update(ctx, svc)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated service id=%s", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу
// Услугу, на которую ссылаются записи, удалить нельзя
func (s *Service) Delete(ctx context.Context, id string) (*models.DeleteServiceResponse, error) {
	s.logger.Info("Delete: deleting service id=%s", id)

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, serviceRepo.ErrServiceNotFound):
			s.logger.Warn("Delete: service id=%s not found", id)
			return nil, ErrServiceNotFound
		case errors.Is(err, serviceRepo.ErrServiceInUse):
			s.logger.Warn("Delete: service id=%s is in use", id)
			return nil, ErrServiceInUse
		}
		s.logger.Error("Delete: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted service id=%s", id)
	return &models.DeleteServiceResponse{ID: id, Deleted: true}, nil
}

func (s *Service) get(ctx context.Context, op, id string) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%s not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return svc, nil
}
