package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
)

// Service сервис для работы с профилями пользователей
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List возвращает всех пользователей, новые первыми
func (s *Service) List(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d users", len(users))
	return models.FromDomainUserList(users), nil
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomainUser(u), nil
}

// GetByFirebaseUID получает профиль по UID провайдера идентификации
// Отсутствие профиля означает незавершенную регистрацию
func (s *Service) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	u, err := s.userRepo.GetByFirebaseUID(ctx, uid)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetByFirebaseUID: repository error for uid=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: GetByFirebaseUID - repository error: %v", ErrInternal, err)
	}
	return u, nil
}

// Update частично обновляет профиль
// Роль может изменить только OWNER
func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Update: user=%s updating user id=%s", actor.UserID, id)

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed for user id=%s: %v", id, err)
		return nil, err
	}

	if req.Role != nil && !actor.Is(domain.RoleOwner) {
		s.logger.Warn("Update: user=%s with role=%s tried to change role of user id=%s", actor.UserID, actor.Role, id)
		return nil, ErrRoleChangeForbidden
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Role != nil {
		u.Role = domain.Role(*req.Role)
	}

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: updated user id=%s", id)
	return models.FromDomainUser(updated), nil
}

// FinalizeProfile создает профиль для проверенной учетной записи
// Повторный вызов возвращает существующий профиль
func (s *Service) FinalizeProfile(ctx context.Context, uid, email string, req *models.FinalizeProfileRequest) (*models.FinalizeProfileResponse, error) {
	s.logger.Info("FinalizeProfile: uid=%s email=%s", uid, email)

	// 1. Профиль уже создан
	existing, err := s.GetByFirebaseUID(ctx, uid)
	if err == nil {
		s.logger.Info("FinalizeProfile: already done for uid=%s, user id=%s", uid, existing.ID)
		return &models.FinalizeProfileResponse{NeedsProfile: false, User: models.FromDomainUser(existing)}, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	// 2. Валидация
	if email == "" {
		s.logger.Warn("FinalizeProfile: token of uid=%s has no email", uid)
		return nil, fmt.Errorf("%w: identity has no email", ErrInvalidInput)
	}
	if err := validateFinalize(req); err != nil {
		s.logger.Warn("FinalizeProfile: validation failed for uid=%s: %v", uid, err)
		return nil, err
	}

	// 3. Email не должен принадлежать другой учетной записи
	byEmail, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil && byEmail.FirebaseUID != uid:
		s.logger.Warn("FinalizeProfile: email=%s already owned by another account", email)
		return nil, ErrEmailTaken
	case err != nil && !errors.Is(err, userRepo.ErrUserNotFound):
		s.logger.Error("FinalizeProfile: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: FinalizeProfile - repository error: %v", ErrInternal, err)
	}

	// 4. Создание профиля с ролью CUSTOMER
	created, err := s.userRepo.Create(ctx, &domain.User{
		FirebaseUID: uid,
		Email:       email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        domain.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrDuplicate) {
			// параллельный вызов успел создать профиль
			if again, getErr := s.GetByFirebaseUID(ctx, uid); getErr == nil {
				return &models.FinalizeProfileResponse{NeedsProfile: false, User: models.FromDomainUser(again)}, nil
			}
			s.logger.Warn("FinalizeProfile: duplicate user for uid=%s email=%s", uid, email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("FinalizeProfile: repository error for uid=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: FinalizeProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("FinalizeProfile: created user id=%s for uid=%s", created.ID, uid)
	return &models.FinalizeProfileResponse{NeedsProfile: false, User: models.FromDomainUser(created)}, nil
}

func (s *Service) mapRepoError(op, id string, err error) error {
	switch {
	case errors.Is(err, userRepo.ErrUserNotFound):
		s.logger.Warn("%s: user id=%s not found", op, id)
		return ErrUserNotFound
	case errors.Is(err, userRepo.ErrDuplicate):
		s.logger.Warn("%s: email conflict for user id=%s", op, id)
		return ErrEmailTaken
	}
	s.logger.Error("%s: repository error for user id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
