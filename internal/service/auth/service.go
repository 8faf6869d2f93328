package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/integrations/identity"
	"github.com/m04kA/SMC-SalonService/internal/service/auth/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// Service сервис входа через провайдера идентификации
type Service struct {
	identity   IdentityProvider
	userRepo   UserRepository
	sessionTTL time.Duration
	logger     Logger
}

// NewService создает новый экземпляр сервиса входа
func NewService(identity IdentityProvider, userRepo UserRepository, sessionTTL time.Duration, logger Logger) *Service {
	return &Service{
		identity:   identity,
		userRepo:   userRepo,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Login проверяет ID токен и выпускает сессионную cookie
// Без email в токене вход не выполняется; без профиля возвращаются данные для его заполнения
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if strings.TrimSpace(req.IDToken) == "" {
		return nil, fmt.Errorf("%w: idToken required", ErrInvalidInput)
	}

	// 1. Проверка токена
	id, err := s.identity.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return nil, s.mapIdentityError("Login", err)
	}

	if !id.HasEmail() {
		s.logger.Info("Login: uid=%s authenticated=false reason=%s", id.UID, models.ReasonNoEmail)
		return &models.LoginResponse{Authenticated: false, Reason: models.ReasonNoEmail}, nil
	}

	// 2. Сессионная cookie
	cookie, err := s.identity.CreateSessionCookie(ctx, req.IDToken, s.sessionTTL)
	if err != nil {
		return nil, s.mapIdentityError("Login", err)
	}

	resp := &models.LoginResponse{
		Authenticated: true,
		SessionCookie: cookie,
		ExpiresIn:     s.sessionTTL,
	}

	// 3. Существующий профиль или данные для его заполнения
	u, err := s.userRepo.GetByFirebaseUID(ctx, id.UID)
	switch {
	case err == nil:
		resp.NeedsProfile = ptr.Ptr(false)
		resp.User = &models.LoginUser{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		}
	case errors.Is(err, userRepo.ErrUserNotFound):
		resp.NeedsProfile = ptr.Ptr(true)
		resp.Prefill = &models.Prefill{
			Email:       id.Email,
			DisplayName: id.Name,
			PhotoURL:    id.Picture,
		}
	default:
		s.logger.Error("Login: repository error for uid=%s: %v", id.UID, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Login: uid=%s authenticated=true needsProfile=%t", id.UID, *resp.NeedsProfile)
	return resp, nil
}

func (s *Service) mapIdentityError(op string, err error) error {
	if errors.Is(err, identity.ErrInvalidToken) {
		s.logger.Warn("%s: invalid token: %v", op, err)
		return ErrInvalidToken
	}
	s.logger.Error("%s: identity provider error: %v", op, err)
	return fmt.Errorf("%w: %s - identity provider error: %v", ErrInternal, op, err)
}
