package delete_user

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
)

// UseCase use case удаления пользователя
type UseCase struct {
	userRepo        UserRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute отменяет будущие активные записи пользователя и удаляет его в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeleteUser: by=%s, target=%s", req.ActorID, req.UserID)

	// 1. Некорректный ID не может принадлежать пользователю
	if !domain.IsValidID(req.UserID) {
		uc.logger.Warn("DeleteUser: user id=%s not found", req.UserID)
		return nil, ErrUserNotFound
	}

	now := uc.timeProvider.Now()
	resp := &Response{}

	// 2. Отмена записей и удаление
	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		var err error

		resp.CancelledAsStaff, err = uc.appointmentRepo.CancelFutureByStaff(ctx, req.UserID, now)
		if err != nil {
			return err
		}

		resp.CancelledAsCustomer, err = uc.appointmentRepo.CancelFutureByCustomer(ctx, req.UserID, now)
		if err != nil {
			return err
		}

		resp.User, err = uc.userRepo.Delete(ctx, req.UserID)
		return err
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("DeleteUser: user id=%s not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("DeleteUser: failed to delete user id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to delete user: %v", ErrInternal, err)
	}

	uc.logger.Info("DeleteUser: deleted user id=%s, cancelled as staff=%d, as customer=%d",
		req.UserID, resp.CancelledAsStaff, resp.CancelledAsCustomer)

	return resp, nil
}
