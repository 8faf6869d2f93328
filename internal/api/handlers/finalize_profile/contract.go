package finalize_profile

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
)

type UserService interface {
	FinalizeProfile(ctx context.Context, uid, email string, req *models.FinalizeProfileRequest) (*models.FinalizeProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
