package delete_user

import (
	"context"

	deleteUser "github.com/m04kA/SMC-SalonService/internal/usecase/delete_user"
)

type DeleteUserUseCase interface {
	Execute(ctx context.Context, req *deleteUser.Request) (*deleteUser.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
