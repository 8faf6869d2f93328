package replace_availabilities

import (
	"context"

	replaceAvailabilities "github.com/m04kA/SMC-SalonService/internal/usecase/replace_availabilities"
)

type ReplaceAvailabilitiesUseCase interface {
	Execute(ctx context.Context, req *replaceAvailabilities.Request) (*replaceAvailabilities.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
