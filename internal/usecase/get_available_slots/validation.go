package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// params проверенные параметры расчета
type params struct {
	date      time.Time
	serviceID string
	staffID   *string
	step      int
	buffer    int
}

// validateRequest валидирует входные данные запроса и подставляет значения по умолчанию
func validateRequest(req *Request) (*params, error) {
	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(req.Date), time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, req.Date)
	}

	serviceID := strings.TrimSpace(req.ServiceID)
	if serviceID == "" {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	p := &params{
		date:      date,
		serviceID: serviceID,
		step:      domain.DefaultStepMinutes,
		buffer:    domain.DefaultBufferMinutes,
	}

	if req.StaffID != nil && *req.StaffID != "" {
		if !domain.IsValidID(*req.StaffID) {
			return nil, fmt.Errorf("%w: staffId must be a valid id", ErrInvalidInput)
		}
		p.staffID = req.StaffID
	}

	if req.StepMinutes != nil {
		if *req.StepMinutes < domain.MinStepMinutes || *req.StepMinutes > domain.MaxStepMinutes {
			return nil, fmt.Errorf("%w: stepMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinStepMinutes, domain.MaxStepMinutes)
		}
		p.step = *req.StepMinutes
	}

	if req.BufferMinutes != nil {
		if *req.BufferMinutes < 0 || *req.BufferMinutes > domain.MaxBufferMinutes {
			return nil, fmt.Errorf("%w: bufferMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxBufferMinutes)
		}
		p.buffer = *req.BufferMinutes
	}

	return p, nil
}
