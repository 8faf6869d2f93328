package appointments

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

func parseInstant(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be an ISO-8601 date-time", ErrInvalidInput, field)
	}
	return t.UTC(), nil
}

func parseStatus(value string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, value)
	}
	return status, nil
}

func validateID(field, value string) error {
	if !domain.IsValidID(value) {
		return fmt.Errorf("%w: %s must be a valid id", ErrInvalidInput, field)
	}
	return nil
}

func toDomainAppointment(req *models.CreateAppointmentRequest) (*domain.Appointment, error) {
	startAt, err := parseInstant("startAt", req.StartAt)
	if err != nil {
		return nil, err
	}
	endAt, err := parseInstant("endAt", req.EndAt)
	if err != nil {
		return nil, err
	}

	a := &domain.Appointment{
		StartAt:    startAt,
		EndAt:      endAt,
		Status:     domain.StatusPending,
		ServiceID:  req.ServiceID,
		CustomerID: req.CustomerID,
		StaffID:    req.StaffID,
	}
	if req.Status != nil {
		if a.Status, err = parseStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	return a, validateAppointment(a)
}

// mergeAppointment применяет частичное обновление к копии текущей записи
func mergeAppointment(current *domain.Appointment, req *models.UpdateAppointmentRequest) (*domain.Appointment, error) {
	merged := *current
	var err error

	if req.StartAt != nil {
		if merged.StartAt, err = parseInstant("startAt", *req.StartAt); err != nil {
			return nil, err
		}
	}
	if req.EndAt != nil {
		if merged.EndAt, err = parseInstant("endAt", *req.EndAt); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if merged.Status, err = parseStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.ServiceID != nil {
		merged.ServiceID = *req.ServiceID
	}
	if req.CustomerID != nil {
		merged.CustomerID = *req.CustomerID
	}
	if req.StaffID != nil {
		merged.StaffID = req.StaffID
	}

	return &merged, validateAppointment(&merged)
}

func validateAppointment(a *domain.Appointment) error {
	if err := validateID("serviceId", a.ServiceID); err != nil {
		return err
	}
	if err := validateID("customerId", a.CustomerID); err != nil {
		return err
	}
	if a.StaffID != nil {
		if err := validateID("staffId", *a.StaffID); err != nil {
			return err
		}
	}
	if !a.EndAt.After(a.StartAt) {
		return ErrInvalidTimeRange
	}
	return nil
}

// toFilter применяет значения по умолчанию: skip=0, take=20, startAt asc
func toFilter(req *models.ListAppointmentsRequest) (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		Take:     domain.DefaultTake,
		OrderBy:  domain.AppointmentOrderByStartAt,
		OrderDir: domain.SortAsc,
	}

	ids := []struct {
		field string
		value *string
		dst   **string
	}{
		{"customerId", req.CustomerID, &filter.CustomerID},
		{"staffId", req.StaffID, &filter.StaffID},
		{"serviceId", req.ServiceID, &filter.ServiceID},
	}
	for _, id := range ids {
		if id.value == nil || *id.value == "" {
			continue
		}
		if err := validateID(id.field, *id.value); err != nil {
			return filter, err
		}
		*id.dst = id.value
	}

	if req.Status != nil && *req.Status != "" {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if req.StartFrom != nil && *req.StartFrom != "" {
		t, err := parseInstant("startFrom", *req.StartFrom)
		if err != nil {
			return filter, err
		}
		filter.StartFrom = &t
	}
	if req.EndTo != nil && *req.EndTo != "" {
		t, err := parseInstant("endTo", *req.EndTo)
		if err != nil {
			return filter, err
		}
		filter.EndTo = &t
	}
	if req.Skip != nil {
		if *req.Skip < 0 {
			return filter, fmt.Errorf("%w: skip must be >= 0", ErrInvalidInput)
		}
		filter.Skip = *req.Skip
	}
	if req.Take != nil {
		if *req.Take <= 0 {
			return filter, fmt.Errorf("%w: take must be positive", ErrInvalidInput)
		}
		filter.Take = min(*req.Take, domain.MaxTake)
	}
	if req.OrderBy != nil && *req.OrderBy != "" {
		field := domain.AppointmentOrderField(*req.OrderBy)
		if !field.IsValid() {
			return filter, fmt.Errorf("%w: unsupported orderBy %q", ErrInvalidInput, *req.OrderBy)
		}
		filter.OrderBy = field
	}
	if req.OrderDir != nil && *req.OrderDir != "" {
		dir := domain.SortDirection(*req.OrderDir)
		if !dir.IsValid() {
			return filter, fmt.Errorf("%w: orderDir must be asc or desc", ErrInvalidInput)
		}
		filter.OrderDir = dir
	}

	return filter, nil
}
