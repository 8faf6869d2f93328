package availabilities

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities/models"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// findConflict возвращает OverlapError для первого сохраненного окна, пересекающего кандидата
// existing уже отфильтрован по (staffId, day) и не содержит самого кандидата
func findConflict(candidate *domain.StaffAvailability, existing []*domain.StaffAvailability) error {
	for _, e := range existing {
		if e.ID == candidate.ID && candidate.ID != "" {
			continue
		}
		if candidate.Overlaps(e) {
			return &OverlapError{
				ConflictID: e.ID,
				Day:        e.Day,
				StartTime:  e.StartTime,
				EndTime:    e.EndTime,
			}
		}
	}
	return nil
}

// validateWindow проверяет корректность окна: известный день, формат HH:MM, start < end
func validateWindow(a *domain.StaffAvailability) error {
	if !domain.IsValidID(a.StaffID) {
		return fmt.Errorf("%w: staffId must be a valid id", ErrInvalidInput)
	}
	if !a.Day.IsValid() {
		return fmt.Errorf("%w: day must be one of MON..SUN", ErrInvalidInput)
	}
	if err := a.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := a.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !a.StartTime.IsBefore(a.EndTime) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, a.StartTime, a.EndTime)
	}
	return nil
}

func toDomainWindow(req *models.CreateAvailabilityRequest) *domain.StaffAvailability {
	return &domain.StaffAvailability{
		StaffID:   req.StaffID,
		Day:       domain.Weekday(req.Day),
		StartTime: types.TimeString(req.StartTime),
		EndTime:   types.TimeString(req.EndTime),
	}
}

// mergeWindow применяет частичное обновление к копии текущего окна
func mergeWindow(current *domain.StaffAvailability, req *models.UpdateAvailabilityRequest) *domain.StaffAvailability {
	merged := *current
	if req.StaffID != nil {
		merged.StaffID = *req.StaffID
	}
	if req.Day != nil {
		merged.Day = domain.Weekday(*req.Day)
	}
	if req.StartTime != nil {
		merged.StartTime = types.TimeString(*req.StartTime)
	}
	if req.EndTime != nil {
		merged.EndTime = types.TimeString(*req.EndTime)
	}
	return &merged
}

// toFilter применяет значения по умолчанию: skip=0, take=20
func toFilter(req *models.ListAvailabilitiesRequest) (domain.AvailabilityFilter, error) {
	filter := domain.AvailabilityFilter{Take: domain.DefaultTake}

	if req.StaffID != nil && *req.StaffID != "" {
		if !domain.IsValidID(*req.StaffID) {
			return filter, fmt.Errorf("%w: staffId must be a valid id", ErrInvalidInput)
		}
		filter.StaffID = req.StaffID
	}
	if req.Day != nil && *req.Day != "" {
		day := domain.Weekday(*req.Day)
		if !day.IsValid() {
			return filter, fmt.Errorf("%w: day must be one of MON..SUN", ErrInvalidInput)
		}
		filter.Day = &day
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
	return filter, nil
}
