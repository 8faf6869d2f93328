package availabilities

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var (
	// ErrAvailabilityNotFound возвращается, когда окно доступности не найдено
	ErrAvailabilityNotFound = errors.New("availability not found")

	// ErrStaffNotFound возвращается, когда сотрудник окна не существует
	ErrStaffNotFound = errors.New("staff not found")

	// ErrInvalidTimeRange возвращается, когда startTime >= endTime
	ErrInvalidTimeRange = errors.New("startTime must be < endTime")

	// ErrOverlap возвращается, когда окно пересекается с сохраненным окном того же дня
	ErrOverlap = errors.New("availability overlaps an existing window")

	// ErrNotOwner возвращается, когда STAFF обращается к чужому окну
	ErrNotOwner = errors.New("not owner of availability")

	// ErrCannotReassignStaff возвращается, когда STAFF пытается передать окно другому сотруднику
	ErrCannotReassignStaff = errors.New("cannot reassign staffId")

	// ErrBusy возвращается, когда расписание сотрудника изменяется параллельным запросом
	ErrBusy = errors.New("staff schedule is being modified")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// OverlapError пересечение с сохраненным окном, содержит его границы
type OverlapError struct {
	ConflictID string
	Day        domain.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlap with existing slot %s %s-%s", e.Day, e.StartTime, e.EndTime)
}

func (e *OverlapError) Unwrap() error {
	return ErrOverlap
}
