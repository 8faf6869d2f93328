package replace_availabilities

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrStaffMismatch возвращается, когда окно набора принадлежит другому сотруднику
	ErrStaffMismatch = errors.New("all windows must belong to the batch staffId")

	// ErrInvalidTimeRange возвращается, когда startTime не раньше endTime
	ErrInvalidTimeRange = errors.New("startTime must be before endTime")

	// ErrBatchOverlap возвращается, когда окна внутри набора пересекаются
	ErrBatchOverlap = errors.New("windows in the batch overlap")

	// ErrStaffNotFound возвращается, когда сотрудник не существует
	ErrStaffNotFound = errors.New("staff not found")

	// ErrBusy возвращается, когда расписание сотрудника уже изменяется другим запросом
	ErrBusy = errors.New("staff availability is being modified, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// BatchOverlapError пара пересекающихся окон одного дня из набора
type BatchOverlapError struct {
	Day    domain.Weekday
	First  Window
	Second Window
}

func (e *BatchOverlapError) Error() string {
	return fmt.Sprintf("overlap detected for %s between %s-%s and %s-%s",
		e.Day, e.First.StartTime, e.First.EndTime, e.Second.StartTime, e.Second.EndTime)
}

func (e *BatchOverlapError) Unwrap() error {
	return ErrBatchOverlap
}
