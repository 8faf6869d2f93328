package replace_availabilities

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// validateBatch проверяет набор целиком до любых изменений в БД
// Порядок проверок: принадлежность сотруднику и формат каждого окна, затем пересечения внутри дня
func validateBatch(staffID string, slots []Window) ([]*domain.StaffAvailability, error) {
	if !domain.IsValidID(staffID) {
		return nil, fmt.Errorf("%w: staffId must be a valid id", ErrInvalidInput)
	}

	items := make([]*domain.StaffAvailability, 0, len(slots))
	for i, s := range slots {
		if s.StaffID != "" && s.StaffID != staffID {
			return nil, fmt.Errorf("%w: slot %d has staffId %s", ErrStaffMismatch, i, s.StaffID)
		}

		w := &domain.StaffAvailability{
			StaffID:   staffID,
			Day:       domain.Weekday(s.Day),
			StartTime: types.TimeString(s.StartTime),
			EndTime:   types.TimeString(s.EndTime),
		}
		if !w.Day.IsValid() {
			return nil, fmt.Errorf("%w: slot %d: day must be one of MON..SUN", ErrInvalidInput, i)
		}
		if err := w.StartTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: slot %d startTime: %v", ErrInvalidInput, i, err)
		}
		if err := w.EndTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: slot %d endTime: %v", ErrInvalidInput, i, err)
		}
		if !w.StartTime.IsBefore(w.EndTime) {
			return nil, fmt.Errorf("%w: %s %s-%s", ErrInvalidTimeRange, w.Day, w.StartTime, w.EndTime)
		}

		items = append(items, w)
	}

	if err := checkBatchOverlap(items); err != nil {
		return nil, err
	}

	return items, nil
}

// checkBatchOverlap разбивает набор по дням, сортирует по началу и сравнивает соседей
// После сортировки пересечение с любым окном означает пересечение с предыдущим соседом
func checkBatchOverlap(items []*domain.StaffAvailability) error {
	byDay := make(map[domain.Weekday][]*domain.StaffAvailability)
	for _, w := range items {
		byDay[w.Day] = append(byDay[w.Day], w)
	}

	for _, day := range domain.Weekdays {
		list := byDay[day]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].StartTime.IsBefore(list[j].StartTime)
		})

		for i := 1; i < len(list); i++ {
			prev, cur := list[i-1], list[i]
			if prev.Overlaps(cur) {
				return &BatchOverlapError{
					Day:    day,
					First:  toWindow(prev),
					Second: toWindow(cur),
				}
			}
		}
	}

	return nil
}

func toWindow(a *domain.StaffAvailability) Window {
	return Window{
		StaffID:   a.StaffID,
		Day:       string(a.Day),
		StartTime: a.StartTime.String(),
		EndTime:   a.EndTime.String(),
	}
}
