package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// generateSlots строит слоты для всех окон дня
// Кандидаты идут от начала окна с шагом step; слот длиной effective должен целиком
// помещаться в окно, первый не поместившийся кандидат завершает окно
// Слот отбрасывается, если пересекается с записью того же сотрудника
func generateSlots(
	date time.Time,
	windows []*domain.StaffAvailability,
	appointments []*domain.Appointment,
	effective time.Duration,
	step time.Duration,
) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if step <= 0 || effective <= 0 {
		return slots
	}

	busy := groupByStaff(appointments)
	for _, w := range windows {
		windowStart := w.StartTime.OnDate(date)
		windowEnd := w.EndTime.OnDate(date)

		for cur := windowStart; cur.Before(windowEnd); cur = cur.Add(step) {
			slotEnd := cur.Add(effective)
			if slotEnd.After(windowEnd) {
				break
			}
			if overlapsAny(cur, slotEnd, busy[w.StaffID]) {
				continue
			}
			slots = append(slots, domain.Slot{StaffID: w.StaffID, Start: cur, End: slotEnd})
		}
	}

	sortSlots(slots)
	return slots
}

// sortSlots упорядочивает слоты по staffId, затем по началу
func sortSlots(slots []domain.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].StaffID != slots[j].StaffID {
			return slots[i].StaffID < slots[j].StaffID
		}
		return slots[i].Start.Before(slots[j].Start)
	})
}

// overlapsAny проверяет пересечение [start, end) хотя бы с одной записью
// Граничащие интервалы не пересекаются: слот до 10:00 не блокируется записью с 10:00
func overlapsAny(start, end time.Time, appointments []*domain.Appointment) bool {
	for _, a := range appointments {
		if domain.InstantsOverlap(start, end, a.StartAt, a.EndAt) {
			return true
		}
	}
	return false
}

// groupByStaff раскладывает активные записи по сотрудникам, записи без сотрудника пропускаются
func groupByStaff(appointments []*domain.Appointment) map[string][]*domain.Appointment {
	out := make(map[string][]*domain.Appointment)
	for _, a := range appointments {
		if a.StaffID == nil || !a.IsActive() {
			continue
		}
		out[*a.StaffID] = append(out[*a.StaffID], a)
	}
	return out
}

// distinctStaffIDs возвращает уникальные ID сотрудников окон в порядке появления
func distinctStaffIDs(windows []*domain.StaffAvailability) []string {
	seen := make(map[string]struct{}, len(windows))
	ids := make([]string, 0, len(windows))
	for _, w := range windows {
		if _, ok := seen[w.StaffID]; ok {
			continue
		}
		seen[w.StaffID] = struct{}{}
		ids = append(ids, w.StaffID)
	}
	return ids
}
