package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на расчет слотов дня
type Request struct {
	Date          string  // Дата в формате YYYY-MM-DD, трактуется как UTC
	ServiceID     string  // ID услуги
	StaffID       *string // Только слоты одного сотрудника
	StepMinutes   *int    // Шаг кандидатов, по умолчанию 15, не меньше 5
	BufferMinutes *int    // Запас после услуги, по умолчанию 0
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time      // Полночь UTC запрошенной даты
	Weekday   domain.Weekday // День недели даты
	ServiceID string         // ID услуги
	Slots     []domain.Slot  // Слоты, отсортированные по staffId, затем по началу
}
