package replace_availabilities

import "github.com/m04kA/SMC-SalonService/internal/domain"

// Request модель запроса на полную замену расписания сотрудника
type Request struct {
	Actor   domain.Actor // Кто выполняет замену; STAFF всегда заменяет свое расписание
	StaffID string       // Сотрудник, чье расписание заменяется
	Slots   []Window     // Новый набор окон, пустой набор очищает расписание
}

// Window окно доступности в составе набора
type Window struct {
	StaffID   string // Пустое значение означает StaffID запроса
	Day       string
	StartTime string
	EndTime   string
}

// Response модель ответа с сохраненным расписанием
type Response struct {
	StaffID string
	Items   []*domain.StaffAvailability // Упорядочены по дню недели, затем по началу
}
