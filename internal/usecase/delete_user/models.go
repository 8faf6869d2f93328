package delete_user

import "github.com/m04kA/SMC-SalonService/internal/domain"

// Request модель запроса на удаление пользователя
type Request struct {
	ActorID string // Кто удаляет (для логирования)
	UserID  string // Удаляемый пользователь
}

// Response модель ответа с удаленным пользователем
type Response struct {
	User                *domain.User
	CancelledAsStaff    int64 // Отменено будущих записей, где пользователь - сотрудник
	CancelledAsCustomer int64 // Отменено будущих записей, где пользователь - клиент
}
