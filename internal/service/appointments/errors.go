package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrReferenceNotFound возвращается, когда услуга, клиент или сотрудник не существует
	ErrReferenceNotFound = errors.New("referenced service or user not found")

	// ErrNotOwner возвращается, когда CUSTOMER обращается к чужой записи
	ErrNotOwner = errors.New("insufficient role or not owner")

	// ErrCannotReassignCustomer возвращается, когда CUSTOMER пытается передать запись другому клиенту
	ErrCannotReassignCustomer = errors.New("cannot reassign customerId")

	// ErrInvalidTimeRange возвращается, когда endAt <= startAt
	ErrInvalidTimeRange = errors.New("endAt must be after startAt")

	// ErrStaffBusy возвращается, когда у сотрудника уже есть активная запись на это время
	ErrStaffBusy = errors.New("staff already has an appointment at this time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
