package identity

import "errors"

var (
	// ErrInvalidToken возвращается, когда токен или сессионная cookie недействительны, истекли или отозваны
	ErrInvalidToken = errors.New("identity client: invalid token")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")
)
