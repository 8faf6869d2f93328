package auth

import "errors"

var (
	// ErrInvalidToken возвращается, когда ID токен недействителен
	ErrInvalidToken = errors.New("invalid auth token")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
