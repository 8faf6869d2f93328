package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken возвращается, когда email уже принадлежит другой учетной записи
	ErrEmailTaken = errors.New("a user with this email already exists")

	// ErrRoleChangeForbidden возвращается, когда роль пытается сменить не владелец
	ErrRoleChangeForbidden = errors.New("only owner can change role")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
