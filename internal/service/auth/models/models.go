package models

import "time"

// ReasonNoEmail токен не содержит email, профиль создать нельзя
const ReasonNoEmail = "no_email"

// LoginRequest запрос на вход по ID токену провайдера
type LoginRequest struct {
	IDToken string `json:"idToken"`
}

// LoginUser краткий профиль существующего пользователя
type LoginUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Prefill данные провайдера для формы завершения регистрации
type Prefill struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// LoginResponse результат входа
// SessionCookie и ExpiresIn не сериализуются, их выставляет обработчик в cookie
type LoginResponse struct {
	Authenticated bool       `json:"authenticated"`
	NeedsProfile  *bool      `json:"needsProfile,omitempty"`
	User          *LoginUser `json:"user,omitempty"`
	Prefill       *Prefill   `json:"prefill,omitempty"`
	Reason        string     `json:"reason,omitempty"`

	SessionCookie string        `json:"-"`
	ExpiresIn     time.Duration `json:"-"`
}
