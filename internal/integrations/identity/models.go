package identity

// Identity проверенная учетная запись провайдера идентификации
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// HasEmail сообщает, содержит ли токен адрес почты
func (i *Identity) HasEmail() bool {
	return i != nil && i.Email != ""
}
