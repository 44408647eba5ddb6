package domain

import "encoding/json"

// Роли, которые принимает удалённый API при регистрации.
// Других значений в форме нет.
const (
	RoleSociety = "society"
	RoleOwner   = "owner"
)

// RegisterInput — данные формы регистрации.
// Минимальная длина пароля (6) проверяется только виджетом формы.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

// AuthResult — результат обращения к login/register.
// Token пуст, если ни одна из стратегий извлечения не нашла токен в ответе,
// даже если сам HTTP-вызов завершился успешно.
type AuthResult struct {
	Token   string
	Message string
	// Raw — сырое тело ответа, передается в колбэк завершения регистрации.
	Raw json.RawMessage
}
