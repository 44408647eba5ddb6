package domain

import (
	"errors"
	"fmt"
)

// Определяем переменные-ошибки, которые могут быть возвращены из контроллеров.
var (
	// ErrNotAuthenticated — учётных данных нет локально, сетевой вызов не выполнялся.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnauthorized — API ответил 401; токен уже удалён из хранилища.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenNotFound — логин прошёл по HTTP, но токен в ответе не найден.
	ErrTokenNotFound = errors.New("token not found in response")

	// ErrDatesRequired — обе даты бронирования должны быть заполнены.
	ErrDatesRequired = errors.New("start and end dates are required")

	// ErrReviewBodyRequired — текст отзыва пуст после trim.
	ErrReviewBodyRequired = errors.New("review body is required")

	// ErrBusy — по этой форме уже идёт запрос.
	ErrBusy = errors.New("submission already in flight")

	// ErrFeatureUnavailable — заглушка для соц-логина.
	ErrFeatureUnavailable = errors.New("feature is not available")
)

// APIError — ошибка удалённого API с человекочитаемым сообщением из тела ответа.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kos api returned status %d: %s", e.StatusCode, e.Message)
}
