package domain

import "time"

// ReviewStatus отличает локально добавленные отзывы от подтверждённых сервером.
type ReviewStatus string

const (
	// ReviewPending — отзыв добавлен оптимистично, с временным локальным id.
	// Сервер мог присвоить ему другой id и другое время — сверка не выполняется,
	// при следующей загрузке экрана список заменяется серверным.
	ReviewPending ReviewStatus = "pending"

	// ReviewConfirmed — отзыв получен из ответа API.
	ReviewConfirmed ReviewStatus = "confirmed"
)

// Review — отзыв к объявлению.
type Review struct {
	ID        string
	Body      string
	CreatedAt time.Time
	Status    ReviewStatus
}
