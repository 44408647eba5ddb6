package port

import (
	"context"

	"kos-portal/internal/core/domain"
)

// KosAPIPort — контракт шлюза к удалённому kos API.
// Все исходящие вызовы проходят через одну реализацию, чтобы подстановка
// токена и обработка 401 были согласованными для всех экранов.
type KosAPIPort interface {
	// Login выполняет аутентификацию. Токен извлекается из ответа
	// упорядоченным набором стратегий; если ни одна не сработала,
	// возвращается результат с пустым токеном и nil-ошибкой.
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)

	// Register создает аккаунт и возвращает сырое тело ответа
	// вместе с токеном, если API его выдал.
	Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)

	// SearchKos возвращает список объявлений, опционально отфильтрованный
	// сервером по строке запроса.
	SearchKos(ctx context.Context, query string) ([]domain.Kos, error)

	// GetKosByID возвращает одно объявление по идентификатору.
	GetKosByID(ctx context.Context, id int) (*domain.Kos, error)

	// CreateBooking отправляет заявку на бронирование.
	CreateBooking(ctx context.Context, req domain.BookingRequest) error

	// ListReviews возвращает отзывы по объявлению.
	ListReviews(ctx context.Context, kosID int) ([]domain.Review, error)

	// CreateReview отправляет новый отзыв.
	CreateReview(ctx context.Context, kosID int, body string) error
}
