package controller

import (
	"context"
	"fmt"

	"kos-portal/internal/core/domain"
)

const testStorageBaseURL = "https://storage.example.com/storage"

// fakeSession — хранилище токена для тестов.
type fakeSession struct {
	token string
}

func (s *fakeSession) Get() string      { return s.token }
func (s *fakeSession) Set(token string) { s.token = token }
func (s *fakeSession) Clear()           { s.token = "" }

func authedSession() *fakeSession {
	return &fakeSession{token: "test-token"}
}

// fakeAPI — управляемая заглушка шлюза: каждый метод делегирует в
// настраиваемую функцию и считает вызовы.
type fakeAPI struct {
	loginFn    func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	registerFn func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)
	searchFn   func(ctx context.Context, query string) ([]domain.Kos, error)
	getFn      func(ctx context.Context, id int) (*domain.Kos, error)
	bookingFn  func(ctx context.Context, req domain.BookingRequest) error
	listRevFn  func(ctx context.Context, kosID int) ([]domain.Review, error)
	createRevFn func(ctx context.Context, kosID int, body string) error

	loginCalls     int
	registerCalls  int
	searchCalls    int
	getCalls       int
	bookingCalls   int
	listRevCalls   int
	createRevCalls int
}

func (a *fakeAPI) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	a.loginCalls++
	if a.loginFn == nil {
		return &domain.AuthResult{}, nil
	}
	return a.loginFn(ctx, email, password)
}

func (a *fakeAPI) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	a.registerCalls++
	if a.registerFn == nil {
		return &domain.AuthResult{}, nil
	}
	return a.registerFn(ctx, input)
}

func (a *fakeAPI) SearchKos(ctx context.Context, query string) ([]domain.Kos, error) {
	a.searchCalls++
	if a.searchFn == nil {
		return nil, nil
	}
	return a.searchFn(ctx, query)
}

func (a *fakeAPI) GetKosByID(ctx context.Context, id int) (*domain.Kos, error) {
	a.getCalls++
	if a.getFn == nil {
		return &domain.Kos{ID: id}, nil
	}
	return a.getFn(ctx, id)
}

func (a *fakeAPI) CreateBooking(ctx context.Context, req domain.BookingRequest) error {
	a.bookingCalls++
	if a.bookingFn == nil {
		return nil
	}
	return a.bookingFn(ctx, req)
}

func (a *fakeAPI) ListReviews(ctx context.Context, kosID int) ([]domain.Review, error) {
	a.listRevCalls++
	if a.listRevFn == nil {
		return nil, nil
	}
	return a.listRevFn(ctx, kosID)
}

func (a *fakeAPI) CreateReview(ctx context.Context, kosID int, body string) error {
	a.createRevCalls++
	if a.createRevFn == nil {
		return nil
	}
	return a.createRevFn(ctx, kosID, body)
}

// makeKosList генерирует n объявлений с предсказуемыми полями.
func makeKosList(n int) []domain.Kos {
	items := make([]domain.Kos, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, domain.Kos{
			ID:   i,
			Name: fmt.Sprintf("Kos %d", i),
		})
	}
	return items
}
