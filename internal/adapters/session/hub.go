package session

import (
	"sync"

	"kos-portal/internal/core/controller"
)

// Session — состояние одного браузерного сеанса: хранилище токена и
// контроллеры экранов. Живет в памяти процесса, ключом служит
// сеансовая кука.
type Session struct {
	ID         string
	Credential *Store

	Auth     *controller.AuthController
	Listings *controller.ListingsController
	Booking  *controller.BookingController
	Reviews  *controller.ReviewsController
}

// BuildFunc собирает новый сеанс: хранилище токена, шлюз и контроллеры.
// Проводка задается на старте приложения.
type BuildFunc func(id string) *Session

// Hub — реестр активных браузерных сеансов.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Session
	build    BuildFunc
}

func NewHub(build BuildFunc) *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		build:    build,
	}
}

// GetOrCreate возвращает существующий сеанс или создает новый.
func (h *Hub) GetOrCreate(id string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sess, ok := h.sessions[id]; ok {
		return sess
	}

	sess := h.build(id)
	h.sessions[id] = sess
	return sess
}

// Drop удаляет сеанс из реестра (например, после логаута).
func (h *Hub) Drop(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}
