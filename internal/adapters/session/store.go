package session

import "sync"

// Store — потокобезопасное хранилище токена одного браузерного сеанса.
// Реализует port.SessionPort; шлюз получает его по ссылке при создании,
// а не через глобальную переменную — так проще тестировать.
type Store struct {
	mu    sync.RWMutex
	token string
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
