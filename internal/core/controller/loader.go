package controller

import "sync"

// LoadState — состояние цикла загрузки экрана.
type LoadState int

const (
	StateLoading LoadState = iota
	StateError
	StateReady
)

// loader — общая часть контроллеров экранов: состояние загрузки и защита
// от устаревших ответов. Каждая активация получает новый номер поколения;
// ответ, чье поколение уже не текущее, отбрасывается и не перетирает
// более новое состояние (навигация не отменяет запросы в полете).
type loader struct {
	mu         sync.Mutex
	state      LoadState
	errMessage string
	gen        uint64
}

// begin открывает новый цикл загрузки и возвращает его поколение.
func (l *loader) begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.state = StateLoading
	l.errMessage = ""
	return l.gen
}

// fail переводит экран в состояние ошибки с сообщением для пользователя.
// Причина в сообщение не попадает — она остается в логах.
// Возвращает false, если ответ устарел.
func (l *loader) fail(gen uint64, userMessage string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	l.state = StateError
	l.errMessage = userMessage
	return true
}

// commit применяет результат успешной загрузки под блокировкой.
// Возвращает false, если ответ устарел и был отброшен.
func (l *loader) commit(gen uint64, apply func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	if apply != nil {
		apply()
	}
	l.state = StateReady
	return true
}

// State возвращает текущее состояние экрана.
func (l *loader) State() LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// ErrorMessage возвращает сообщение состояния ошибки.
func (l *loader) ErrorMessage() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMessage
}
