package port

// SessionPort — контракт хранилища учётных данных одного браузерного сеанса.
// Токен хранится как непрозрачная строка: мы его не парсим и не валидируем,
// этим занимается удалённый API.
type SessionPort interface {
	// Get возвращает сохранённый токен или пустую строку.
	Get() string

	// Set сохраняет токен после успешного логина.
	Set(token string)

	// Clear удаляет токен (логаут или ответ 401 от API).
	Clear()
}
