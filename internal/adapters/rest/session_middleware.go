package rest

import (
	"context"
	"net/http"

	"kos-portal/internal/adapters/session"

	"github.com/google/uuid"
)

const (
	// sessionCookieName — кука с идентификатором браузерного сеанса.
	sessionCookieName = "kos_session"

	// tokenCookieName — кука с токеном (второе хранилище, 7 дней).
	tokenCookieName = "token"
)

type sessionCtxKeyType struct{}

var sessionCtxKey = sessionCtxKeyType{}

// SessionMiddleware привязывает к каждому запросу его браузерный сеанс.
type SessionMiddleware struct {
	hub *session.Hub
}

func NewSessionMiddleware(hub *session.Hub) *SessionMiddleware {
	return &SessionMiddleware{hub: hub}
}

func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				id = cookie.Value
			}
		}
		if id == "" {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
			})
		}

		sess := m.hub.GetOrCreate(id)

		// Инициализация сеанса: токен-кука могла пережить рестарт
		// процесса — засеваем из нее хранилище.
		if sess.Credential.Get() == "" {
			if tc, err := r.Cookie(tokenCookieName); err == nil && tc.Value != "" {
				sess.Credential.Set(tc.Value)
			}
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFromRequest извлекает сеанс, привязанный middleware.
func sessionFromRequest(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionCtxKey).(*session.Session)
	return sess
}
