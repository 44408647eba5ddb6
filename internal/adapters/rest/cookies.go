package rest

import (
	"net/http"
	"net/url"
	"time"
)

// setTokenCookie кладет токен во вторую, переживающую рестарт куку.
func setTokenCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// redirectToLogin выполняется при любой попытке попасть на защищенный
// экран без учётных данных: токен-кука стирается, пользователь уходит
// на форму входа с пояснением.
func redirectToLogin(w http.ResponseWriter, r *http.Request, prompt string) {
	clearTokenCookie(w)
	redirectWithPrompt(w, r, "/login", prompt)
}

func redirectWithPrompt(w http.ResponseWriter, r *http.Request, path, prompt string) {
	if prompt != "" {
		path += "?prompt=" + url.QueryEscape(prompt)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
