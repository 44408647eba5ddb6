package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"kos-portal/internal/contextkeys"
	"kos-portal/internal/core/domain"
	"kos-portal/internal/core/port"
)

// AuthHandlers — формы входа и регистрации.
type AuthHandlers struct {
	views    *Views
	tokenTTL time.Duration
}

func NewAuthHandlers(views *Views, tokenTTL time.Duration) *AuthHandlers {
	return &AuthHandlers{views: views, tokenTTL: tokenTTL}
}

func (h *AuthHandlers) ShowLogin(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	h.views.Render(w, "login", authView{
		Prompt:       r.URL.Query().Get("prompt"),
		Message:      sess.Auth.Message(),
		ErrorMessage: sess.Auth.ErrorMessage(),
	})
}

func (h *AuthHandlers) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	if err := r.ParseForm(); err != nil {
		redirectWithPrompt(w, r, "/login", "Invalid form submission")
		return
	}

	err := sess.Auth.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		// Сообщение об ошибке уже лежит в контроллере, форма его покажет.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	setTokenCookie(w, sess.Credential.Get(), h.tokenTTL)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	_ = sess.Auth.LoginWithGoogle()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandlers) ShowRegister(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	h.views.Render(w, "register", authView{
		Prompt:       r.URL.Query().Get("prompt"),
		Message:      sess.Auth.Message(),
		ErrorMessage: sess.Auth.ErrorMessage(),
	})
}

func (h *AuthHandlers) SubmitRegister(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	if err := r.ParseForm(); err != nil {
		redirectWithPrompt(w, r, "/register", "Invalid form submission")
		return
	}

	input := domain.RegisterInput{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Phone:    r.PostFormValue("phone"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}
	if input.Role != domain.RoleOwner {
		input.Role = domain.RoleSociety
	}

	logger := contextkeys.LoggerFromContext(r.Context())
	err := sess.Auth.Register(r.Context(), input, func(raw json.RawMessage) {
		logger.Debug("Registration response received", port.Fields{"payload_bytes": len(raw)})
	})
	if err != nil {
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	// Если API вернул токен при регистрации, он уже в хранилище —
	// продлеваем его и в куке.
	if token := sess.Credential.Get(); token != "" {
		setTokenCookie(w, token, h.tokenTTL)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	sess.Auth.Logout()
	clearTokenCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
