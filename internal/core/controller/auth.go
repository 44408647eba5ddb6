package controller

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"kos-portal/internal/contextkeys"
	"kos-portal/internal/core/domain"
	"kos-portal/internal/core/port"
)

// AuthController — формы логина и регистрации.
// Держит транзиентные сообщения форм; сами учётные данные живут только
// в хранилище сеанса.
type AuthController struct {
	mu      sync.Mutex
	api     port.KosAPIPort
	session port.SessionPort

	busy       bool
	message    string
	errMessage string
}

func NewAuthController(api port.KosAPIPort, session port.SessionPort) *AuthController {
	return &AuthController{api: api, session: session}
}

// Login отправляет форму входа. Токен из ответа извлекает шлюз
// (упорядоченными стратегиями); если HTTP-вызов успешен, но токена нет —
// пользователь узнает, что вход не удался, и ничего не сохраняется.
func (c *AuthController) Login(ctx context.Context, email, password string) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	c.busy = true
	c.message = ""
	c.errMessage = ""
	c.mu.Unlock()

	defer c.release()

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"controller": "Auth",
		"email":      email,
	})

	result, err := c.api.Login(ctx, email, password)
	if err != nil {
		logger.Warn("Login failed", port.Fields{"error": err.Error()})
		c.setError(loginErrorMessage(err))
		return err
	}

	if result.Token == "" {
		logger.Warn("Login response carried no token", nil)
		c.setError("Login failed: no token found in the response")
		return domain.ErrTokenNotFound
	}

	c.session.Set(result.Token)
	c.setMessage("Login successful")
	logger.Info("User logged in", nil)
	return nil
}

// LoginWithGoogle — заглушка: соц-логин для этого API не включен.
func (c *AuthController) LoginWithGoogle() error {
	c.mu.Lock()
	c.errMessage = "Google login is not enabled for this API"
	c.mu.Unlock()
	return domain.ErrFeatureUnavailable
}

// Register отправляет форму регистрации. Любой найденный в ответе токен
// сохраняется; onSuccess вызывается с сырым телом ответа.
func (c *AuthController) Register(ctx context.Context, input domain.RegisterInput, onSuccess func(json.RawMessage)) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	c.busy = true
	c.message = ""
	c.errMessage = ""
	c.mu.Unlock()

	defer c.release()

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"controller": "Auth",
		"email":      input.Email,
	})

	result, err := c.api.Register(ctx, input)
	if err != nil {
		logger.Warn("Registration failed", port.Fields{"error": err.Error()})
		c.setError(loginErrorMessage(err))
		return err
	}

	if result.Token != "" {
		c.session.Set(result.Token)
	}

	if onSuccess != nil {
		onSuccess(result.Raw)
	}

	if result.Message != "" {
		c.setMessage(result.Message)
	} else {
		c.setMessage("Registration successful")
	}

	logger.Info("User registered", nil)
	return nil
}

// Logout удаляет токен из хранилища сеанса.
func (c *AuthController) Logout() {
	c.session.Clear()
	c.mu.Lock()
	c.message = "Logged out"
	c.errMessage = ""
	c.mu.Unlock()
}

// Message и ErrorMessage — транзиентные сообщения форм; чтение очищает их,
// чтобы сообщение не пережило свой экран.
func (c *AuthController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := c.message
	c.message = ""
	return msg
}

func (c *AuthController) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := c.errMessage
	c.errMessage = ""
	return msg
}

func (c *AuthController) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *AuthController) setMessage(msg string) {
	c.mu.Lock()
	c.message = msg
	c.mu.Unlock()
}

func (c *AuthController) setError(msg string) {
	c.mu.Lock()
	c.errMessage = msg
	c.mu.Unlock()
}

// loginErrorMessage выбирает сообщение для пользователя: текст из тела
// ответа API, если он есть, иначе общий.
func loginErrorMessage(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong, please try again"
}
