package kosapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"kos-portal/internal/contextkeys"
	"kos-portal/internal/contracts"
	"kos-portal/internal/core/domain"
	"kos-portal/internal/core/port"
)

// MakerIDs — значение заголовка MakerID по эндпоинтам. Удалённый API
// принимает на разных вызовах разные значения; сохраняем их как есть.
type MakerIDs struct {
	Login    string
	Register string
	List     string
	Detail   string
	Booking  string
	Reviews  string
}

// Client — шлюз к удалённому kos API: единственная точка, через которую
// уходят все запросы. Подставляет bearer-токен из хранилища сеанса и
// сбрасывает его при ответе 401. Без ретраев, без кэша — каждый вызов
// это свежий сетевой запрос.
type Client struct {
	baseURL    string
	makerIDs   MakerIDs
	httpClient *http.Client
	session    port.SessionPort
}

// NewClient — конструктор шлюза. httpClient передается снаружи, чтобы
// все сеансы делили одно соединение и один фиксированный таймаут.
func NewClient(baseURL string, makerIDs MakerIDs, httpClient *http.Client, session port.SessionPort) *Client {
	return &Client{
		baseURL:    baseURL,
		makerIDs:   makerIDs,
		httpClient: httpClient,
		session:    session,
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, path, makerID string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("MakerID", makerID)

	// Если токен сохранён — подставляем его; без токена вызов уходит
	// неаутентифицированным, решение об отказе принимает сервер.
	if token := c.session.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

// checkResponse разбирает неуспешные ответы. Побочный эффект: на 401
// токен удаляется из хранилища, сама ошибка при этом пробрасывается
// вызывающему — редирект на логин остаётся его заботой.
func (c *Client) checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
		return fmt.Errorf("kos api rejected credentials: %w", domain.ErrUnauthorized)
	}

	return &domain.APIError{
		StatusCode: resp.StatusCode,
		Message:    extractErrorMessage(bodyBytes),
	}
}

// Login выполняет POST /login и извлекает токен из ответа.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "KosAPIClient",
		"method":    "Login",
	})

	reqBody := loginRequest{Email: email, Password: password}
	resp, err := c.doRequest(ctx, http.MethodPost, "/login", c.makerIDs.Login, reqBody)
	if err != nil {
		logger.Error("Failed to perform login request", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		logger.Warn("Login request was rejected", port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read login response", err, nil)
		return nil, err
	}

	token := ExtractToken(raw)
	if token == "" {
		// HTTP-вызов успешен, но токена в ответе нет ни под одним из
		// ожидаемых ключей — это решает вызывающий контроллер.
		logger.Warn("Login response carried no recognizable token", nil)
	} else {
		logger.Info("Login succeeded, token extracted", nil)
	}

	return &domain.AuthResult{
		Token:   token,
		Message: extractInfoMessage(raw),
		Raw:     raw,
	}, nil
}

// Register выполняет POST /register.
func (c *Client) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "KosAPIClient",
		"method":    "Register",
	})

	reqBody := registerRequest{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
		Role:     input.Role,
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/register", c.makerIDs.Register, reqBody)
	if err != nil {
		logger.Error("Failed to perform register request", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		logger.Warn("Register request was rejected", port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read register response", err, nil)
		return nil, err
	}

	logger.Info("Register request succeeded", nil)

	return &domain.AuthResult{
		Token:   ExtractToken(raw),
		Message: extractInfoMessage(raw),
		Raw:     raw,
	}, nil
}

// SearchKos выполняет GET /society/show_kos, опционально с серверным фильтром.
func (c *Client) SearchKos(ctx context.Context, query string) ([]domain.Kos, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "KosAPIClient",
		"method":    "SearchKos",
	})

	path := "/society/show_kos?search=" + url.QueryEscape(query)
	logger.Debug("Sending request to kos api", port.Fields{"path": path})

	resp, err := c.doRequest(ctx, http.MethodGet, path, c.makerIDs.List, nil)
	if err != nil {
		logger.Error("Failed to perform request to kos api", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		logger.Error("Received error response from kos api", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var envelope kosListEnvelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read response from kos api", err, nil)
		return nil, err
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		logger.Error("Failed to decode response from kos api", err, nil)
		return nil, err
	}

	// Сверяем форму ответа с контрактом; расхождение только логируем —
	// API внешний, падать из-за нового поля не нужно.
	if data, err := json.Marshal(envelope.Data); err == nil {
		if err := contracts.Validate(contracts.KosListingSchema, data); err != nil {
			logger.Warn("Kos listing payload diverged from known contract", port.Fields{"error": err.Error()})
		}
	}

	result := make([]domain.Kos, len(envelope.Data))
	for i, dto := range envelope.Data {
		result[i] = dto.toDomain()
	}

	logger.Info("Successfully received and decoded listings", port.Fields{"count": len(result)})
	return result, nil
}

// GetKosByID выполняет GET /society/detail_kos/{id}.
func (c *Client) GetKosByID(ctx context.Context, id int) (*domain.Kos, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "KosAPIClient",
		"method":    "GetKosByID",
		"kos_id":    id,
	})

	path := fmt.Sprintf("/society/detail_kos/%d", id)
	resp, err := c.doRequest(ctx, http.MethodGet, path, c.makerIDs.Detail, nil)
	if err != nil {
		logger.Error("Failed to perform request to kos api", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		logger.Error("Received error response from kos api", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var envelope kosDetailEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		logger.Error("Failed to decode response from kos api", err, nil)
		return nil, err
	}

	kos := envelope.Data.toDomain()
	logger.Debug("Successfully received kos detail", nil)
	return &kos, nil
}

// CreateBooking выполняет POST /society/booking.
func (c *Client) CreateBooking(ctx context.Context, req domain.BookingRequest) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "KosAPIClient",
		"method":    "CreateBooking",
		"kos_id":    req.KosID,
	})

	reqBody := bookingRequest{
		KosID:     req.KosID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/society/booking", c.makerIDs.Booking, reqBody)
	if err != nil {
		logger.Error("Failed to perform booking request", err, nil)
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		logger.Error("Booking request was rejected", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	logger.Info("Booking request succeeded", nil)
	return nil
}

// ListReviews выполняет GET /society/review/{id}.
func (c *Client) ListReviews(ctx context.Context, kosID int) ([]domain.Review, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "KosAPIClient",
		"method":    "ListReviews",
		"kos_id":    kosID,
	})

	path := fmt.Sprintf("/society/review/%d", kosID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, c.makerIDs.Reviews, nil)
	if err != nil {
		logger.Error("Failed to perform request to kos api", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		logger.Error("Received error response from kos api", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var envelope reviewListEnvelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read response from kos api", err, nil)
		return nil, err
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		logger.Error("Failed to decode response from kos api", err, nil)
		return nil, err
	}

	if data, err := json.Marshal(envelope.Data); err == nil {
		if err := contracts.Validate(contracts.KosReviewSchema, data); err != nil {
			logger.Warn("Review payload diverged from known contract", port.Fields{"error": err.Error()})
		}
	}

	result := make([]domain.Review, len(envelope.Data))
	for i, dto := range envelope.Data {
		result[i] = dto.toDomain()
	}

	logger.Info("Successfully received reviews", port.Fields{"count": len(result)})
	return result, nil
}

// CreateReview выполняет POST /society/review/{id}.
func (c *Client) CreateReview(ctx context.Context, kosID int, body string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "KosAPIClient",
		"method":    "CreateReview",
		"kos_id":    kosID,
	})

	path := fmt.Sprintf("/society/review/%d", kosID)
	resp, err := c.doRequest(ctx, http.MethodPost, path, c.makerIDs.Reviews, reviewRequest{Review: body})
	if err != nil {
		logger.Error("Failed to perform review request", err, nil)
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		logger.Error("Review request was rejected", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	logger.Info("Review request succeeded", nil)
	return nil
}
