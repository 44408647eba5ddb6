package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"kos-portal/internal/adapters/session"
	"kos-portal/internal/core/controller"
	"kos-portal/internal/core/domain"
	"kos-portal/internal/core/port"

	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, port.Fields)         {}
func (nopLogger) Warn(string, port.Fields)         {}
func (nopLogger) Error(string, error, port.Fields) {}
func (nopLogger) Debug(string, port.Fields)        {}
func (l nopLogger) WithFields(port.Fields) port.LoggerPort {
	return l
}

// stubAPI — шлюз с фиксированными ответами для сквозных тестов хэндлеров.
type stubAPI struct {
	loginToken string
	listings   []domain.Kos
}

func (a *stubAPI) Login(_ context.Context, _, _ string) (*domain.AuthResult, error) {
	return &domain.AuthResult{Token: a.loginToken}, nil
}

func (a *stubAPI) Register(_ context.Context, _ domain.RegisterInput) (*domain.AuthResult, error) {
	return &domain.AuthResult{}, nil
}

func (a *stubAPI) SearchKos(_ context.Context, _ string) ([]domain.Kos, error) {
	return a.listings, nil
}

func (a *stubAPI) GetKosByID(_ context.Context, id int) (*domain.Kos, error) {
	return &domain.Kos{ID: id, Name: "Kos Melati"}, nil
}

func (a *stubAPI) CreateBooking(_ context.Context, _ domain.BookingRequest) error { return nil }

func (a *stubAPI) ListReviews(_ context.Context, _ int) ([]domain.Review, error) { return nil, nil }

func (a *stubAPI) CreateReview(_ context.Context, _ int, _ string) error { return nil }

func newTestPortal(t *testing.T, api *stubAPI) *httptest.Server {
	t.Helper()

	hub := session.NewHub(func(id string) *session.Session {
		store := session.NewStore()
		return &session.Session{
			ID:         id,
			Credential: store,
			Auth:       controller.NewAuthController(api, store),
			Listings:   controller.NewListingsController(api, store, "https://storage.example.com/storage"),
			Booking:    controller.NewBookingController(api, store, "https://storage.example.com/storage"),
			Reviews:    controller.NewReviewsController(api, store, "https://storage.example.com/storage"),
		}
	})

	views, err := NewViews(nopLogger{})
	require.NoError(t, err)

	srv := NewServer("0", hub, views, 7*24*time.Hour, nopLogger{})
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func noRedirectClient() *http.Client {
	jar := newCookieJar()
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Минимальная cookie jar: одна host-ключевая корзина достаточна для
// httptest-сервера.
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: make(map[string]*http.Cookie)}
}

func (j *cookieJar) SetCookies(_ *url.URL, cookies []*http.Cookie) {
	for _, c := range cookies {
		if c.MaxAge < 0 {
			delete(j.cookies, c.Name)
			continue
		}
		j.cookies[c.Name] = c
	}
}

func (j *cookieJar) Cookies(_ *url.URL) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		out = append(out, c)
	}
	return out
}

func TestRootRedirectsToDashboard(t *testing.T) {
	ts := newTestPortal(t, &stubAPI{})
	client := noRedirectClient()

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestDashboardWithoutCredentialRedirectsToLogin(t *testing.T) {
	ts := newTestPortal(t, &stubAPI{})
	client := noRedirectClient()

	resp, err := client.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/login"), "got %q", location)
	require.Contains(t, location, "prompt=")
}

func TestLoginSetsTokenCookieAndOpensDashboard(t *testing.T) {
	api := &stubAPI{loginToken: "abc123", listings: []domain.Kos{{ID: 1, Name: "Kos Melati"}}}
	ts := newTestPortal(t, api)
	client := noRedirectClient()

	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"email":    {"user@example.com"},
		"password": {"secret"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))

	var tokenCookie *http.Cookie
	for _, c := range client.Jar.Cookies(nil) {
		if c.Name == "token" {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie)
	require.Equal(t, "abc123", tokenCookie.Value)

	resp, err = client.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Kos Melati")
}

func TestLoginWithoutTokenStaysOnLoginForm(t *testing.T) {
	ts := newTestPortal(t, &stubAPI{loginToken: ""})
	client := noRedirectClient()

	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"email":    {"user@example.com"},
		"password": {"secret"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = client.Get(ts.URL + "/login")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "no token found in the response")
}

func TestLogoutClearsTokenCookie(t *testing.T) {
	api := &stubAPI{loginToken: "abc123"}
	ts := newTestPortal(t, api)
	client := noRedirectClient()

	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"email": {"user@example.com"}, "password": {"secret"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.PostForm(ts.URL+"/logout", nil)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	for _, c := range client.Jar.Cookies(nil) {
		require.NotEqual(t, "token", c.Name, "token cookie must be gone after logout")
	}

	resp, err = client.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "protected screen closed again")
}

func TestBookingWithEmptyDatesRedirectsWithPrompt(t *testing.T) {
	api := &stubAPI{loginToken: "abc123"}
	ts := newTestPortal(t, api)
	client := noRedirectClient()

	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"email": {"user@example.com"}, "password": {"secret"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.PostForm(ts.URL+"/dashboard/detail/7/booking", url.Values{
		"start_date": {""},
		"end_date":   {""},
	})
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/dashboard/detail/7"), "got %q", location)
	require.Contains(t, location, "prompt=")
}

func TestGoogleLoginStub(t *testing.T) {
	ts := newTestPortal(t, &stubAPI{})
	client := noRedirectClient()

	resp, err := client.PostForm(ts.URL+"/login/google", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = client.Get(ts.URL + "/login")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Google login is not enabled for this API")
}
