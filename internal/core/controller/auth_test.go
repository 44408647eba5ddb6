package controller

import (
	"context"
	"encoding/json"
	"testing"

	"kos-portal/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	api := &fakeAPI{loginFn: func(_ context.Context, email, password string) (*domain.AuthResult, error) {
		require.Equal(t, "user@example.com", email)
		require.Equal(t, "secret", password)
		return &domain.AuthResult{Token: "abc123"}, nil
	}}
	store := &fakeSession{}
	c := NewAuthController(api, store)

	err := c.Login(context.Background(), "user@example.com", "secret")

	require.NoError(t, err)
	require.Equal(t, "abc123", store.Get())
	require.Equal(t, "Login successful", c.Message())
}

func TestLoginWithoutTokenFails(t *testing.T) {
	api := &fakeAPI{loginFn: func(_ context.Context, _, _ string) (*domain.AuthResult, error) {
		// HTTP 200, но ни одно из известных полей токена не заполнено.
		return &domain.AuthResult{Raw: json.RawMessage(`{"status":"ok"}`)}, nil
	}}
	store := &fakeSession{}
	c := NewAuthController(api, store)

	err := c.Login(context.Background(), "user@example.com", "secret")

	require.ErrorIs(t, err, domain.ErrTokenNotFound)
	require.Empty(t, store.Get(), "nothing persisted without a token")
	require.Equal(t, "Login failed: no token found in the response", c.ErrorMessage())
}

func TestLoginAPIErrorShowsServerMessage(t *testing.T) {
	api := &fakeAPI{loginFn: func(_ context.Context, _, _ string) (*domain.AuthResult, error) {
		return nil, &domain.APIError{StatusCode: 422, Message: "wrong password"}
	}}
	c := NewAuthController(api, &fakeSession{})

	err := c.Login(context.Background(), "user@example.com", "bad")

	require.Error(t, err)
	require.Equal(t, "wrong password", c.ErrorMessage())
}

func TestTransientMessagesClearOnRead(t *testing.T) {
	api := &fakeAPI{loginFn: func(_ context.Context, _, _ string) (*domain.AuthResult, error) {
		return &domain.AuthResult{Token: "abc123"}, nil
	}}
	c := NewAuthController(api, &fakeSession{})
	require.NoError(t, c.Login(context.Background(), "user@example.com", "secret"))

	require.Equal(t, "Login successful", c.Message())
	require.Empty(t, c.Message(), "message does not outlive its screen")
}

func TestLoginWithGoogleIsStubbed(t *testing.T) {
	c := NewAuthController(&fakeAPI{}, &fakeSession{})

	err := c.LoginWithGoogle()

	require.ErrorIs(t, err, domain.ErrFeatureUnavailable)
	require.Equal(t, "Google login is not enabled for this API", c.ErrorMessage())
}

func TestRegisterPersistsTokenAndCallsBack(t *testing.T) {
	raw := json.RawMessage(`{"token":"reg-token","message":"welcome"}`)
	api := &fakeAPI{registerFn: func(_ context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
		require.Equal(t, domain.RoleSociety, input.Role)
		return &domain.AuthResult{Token: "reg-token", Message: "welcome", Raw: raw}, nil
	}}
	store := &fakeSession{}
	c := NewAuthController(api, store)

	var gotRaw json.RawMessage
	err := c.Register(context.Background(), domain.RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Phone:    "0812",
		Password: "secret",
		Role:     domain.RoleSociety,
	}, func(payload json.RawMessage) { gotRaw = payload })

	require.NoError(t, err)
	require.Equal(t, "reg-token", store.Get())
	require.JSONEq(t, string(raw), string(gotRaw))
	require.Equal(t, "welcome", c.Message())
}

func TestRegisterWithoutTokenStillSucceeds(t *testing.T) {
	api := &fakeAPI{registerFn: func(_ context.Context, _ domain.RegisterInput) (*domain.AuthResult, error) {
		return &domain.AuthResult{}, nil
	}}
	store := &fakeSession{}
	c := NewAuthController(api, store)

	err := c.Register(context.Background(), domain.RegisterInput{Role: domain.RoleOwner}, nil)

	require.NoError(t, err)
	require.Empty(t, store.Get())
	require.Equal(t, "Registration successful", c.Message())
}

func TestLogoutClearsCredential(t *testing.T) {
	store := authedSession()
	c := NewAuthController(&fakeAPI{}, store)

	c.Logout()

	require.Empty(t, store.Get())
	require.Equal(t, "Logged out", c.Message())
}
