package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"GophAuth/internal/cli/api"
	"GophAuth/internal/cli/repo/memory"
	clisvc "GophAuth/internal/cli/service"
	"GophAuth/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Клиент аутентификации против настоящего роутера: полный цикл сессии
func TestAuthClient_AgainstServer(t *testing.T) {
	router, svc := newTestRouter(t, &config.Config{APIPrefix: "/api"})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", "pw", "Bob")
	require.NoError(t, err)

	store := memory.New("")
	client := clisvc.NewAuthClient(api.NewRequester(srv.URL+"/api"), store, zap.NewNop().Sugar())

	assert.False(t, client.IsLoggedIn(ctx))

	// неверный пароль — ErrLoginRejected, хранилище не тронуто
	_, err = client.Login(ctx, "bob", "wrong", true)
	assert.ErrorIs(t, err, clisvc.ErrLoginRejected)
	_, ok, _ := store.Get()
	assert.False(t, ok)

	info, err := client.Login(ctx, "bob", "pw", true)
	require.NoError(t, err)
	assert.Contains(t, string(info.Profile), `"name":"Bob"`)
	assert.JSONEq(t, `["user"]`, string(info.Roles))

	tok, ok, _ := store.Get()
	require.True(t, ok)
	valid, err := client.ValidateToken(ctx, tok)
	assert.NoError(t, err)
	assert.True(t, valid)
	assert.True(t, client.IsLoggedIn(ctx))

	me, err := client.GetProfileForLoggedInUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, info.Roles, me.Roles)

	require.NoError(t, client.Logout(ctx))
	_, ok, _ = store.Get()
	assert.False(t, ok)

	// отозванный токен больше не принимается
	valid, err = client.ValidateToken(ctx, tok)
	assert.NoError(t, err)
	assert.False(t, valid)
	assert.False(t, client.IsLoggedIn(ctx))

	// whoami без токена — 401
	_, err = client.GetProfileForLoggedInUser(ctx)
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
}

// Сжатые ответы сервера прозрачно распаковываются транспортом клиента
func TestAuthClient_GzipTransport(t *testing.T) {
	router, svc := newTestRouter(t, nil)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	ctx := context.Background()

	_, err := svc.Register(ctx, "zed", "pw", "")
	require.NoError(t, err)

	client := clisvc.NewAuthClient(api.NewRequester(srv.URL), memory.New(""), nil)
	info, err := client.Login(ctx, "zed", "pw", false)
	require.NoError(t, err)
	assert.JSONEq(t, `["user"]`, string(info.Roles))
}
