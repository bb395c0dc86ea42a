package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"GophAuth/internal/cli/api"
	"GophAuth/internal/cli/model"
	"GophAuth/internal/cli/repo"

	"go.uber.org/zap"
)

// Пути API относительно base URL.
const (
	PathValidateToken = "/validateToken"
	PathLogin         = "/login"
	PathLogout        = "/logout"
	PathWhoAmI        = "/get"
	PathProfile       = "/profile/"
	PathRoles         = "/roles/"
)

// AuthClient — реализация AuthService поверх HTTP API и TokenStore.
type AuthClient struct {
	api    *api.Requester
	store  repo.TokenStore
	logger *zap.SugaredLogger
}

var _ AuthService = (*AuthClient)(nil)

// NewAuthClient конструктор клиента аутентификации. nil logger заменяется на Nop.
func NewAuthClient(requester *api.Requester, store repo.TokenStore, logger *zap.SugaredLogger) *AuthClient {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &AuthClient{api: requester, store: store, logger: logger}
}

// fail — единая политика ошибок: залогировать и вернуть обёрнутую ошибку.
func (c *AuthClient) fail(op string, err error) error {
	c.logger.Errorw(op+" failed", "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

func (c *AuthClient) IsLoggedIn(ctx context.Context) bool {
	ok, err := c.checkStoredToken(ctx)
	if ok {
		return true
	}
	if err != nil {
		c.logger.Warnw("session check failed", "error", err)
	}
	// токен невалиден или проверка не удалась — в обоих случаях сбрасываем
	if rmErr := c.store.Remove(); rmErr != nil {
		c.logger.Warnw("failed to clear auth token", "error", rmErr)
	}
	return false
}

// checkStoredToken валидирует сохранённый токен. Без токена запрос всё равно уходит (token=null).
func (c *AuthClient) checkStoredToken(ctx context.Context) (bool, error) {
	token, _, err := c.store.Get()
	if err != nil {
		return false, fmt.Errorf("read auth token: %w", err)
	}
	return c.ValidateToken(ctx, token)
}

func (c *AuthClient) ValidateToken(ctx context.Context, token string) (bool, error) {
	resp, _, err := c.api.PostJSON(ctx, PathValidateToken, model.NewTokenRequest(token))
	if err != nil {
		return false, err
	}
	return api.IsSuccess(resp.StatusCode), nil
}

func (c *AuthClient) Login(ctx context.Context, username, password string, rememberMe bool) (*model.UserInfo, error) {
	const op = "login"
	resp, body, err := c.api.PostJSON(ctx, PathLogin, model.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, c.fail(op, err)
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return nil, c.fail(op, fmt.Errorf("%w: %w", ErrLoginRejected, err))
	}
	if rememberMe {
		token, err := decodeString(body, "token")
		if err != nil {
			return nil, c.fail(op, fmt.Errorf("decode token: %w", err))
		}
		if err := c.store.Set(token); err != nil {
			return nil, c.fail(op, fmt.Errorf("save auth token: %w", err))
		}
		c.logger.Debugw("auth token stored", "username", username)
	}
	info, err := c.fetchUserInfo(ctx, username)
	if err != nil {
		return nil, c.fail(op, err)
	}
	return info, nil
}

func (c *AuthClient) GetProfileForLoggedInUser(ctx context.Context) (*model.UserInfo, error) {
	const op = "get profile"
	token, _, err := c.store.Get()
	if err != nil {
		return nil, c.fail(op, fmt.Errorf("read auth token: %w", err))
	}
	resp, body, err := c.api.Get(ctx, PathWhoAmI+"?token="+url.QueryEscape(token))
	if err != nil {
		return nil, c.fail(op, err)
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return nil, c.fail(op, err)
	}
	username, err := decodeString(body, "username")
	if err != nil {
		return nil, c.fail(op, fmt.Errorf("decode username: %w", err))
	}
	info, err := c.fetchUserInfo(ctx, username)
	if err != nil {
		return nil, c.fail(op, err)
	}
	return info, nil
}

func (c *AuthClient) Logout(ctx context.Context) error {
	const op = "logout"
	token, _, err := c.store.Get()
	if err != nil {
		return c.fail(op, fmt.Errorf("read auth token: %w", err))
	}
	// статус ответа не важен: раз запрос дошёл, локальная сессия сбрасывается
	if _, _, err := c.api.PostJSON(ctx, PathLogout, model.NewTokenRequest(token)); err != nil {
		return c.fail(op, err)
	}
	if err := c.store.Remove(); err != nil {
		return c.fail(op, fmt.Errorf("clear auth token: %w", err))
	}
	return nil
}

type fetchResult struct {
	data json.RawMessage
	err  error
}

// fetchUserInfo параллельно запрашивает профиль и роли.
// Первая ошибка возвращается сразу; второй запрос не отменяется и завершается в фоне.
func (c *AuthClient) fetchUserInfo(ctx context.Context, username string) (*model.UserInfo, error) {
	escaped := url.PathEscape(username)
	profileCh := make(chan fetchResult, 1)
	rolesCh := make(chan fetchResult, 1)
	go func() { profileCh <- c.fetchJSON(ctx, "profile", PathProfile+escaped) }()
	go func() { rolesCh <- c.fetchJSON(ctx, "roles", PathRoles+escaped) }()

	info := &model.UserInfo{}
	for pending := 2; pending > 0; pending-- {
		select {
		case r := <-profileCh:
			if r.err != nil {
				return nil, r.err
			}
			info.Profile = r.data
		case r := <-rolesCh:
			if r.err != nil {
				return nil, r.err
			}
			info.Roles = r.data
		}
	}
	return info, nil
}

func (c *AuthClient) fetchJSON(ctx context.Context, what, path string) fetchResult {
	resp, body, err := c.api.Get(ctx, path)
	if err != nil {
		return fetchResult{err: fmt.Errorf("fetch %s: %w", what, err)}
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return fetchResult{err: fmt.Errorf("fetch %s: %w", what, err)}
	}
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return fetchResult{err: fmt.Errorf("fetch %s: malformed JSON body", what)}
	}
	return fetchResult{data: json.RawMessage(trimmed)}
}

// decodeString читает строку из JSON-тела: либо "value", либо {"<field>": "value"}.
func decodeString(body []byte, field string) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", errors.New("empty body")
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return "", fmt.Errorf("malformed body: %w", err)
	}
	raw, ok := obj[field]
	if !ok {
		return "", fmt.Errorf("field %q missing", field)
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %q: %w", field, err)
	}
	return s, nil
}
