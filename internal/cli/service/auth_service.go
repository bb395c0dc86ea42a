package service

import (
	"context"
	"errors"

	"GophAuth/internal/cli/model"
)

// ErrLoginRejected возвращается Login, если сервер ответил не 2xx.
var ErrLoginRejected = errors.New("login rejected by server")

// AuthService описывает юзкейс-уровень аутентификации для CLI.
type AuthService interface {
	// IsLoggedIn проверяет сохранённый токен на сервере.
	// Не чистый предикат: при любой неудаче токен удаляется из хранилища.
	IsLoggedIn(ctx context.Context) bool

	// ValidateToken возвращает true, если сервер ответил 2xx.
	ValidateToken(ctx context.Context, token string) (bool, error)

	// Login аутентифицирует пользователя; при rememberMe сохраняет выданный токен.
	Login(ctx context.Context, username, password string, rememberMe bool) (*model.UserInfo, error)

	// GetProfileForLoggedInUser возвращает профиль и роли владельца сохранённого токена.
	GetProfileForLoggedInUser(ctx context.Context) (*model.UserInfo, error)

	// Logout завершает сессию на сервере и очищает локальный токен.
	Logout(ctx context.Context) error
}
