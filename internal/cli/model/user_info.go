package model

import "encoding/json"

// UserInfo — результат login / whoami: профиль и роли пользователя.
// Тела ответов сервера не интерпретируются и передаются как есть.
type UserInfo struct {
	Profile json.RawMessage `json:"profile"`
	Roles   json.RawMessage `json:"roles"`
}

// Credentials — тело запроса /login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenRequest — тело запросов /validateToken и /logout.
// Отсутствующий токен сериализуется как null.
type TokenRequest struct {
	Token *string `json:"token"`
}

// NewTokenRequest строит TokenRequest; пустой токен превращается в null.
func NewTokenRequest(token string) TokenRequest {
	if token == "" {
		return TokenRequest{}
	}
	return TokenRequest{Token: &token}
}
