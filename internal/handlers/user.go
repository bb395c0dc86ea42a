package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"GophAuth/internal/config"
	"GophAuth/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenRequest — тело /validateToken и /logout. token может быть null.
type tokenRequest struct {
	Token *string `json:"token"`
}

func (t tokenRequest) value() string {
	if t.Token == nil {
		return ""
	}
	return *t.Token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Register регистрация пользователя
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	user, err := h.UserService.Register(r.Context(), req.Username, req.Password, req.Name)
	switch {
	case errors.Is(err, service.ErrLoginTaken):
		http.Error(w, "login already taken", http.StatusConflict)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	case err != nil:
		h.Logger.Errorw("register failed", "login", req.Username, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": user.Login})
}

// Login авторизация; тело ответа — JSON-строка с токеном
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	token, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.Logger.Infow("login rejected", "login", req.Username)
		http.Error(w, "invalid login or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.Logger.Errorw("login failed", "login", req.Username, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

// ValidateToken 200 {"valid":true} или 401
func (h *UserHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if _, ok := h.authorize(w, r, req.value()); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// WhoAmI /get?token= — логин владельца токена
func (h *UserHandler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	login, ok := h.authorize(w, r, r.URL.Query().Get("token"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, login)
}

// Logout идемпотентен: неизвестный токен — тоже 200
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.UserService.Logout(r.Context(), req.value()); err != nil {
		h.Logger.Errorw("logout failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.UserService.Profile(r.Context(), chi.URLParam(r, "username"))
	if !h.lookupOK(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *UserHandler) Roles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.UserService.Roles(r.Context(), chi.URLParam(r, "username"))
	if !h.lookupOK(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

// authorize пишет 401 для невалидного токена и 500 для ошибок БД.
func (h *UserHandler) authorize(w http.ResponseWriter, r *http.Request, token string) (string, bool) {
	login, err := h.UserService.ValidateToken(r.Context(), token)
	if errors.Is(err, service.ErrInvalidToken) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	if err != nil {
		h.Logger.Errorw("token validation failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return "", false
	}
	return login, true
}

func (h *UserHandler) lookupOK(w http.ResponseWriter, err error) bool {
	if errors.Is(err, service.ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return false
	}
	if err != nil {
		h.Logger.Errorw("user lookup failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return false
	}
	return true
}
