package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"GophAuth/internal/config"
	"GophAuth/internal/handlers"
	"GophAuth/internal/repo"
	"GophAuth/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// newTestRouter собирает роутер поверх отдельной in-memory SQLite
func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *service.UserService) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "test-secret"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	logger := zap.NewNop().Sugar()
	svc := service.NewUserService(
		repo.NewUserRepository(db),
		repo.NewRoleRepository(db),
		repo.NewSessionRepository(db),
		cfg.AuthSecret, cfg.TokenTTL, logger,
	)
	return handlers.NewHandler(svc, logger, cfg).Router, svc
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func newPreflight(path string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
