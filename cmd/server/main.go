package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GophAuth/internal/config"
	"GophAuth/internal/handlers"
	"GophAuth/internal/middleware"
	"GophAuth/internal/repo"
	"GophAuth/internal/service"

	"go.uber.org/zap"
)

const sessionPurgeInterval = time.Hour

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if err := cfg.CheckServerSecret(); err != nil {
		sugar.Fatalw("refusing to start", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userService := service.NewUserService(
		repo.NewUserRepository(gormDB),
		repo.NewRoleRepository(gormDB),
		repo.NewSessionRepository(gormDB),
		cfg.AuthSecret,
		cfg.TokenTTL,
		sugar,
	)
	go purgeSessions(ctx, userService, sugar)

	h := handlers.NewHandler(userService, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sugar.Infow("Starting server", "addr", srv.Addr)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"APIPrefix", cfg.APIPrefix,
		"TokenTTL", cfg.TokenTTL,
		"DatabaseDSN", cfg.DatabaseDSN != "",
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}

// purgeSessions периодически удаляет истёкшие сессии
func purgeSessions(ctx context.Context, svc *service.UserService, sugar *zap.SugaredLogger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		if n, err := svc.PurgeExpiredSessions(ctx); err != nil {
			sugar.Warnw("session purge failed", "error", err)
		} else if n > 0 {
			sugar.Infow("expired sessions purged", "count", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
