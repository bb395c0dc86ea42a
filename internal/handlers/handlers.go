package handlers

import (
	"GophAuth/internal/config"
	"GophAuth/internal/middleware"
	"GophAuth/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithCORS(middleware.DefaultCORS))

	userHandler := NewUserHandler(userService, logger, config)

	routes := func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Post("/validateToken", userHandler.ValidateToken)
		r.Post("/logout", userHandler.Logout)
		r.Get("/get", userHandler.WhoAmI)
		r.Get("/profile/{username}", userHandler.Profile)
		r.Get("/roles/{username}", userHandler.Roles)
	}
	if config.APIPrefix != "" {
		r.Route(config.APIPrefix, routes)
	} else {
		routes(r)
	}

	return &Handler{Router: r}
}
