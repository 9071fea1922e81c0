package api

import (
	"net/http"

	"cp_tracker/internal/api/handler"
	"cp_tracker/internal/api/middleware"
	"cp_tracker/internal/app/service"
	"cp_tracker/internal/common/security"
	"cp_tracker/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(
	cfg *config.Config,
	log *zap.Logger,
	tokens *security.TokenIssuer,
	authService *service.AuthService,
	submissionService *service.SubmissionService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", handler.Home)
	r.Get("/health", handler.Health)

	r.Route("/api", func(api chi.Router) {
		// register, login, profile (token-gated)
		authHandler := handler.NewAuthHandler(authService, tokens)
		authHandler.RegisterRoutes(api)

		// submit, submissions (public)
		submissionHandler := handler.NewSubmissionHandler(submissionService)
		submissionHandler.RegisterRoutes(api)
	})

	return r
}
