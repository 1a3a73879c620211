package api

import (
	"net/http"

	"github.com/dom/chateo-backend/internal/api/handlers"
	"github.com/dom/chateo-backend/internal/api/middleware"
	"github.com/dom/chateo-backend/internal/config"
	"github.com/dom/chateo-backend/internal/presence"
	"github.com/dom/chateo-backend/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, hub *presence.Hub, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	verificationHandler := handlers.NewVerificationHandler(services.Verification, services.Session)
	profileHandler := handlers.NewProfileHandler(services.Profile, services.Session)
	sessionHandler := handlers.NewSessionHandler(services.User, services.Session)
	userHandler := handlers.NewUserHandler(services.User)
	presenceHandler := handlers.NewPresenceHandler(hub, logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Public onboarding routes
			r.Post("/request-code", verificationHandler.RequestCode)
			r.Post("/verify-code", verificationHandler.VerifyCode)
			r.Post("/resend-code", verificationHandler.ResendCode)
			r.Post("/profile", profileHandler.Create)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Session))
				r.Get("/me", sessionHandler.Me)
				r.Post("/logout", sessionHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Session))

			r.Get("/users", userHandler.List)

			// Presence endpoint
			r.Get("/ws", presenceHandler.Handle)
		})
	})

	return r
}
