package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/nzambu/coachsim/internal/api/handler"
	customMiddleware "github.com/nzambu/coachsim/internal/api/middleware"
	"github.com/nzambu/coachsim/internal/config"
	"github.com/nzambu/coachsim/internal/domain"
	"github.com/nzambu/coachsim/internal/llm"
	"github.com/nzambu/coachsim/internal/llm/gemini"
	"github.com/nzambu/coachsim/internal/repository/allowlist"
	"github.com/nzambu/coachsim/internal/repository/sqlite"
	"github.com/nzambu/coachsim/internal/security"
	"github.com/nzambu/coachsim/internal/service"
)

// Deps carries the externally constructed collaborators the router wires
// together. Sheet may be nil when the spreadsheet archive is not
// configured; Mirror may be nil in tests.
type Deps struct {
	Allowlist *allowlist.Source
	Reference domain.ReferenceStore
	Mirror    *sqlite.Archive
	Sheet     domain.Archive
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Passphrase"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	// Generative backend
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider, cfg.LLM.RequestTimeout)
	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	} else {
		log.Warn().Msg("Gemini API key is empty, conversations will fail")
	}

	// Services
	accessService := service.NewAccessService(deps.Allowlist)
	feedbackService := service.NewFeedbackService(llmRouter, deps.Reference)
	exportService := service.NewExportService(archiveOrNil(deps.Mirror), deps.Sheet)
	conversationService := service.NewConversationService(llmRouter, feedbackService, exportService)
	adminService := service.NewAdminService(deps.Allowlist, deps.Reference)

	// Handlers
	authHandler := handler.NewAuthHandler(accessService, conversationService, jwtManager)
	chatHandler := handler.NewChatHandler(conversationService)
	adminHandler := handler.NewAdminHandler(adminService)

	sessionMiddleware := customMiddleware.NewSessionMiddleware(jwtManager)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(deps.Mirror))

		r.Post("/auth/login", authHandler.Login)
		r.Get("/personas", handler.ListPersonas)

		// Student session routes
		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/session", func(r chi.Router) {
				r.Post("/persona", chatHandler.SelectPersona)
				r.Post("/message", chatHandler.SendMessage)
				r.Get("/transcript", chatHandler.Transcript)
				r.Post("/end", chatHandler.End)
				r.Post("/new", chatHandler.New)
			})
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(customMiddleware.AdminOnly(cfg.Auth.AdminPassphrase))

			r.Post("/allowlist", adminHandler.ReplaceAllowList)
			r.Post("/reference", adminHandler.ReplaceReference)
		})
	})

	return r
}

// archiveOrNil avoids handing a typed-nil *sqlite.Archive to the export
// service behind the domain.Archive interface.
func archiveOrNil(mirror *sqlite.Archive) domain.Archive {
	if mirror == nil {
		return nil
	}
	return mirror
}
