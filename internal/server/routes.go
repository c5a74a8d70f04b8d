package server

import (
	"context"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scishare/internal/db"
	"scishare/internal/email"
	"scishare/internal/handlers"
	"scishare/internal/handlers/api"
	"scishare/internal/middleware"
	"scishare/internal/share"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database)

	// Share core: SMTP mailer behind the share service
	mailer := email.NewService(s.Cfg)
	shareService := share.NewService(database, mailer, s.Cfg)
	shareQueries := share.NewQueries(database)

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(s.Cfg)
	healthHandler := handlers.NewHealthHandler(database)
	abstractHandler := api.NewAbstractHandler(database)
	shareHandler := api.NewShareHandler(shareService, shareQueries)

	// Auth routes - OIDC is required for all application access
	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Pages
	s.App.Get("/login", pageHandler.Login)
	s.App.Get("/", authMiddleware.RequireAuth, pageHandler.Index)

	// Abstract catalog and sharing API.
	// Fixed paths are registered before /abstracts/:id so the keyword routes
	// are not swallowed by the ID parameter.
	s.App.Get("/abstracts", authMiddleware.RequireAuthAPI, abstractHandler.List)
	s.App.Get("/abstracts/my_shared", authMiddleware.RequireAuthAPI, shareHandler.MyShared)
	s.App.Get("/abstracts/most_shared", authMiddleware.RequireAuthAPI, shareHandler.MostShared)
	s.App.Get("/abstracts/statistics", authMiddleware.RequireAuthAPI, abstractHandler.Statistics)
	s.App.Get("/abstracts/:id", authMiddleware.RequireAuthAPI, abstractHandler.Get)
	s.App.Post("/abstracts/:id/share", authMiddleware.RequireAuthAPI, shareHandler.Share)

	// Operational endpoints
	s.App.Get("/health", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
