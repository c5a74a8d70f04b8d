package handlers

import (
	"github.com/gofiber/fiber/v3"

	"scishare/internal/config"
	"scishare/internal/models"
)

// PageHandler renders the small server-side pages (login, landing).
type PageHandler struct {
	cfg *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Login renders the login page.
func (h *PageHandler) Login(c fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title":     "Sign in",
		"SiteTitle": h.cfg.SiteTitle,
	})
}

// Index renders the landing page for an authenticated user.
func (h *PageHandler) Index(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Render("index", fiber.Map{
		"Title":     "Home",
		"SiteTitle": h.cfg.SiteTitle,
		"User":      user,
	})
}
