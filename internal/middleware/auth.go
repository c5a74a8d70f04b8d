package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"scishare/internal/db"
	"scishare/internal/models"
)

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	db *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB) *AuthMiddleware {
	return &AuthMiddleware{db: database}
}

// RequireAuth ensures the user is authenticated, redirecting to /login if not.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	user := m.loadUser(c)
	if user == nil {
		return c.Redirect().To("/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireAuthAPI ensures the user is authenticated, returning 401 JSON if
// not. Used on API routes where a redirect would be wrong.
func (m *AuthMiddleware) RequireAuthAPI(c fiber.Ctx) error {
	user := m.loadUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "authentication required",
		})
	}

	c.Locals("user", user)
	return c.Next()
}

// loadUser resolves the session to a user, or nil if unauthenticated.
func (m *AuthMiddleware) loadUser(c fiber.Ctx) *models.User {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return nil
	}

	sub, ok := userSub.(string)
	if !ok {
		return nil
	}

	user, err := m.db.GetUserBySub(c.Context(), sub)
	if err != nil {
		sess.Destroy()
		return nil
	}

	return user
}
