package api

import (
	"github.com/gofiber/fiber/v3"
)

// jsonError returns a failure response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
