package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"scishare/internal/db"
)

// AbstractHandler serves the abstract catalog via JSON API.
type AbstractHandler struct {
	db *db.DB
}

// NewAbstractHandler creates a new API abstract handler.
func NewAbstractHandler(database *db.DB) *AbstractHandler {
	return &AbstractHandler{db: database}
}

// List returns active abstracts, optionally filtered by search query.
func (h *AbstractHandler) List(c fiber.Ctx) error {
	query := c.Query("q", "")
	abstracts, err := h.db.SearchAbstracts(c.Context(), query, 100)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch abstracts")
	}

	return c.JSON(fiber.Map{
		"abstracts": abstracts,
		"total":     len(abstracts),
	})
}

// Get returns a single abstract by ID.
func (h *AbstractHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid abstract id")
	}

	abstract, err := h.db.GetAbstractByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrAbstractNotFound) {
			return jsonError(c, fiber.StatusNotFound, "abstract not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch abstract")
	}

	return c.JSON(abstract)
}

// Statistics returns aggregate catalog statistics.
func (h *AbstractHandler) Statistics(c fiber.Ctx) error {
	stats, err := h.db.GetAbstractStats(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch statistics")
	}

	return c.JSON(stats)
}
