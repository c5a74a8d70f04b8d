package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"scishare/internal/db"
	"scishare/internal/models"
	"scishare/internal/share"
)

// mostSharedNote accompanies every most_shared response.
const mostSharedNote = "Anonymous community statistics - shows how many times each abstract was shared"

// ShareHandler handles abstract sharing and the share-history projections.
type ShareHandler struct {
	service *share.Service
	queries *share.Queries
}

// NewShareHandler creates a new API share handler.
func NewShareHandler(service *share.Service, queries *share.Queries) *ShareHandler {
	return &ShareHandler{service: service, queries: queries}
}

// Share emails an abstract to a third party and records the attempt.
// POST /abstracts/:id/share
func (h *ShareHandler) Share(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	abstractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid abstract id")
	}

	var body struct {
		RecipientEmail string `json:"recipient_email"`
		Message        string `json:"message"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.Share(c.Context(), user, abstractID, body.RecipientEmail, body.Message)
	switch {
	case errors.Is(err, share.ErrInvalidRecipient):
		return jsonError(c, fiber.StatusBadRequest, "recipient_email is not a valid email address")
	case errors.Is(err, share.ErrMessageTooLong):
		return jsonError(c, fiber.StatusBadRequest, "message must be 1000 characters or fewer")
	case errors.Is(err, db.ErrAbstractNotFound):
		return jsonError(c, fiber.StatusNotFound, "abstract not found")
	case errors.Is(err, share.ErrDeliveryFailed):
		// The attempt is recorded; the caller gets a generic retry-later
		// message with no transport detail.
		return jsonError(c, fiber.StatusInternalServerError, "Failed to send email. Please try again later.")
	case err != nil:
		return jsonError(c, fiber.StatusInternalServerError, "failed to share abstract")
	}

	return c.JSON(models.ShareResponse{
		Success:  true,
		Message:  fmt.Sprintf("Abstract shared successfully with %s", record.RecipientEmail),
		SharedID: record.ID,
		SharedAt: record.SharedAt,
	})
}

// MyShared returns the calling user's share history, newest first.
// GET /abstracts/my_shared
func (h *ShareHandler) MyShared(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	shares, err := h.queries.MyShared(c.Context(), user.ID, parseLimit(c, share.DefaultHistoryLimit))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch share history")
	}

	entries := make([]models.MySharedEntry, 0, len(shares))
	for _, s := range shares {
		entries = append(entries, models.MySharedEntry{
			ID:                    s.ID,
			AbstractID:            s.AbstractID,
			AbstractTitle:         s.AbstractTitle,
			RecipientEmail:        s.RecipientEmail,
			Message:               s.Message,
			SharedAt:              s.SharedAt,
			EmailSentSuccessfully: s.EmailSentSuccessfully,
		})
	}

	return c.JSON(models.MySharedResponse{
		SharedAbstracts: entries,
		Total:           len(entries),
	})
}

// MostShared returns the anonymous most-shared ranking.
// GET /abstracts/most_shared?limit=N
func (h *ShareHandler) MostShared(c fiber.Ctx) error {
	if _, ok := c.Locals("user").(*models.User); !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	counts, err := h.queries.MostShared(c.Context(), parseLimit(c, share.DefaultMostSharedLimit))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch most shared abstracts")
	}
	if counts == nil {
		counts = []models.ShareCount{}
	}

	return c.JSON(models.MostSharedResponse{
		MostShared: counts,
		Note:       mostSharedNote,
	})
}

// parseLimit reads the optional ?limit= query parameter.
func parseLimit(c fiber.Ctx, fallback int) int {
	raw := c.Query("limit", "")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
