// Package selection provides the REST handlers for selection tracking.
package selection

import (
	"github.com/gofiber/fiber/v2"

	"github.com/storeops/sum-backend/internal/session"
)

// Handler carries the dependencies for the selection endpoints.
type Handler struct {
	Sessions *session.Manager
}

type toggleRequest struct {
	UserID string `json:"user_id"`
	SysID  string `json:"sys_id"`
}

// PostToggle flips one record's selection state.
func (h *Handler) PostToggle(c *fiber.Ctx) error {
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" || req.SysID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and sys_id are required"})
	}

	sess := h.Sessions.Get(req.UserID)
	selected := sess.ToggleSelection(req.SysID)

	return c.JSON(fiber.Map{
		"sys_id":   req.SysID,
		"selected": selected,
		"stats":    sess.SelectionStats(),
	})
}

type userRequest struct {
	UserID string `json:"user_id"`
}

// PostSelectVisible selects every record on the current filtered page.
func (h *Handler) PostSelectVisible(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	sess := h.Sessions.Get(req.UserID)
	total := sess.SelectVisible()

	return c.JSON(fiber.Map{
		"selected_total": total,
		"stats":          sess.SelectionStats(),
	})
}

// PostClear empties the selection.
func (h *Handler) PostClear(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	h.Sessions.Get(req.UserID).ClearSelection()
	return c.JSON(fiber.Map{"cleared": true})
}

// GetStats returns the selection summary computed over the live records.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	sess := h.Sessions.Get(userID)
	return c.JSON(fiber.Map{
		"stats":   sess.SelectionStats(),
		"sys_ids": sess.SelectedSysIDs(),
	})
}
