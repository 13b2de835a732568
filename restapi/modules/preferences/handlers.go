// Package preferences provides the REST handlers for theme preferences.
package preferences

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/storeops/sum-backend/database"
	"github.com/storeops/sum-backend/internal/cache"
	"github.com/storeops/sum-backend/model"
)

// Handler carries the dependencies for the preference endpoints.
type Handler struct {
	DB      database.DBConnection
	Catalog *model.ThemeCatalog
	Cache   *cache.ThemeCache
}

// GetThemes lists the catalog so the settings page can render choices.
func (h *Handler) GetThemes(c *fiber.Ctx) error {
	return c.JSON(h.Catalog)
}

// GetTheme resolves the user's theme: cache first, then the stored
// preference, then the catalog default.
func (h *Handler) GetTheme(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	if theme, ok := h.Cache.Get(userID); ok {
		return c.JSON(fiber.Map{"theme": theme, "cached": true})
	}

	theme, _ := h.Catalog.Lookup(h.Catalog.Default)

	pref, err := database.GetThemePreference(c.Context(), h.DB, userID)
	if err != nil {
		// Fall back to the default rather than failing the page load
		log.Printf("Failed to read theme preference for %s: %v", userID, err)
	} else if pref != nil {
		if stored, ok := h.Catalog.Lookup(pref.ThemeName); ok {
			theme = stored
		}
	}

	h.Cache.Put(userID, theme)
	return c.JSON(fiber.Map{"theme": theme, "cached": false})
}

type themeRequest struct {
	UserID    string `json:"user_id"`
	ThemeName string `json:"theme_name"`
}

// PutTheme stores the user's theme choice and drops the cached resolution.
func (h *Handler) PutTheme(c *fiber.Ctx) error {
	var req themeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	theme, ok := h.Catalog.Lookup(req.ThemeName)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown theme: " + req.ThemeName})
	}

	pref := model.ThemePreference{UserID: req.UserID, ThemeName: theme.Name}
	if err := database.UpsertThemePreference(c.Context(), h.DB, pref); err != nil {
		log.Printf("Failed to store theme preference for %s: %v", req.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store preference"})
	}

	h.Cache.Invalidate(req.UserID)
	return c.JSON(model.ServerResponse{Success: true, Message: "theme updated"})
}
