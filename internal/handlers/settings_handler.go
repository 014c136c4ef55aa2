package handlers

import (
	"github.com/arzan03/newsroom/internal/services"
	"github.com/gofiber/fiber/v2"
)

// SettingsHandler serves /settings.
type SettingsHandler struct {
	settings *services.SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the current settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(settings)
}

// Update merges the body into the settings.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var request services.SettingsInput
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	settings, err := h.settings.Update(c.UserContext(), request)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(settings)
}
