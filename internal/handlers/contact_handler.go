package handlers

import (
	"github.com/arzan03/newsroom/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler serves the public contact form.
type ContactHandler struct {
	contacts *services.ContactService
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var request services.ContactInput
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	if _, err := h.contacts.Submit(c.UserContext(), request); err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Thanks for reaching out, we will get back to you soon"})
}
