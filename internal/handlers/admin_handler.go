package handlers

import (
	"github.com/arzan03/newsroom/internal/middleware"
	"github.com/arzan03/newsroom/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the Admin-only user and inbox endpoints.
type AdminHandler struct {
	users    *services.UserService
	contacts *services.ContactService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(users *services.UserService, contacts *services.ContactService) *AdminHandler {
	return &AdminHandler{users: users, contacts: contacts}
}

// ListUsers returns every account. Password material is never serialized.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// ToggleSuspend flips the suspended flag of the user in the path.
func (h *AdminHandler) ToggleSuspend(c *fiber.Ctx) error {
	identity, _ := middleware.CurrentUser(c)
	user, err := h.users.ToggleSuspended(c.UserContext(), identity.ID, c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	msg := "User reinstated"
	if user.Suspended {
		msg = "User suspended"
	}
	return c.JSON(fiber.Map{"message": msg, "user": user})
}

// DeleteUser removes the user in the path.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	identity, _ := middleware.CurrentUser(c)
	if err := h.users.Delete(c.UserContext(), identity.ID, c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// ListContactMessages returns the contact inbox, newest first.
func (h *AdminHandler) ListContactMessages(c *fiber.Ctx) error {
	messages, err := h.contacts.List(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}
