package handlers

import (
	"github.com/arzan03/newsroom/internal/middleware"
	"github.com/arzan03/newsroom/internal/services"
	"github.com/gofiber/fiber/v2"
)

const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent"

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	auth  *services.AuthService
	reset *services.ResetService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *services.AuthService, reset *services.ResetService) *AuthHandler {
	return &AuthHandler{auth: auth, reset: reset}
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request services.RegisterInput
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	session, err := h.auth.Register(c.UserContext(), request)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	session, err := h.auth.Login(c.UserContext(), request.Email, request.Password)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(session)
}

// ForgotPassword answers with the same message whether or not the email is
// registered.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var request struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	if err := h.reset.RequestReset(c.UserContext(), request.Email); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": forgotPasswordMessage})
}

// ResetPassword redeems the token in the path.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var request struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	if err := h.reset.RedeemReset(c.UserContext(), c.Params("token"), request.Password); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password has been reset"})
}

// Me returns the caller's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, _ := middleware.CurrentUser(c)
	user, err := h.auth.Me(c.UserContext(), identity.ID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// ChangePassword replaces the caller's password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var request struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	identity, _ := middleware.CurrentUser(c)
	if err := h.auth.ChangePassword(c.UserContext(), identity.ID, request.CurrentPassword, request.NewPassword); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}
