package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/virtualflux/mht-backend/internal/apperr"
	"github.com/virtualflux/mht-backend/internal/models"
	"github.com/virtualflux/mht-backend/internal/services"
)

// AuthHandler handles sign-up, verification and onboarding requests.
type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp creates a user for the email and sends a verification code.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req models.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.BadRequest("Invalid request body"), "")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return respondError(c, apperr.BadRequest("A valid email is required"), "")
	}

	user, err := h.auth.SignUp(req.Email)
	if err != nil {
		return respondError(c, err, "Failed to create user")
	}

	return respond(c, fiber.StatusCreated, "User created successfully!", user)
}

// VerifyEmail consumes the OTP and stamps the user's email as verified.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req models.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.BadRequest("Invalid request body"), "")
	}

	if req.Email == "" || req.Otp == "" {
		return respondError(c, apperr.BadRequest("Email and otp are required"), "")
	}

	user, err := h.auth.VerifyEmail(req.Email, req.Otp)
	if err != nil {
		return respondError(c, err, "Failed to verify email")
	}

	return respond(c, fiber.StatusOK, "Email verified successfully!", user)
}

// CheckPhone reports whether a phone number is still available.
func (h *AuthHandler) CheckPhone(c *fiber.Ctx) error {
	var req models.CheckPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.BadRequest("Invalid request body"), "")
	}

	if strings.TrimSpace(req.PhoneNumber) == "" {
		return respondError(c, apperr.BadRequest("phoneNumber is required"), "")
	}

	available, err := h.auth.PhoneAvailable(req.PhoneNumber)
	if err != nil {
		return respondError(c, err, "Failed to check phone number")
	}

	return respond(c, fiber.StatusOK, "Phone number checked", fiber.Map{
		"available": available,
	})
}

// Onboarding merges profile fields into a verified user.
func (h *AuthHandler) Onboarding(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return respondError(c, apperr.BadRequest("User ID is required"), "")
	}

	var req models.OnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.BadRequest("Invalid request body"), "")
	}

	user, err := h.auth.Onboarding(userID, &req)
	if err != nil {
		return respondError(c, err, "Onboarding failed")
	}

	return respond(c, fiber.StatusOK, "User onboarded successfully!", user)
}

// Logout clears the access cookie. No server-side session exists.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
	})
	return respond(c, fiber.StatusOK, "User logged out!", nil)
}
