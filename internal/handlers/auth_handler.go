package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/onelab-dev/community-backend/internal/dto"
	"github.com/onelab-dev/community-backend/internal/guard"
	"github.com/onelab-dev/community-backend/internal/services"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// TestLogin exchanges an email for a token pair without OAuth.
// Disabled in production; real sign-in goes through the OAuth frontend.
func (h *AuthHandler) TestLogin(c *fiber.Ctx) error {
	var req dto.TestLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.service.TestLogin(&req)
	if err != nil {
		return respondError(c, "test login", err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.service.Refresh(&req)
	if err != nil {
		return respondError(c, "refresh session", err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.service.Logout(&req); err != nil {
		return respondError(c, "logout", err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, err := guard.Current(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.service.Me(p.ID)
	if err != nil {
		return respondError(c, "get current user", err)
	}
	return c.JSON(fiber.Map{"user": user})
}
