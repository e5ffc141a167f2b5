package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/onelab-dev/community-backend/internal/dto"
	"github.com/onelab-dev/community-backend/internal/services"
)

// respondError maps service errors onto the HTTP taxonomy: not-found (which
// deliberately covers ownership failures), invalid input, invalid session,
// and a generic 500 whose cause is only logged server-side.
func respondError(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrNewsletterNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})

	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNameAndURLRequired),
		errors.Is(err, services.ErrInvalidIndex),
		errors.Is(err, services.ErrTitleContentRequired),
		errors.Is(err, services.ErrEmailNameRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})

	case errors.Is(err, services.ErrInvalidSession):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})

	case errors.Is(err, services.ErrLoginDisabled):
		// The test login route does not exist in production builds.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Not found",
		})
	}

	slog.Error("request failed", "action", action, "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
