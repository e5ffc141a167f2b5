package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/onelab-dev/community-backend/internal/config"
	"github.com/onelab-dev/community-backend/internal/dto"
	"github.com/onelab-dev/community-backend/internal/guard"
)

// AdminRequired allows the request through when the principal's DB role is
// ADMIN or the email is on the config admin list. Must run after
// Authenticated.
func AdminRequired(cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		p, err := guard.Current(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if p.IsAdmin() || contains(adminEmails, p.Email) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Forbidden: Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
