package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/onelab-dev/community-backend/internal/dto"
	"github.com/onelab-dev/community-backend/internal/guard"
	"github.com/onelab-dev/community-backend/internal/models"
	"gorm.io/gorm"
)

// Authenticated resolves the JWT's email claim to a user row and stores the
// resulting principal in context. Must run after JWTProtected. The per-request
// user lookup keeps role changes effective without re-issuing tokens.
func Authenticated(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := emailClaim(c)
		if err != nil || email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		guard.Store(c, guard.Principal{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		})
		return c.Next()
	}
}

func emailClaim(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return "", errors.New("invalid token in context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	email, _ := claims["email"].(string)
	return email, nil
}
