package guard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/models"
)

const localsKey = "principal"

// Principal is the authenticated identity resolved once per request and
// passed explicitly into every service call.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// Store puts the principal into Fiber context locals.
func Store(c *fiber.Ctx, p Principal) {
	c.Locals(localsKey, p)
}

// Current extracts the principal placed by the auth middleware.
func Current(c *fiber.Ctx) (Principal, error) {
	p, ok := c.Locals(localsKey).(Principal)
	if !ok {
		return Principal{}, errors.New("no principal in context")
	}
	return p, nil
}
