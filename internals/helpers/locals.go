package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studentrecords_backend/internals/constants"
)

// GetUserIDFromLocals returns the authenticated user's ID as stored by the
// auth middleware.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Missing user ID in context")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	return id, nil
}

func GetRoleFromLocals(c *fiber.Ctx) (constants.Role, bool) {
	raw, ok := c.Locals("userRole").(string)
	if !ok {
		return "", false
	}
	role := constants.Role(raw)
	return role, role.Valid()
}

func IsStaffFromLocals(c *fiber.Ctx) bool {
	staff, ok := c.Locals("isStaff").(bool)
	return ok && staff
}
