package auth

import (
	"github.com/gofiber/fiber/v2"

	"studentrecords_backend/internals/constants"
	helper "studentrecords_backend/internals/helpers"
)

// OnlyStaff allows only requesters whose token carries staff privilege.
// Every management operation (accounts, profiles, results, attendance) sits
// behind this gate.
func OnlyStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helper.IsStaffFromLocals(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.ErrOnlyStaffCanAccess)
		}
		return c.Next()
	}
}

// OnlyRoles allows only the listed roles.
func OnlyRoles(message string, roles ...constants.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := helper.GetRoleFromLocals(c)
		if !ok {
			return helper.JsonUnauthorized(c, "Missing role information")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		if message == "" {
			message = "You are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, message)
	}
}
