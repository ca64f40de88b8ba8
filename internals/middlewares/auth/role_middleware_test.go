package auth_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentrecords_backend/internals/constants"
	"studentrecords_backend/internals/testutils"
)

// The staff gate sits in front of every management route; a student account
// never reaches a handler there.
func TestStaffGateBlocksStudents(t *testing.T) {
	app, db := testutils.NewApp(t)
	student := testutils.SeedUser(t, db, "student@example.com", constants.RoleStudent)
	token := testutils.TokenFor(t, &student)

	status, body := testutils.DoJSON(t, app, fiber.MethodGet, "/api/a/users/", nil, token)
	require.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, constants.ErrOnlyStaffCanAccess, body["message"])
}

func TestStaffGateAdmitsEveryStaffRole(t *testing.T) {
	app, db := testutils.NewApp(t)

	for i, role := range constants.StaffRoles {
		user := testutils.SeedUser(t, db, string(rune('a'+i))+"-staff@example.com", role)
		token := testutils.TokenFor(t, &user)

		status, _ := testutils.DoJSON(t, app, fiber.MethodGet, "/api/a/users/", nil, token)
		assert.Equal(t, fiber.StatusOK, status, "role %s", role)
	}
}

func TestStaffGateRequiresAuthenticationFirst(t *testing.T) {
	app, _ := testutils.NewApp(t)

	status, body := testutils.DoJSON(t, app, fiber.MethodGet, "/api/a/users/", nil, "")
	require.Equal(t, fiber.StatusUnauthorized, status)

	extra := body["extra"].(map[string]any)
	assert.Equal(t, "/api/auth/login", extra["login_url"])
}
