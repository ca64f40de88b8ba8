package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentrecords_backend/internals/constants"
	"studentrecords_backend/internals/testutils"
)

func TestRegisterTeacherGetsStaffPrivilege(t *testing.T) {
	app, _ := testutils.NewApp(t)

	status, body := testutils.DoJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"first_name": "Nina",
		"last_name":  "Hartono",
		"email":      "nina@example.com",
		"password":   "secret-pass-1",
		"role":       "Teacher",
	}, "")
	require.Equal(t, fiber.StatusCreated, status)

	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "Teacher", user["role"])
	assert.Equal(t, true, user["is_staff"])
	assert.Nil(t, data["assign_class_url"])
}

func TestRegisterStudentPointsAtClassAssignment(t *testing.T) {
	app, _ := testutils.NewApp(t)

	status, body := testutils.DoJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"first_name": "Budi",
		"last_name":  "Santoso",
		"email":      "budi@example.com",
		"password":   "secret-pass-1",
		"role":       "Student",
	}, "")
	require.Equal(t, fiber.StatusCreated, status)

	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "Student", user["role"])
	assert.Equal(t, false, user["is_staff"])
	assert.Equal(t, "/api/a/students/"+user["id"].(string)+"/class", data["assign_class_url"])
}

func TestRegisterRejectsDuplicateEmailAndUnknownRole(t *testing.T) {
	app, db := testutils.NewApp(t)
	testutils.SeedUser(t, db, "taken@example.com", constants.RoleStudent)

	status, body := testutils.DoJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"first_name": "Dup",
		"last_name":  "User",
		"email":      "taken@example.com",
		"password":   "secret-pass-1",
		"role":       "Student",
	}, "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Email already registered", body["message"])

	status, _ = testutils.DoJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"first_name": "Odd",
		"last_name":  "Role",
		"email":      "odd@example.com",
		"password":   "secret-pass-1",
		"role":       "Janitor",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestLoginIssuesTokenAndRejectsBadPassword(t *testing.T) {
	app, db := testutils.NewApp(t)
	user := testutils.SeedUser(t, db, "login@example.com", constants.RoleTeacher)

	status, body := testutils.DoJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    user.Email,
		"password": testutils.SeedPassword,
	}, "")
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])

	status, body = testutils.DoJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    user.Email,
		"password": "wrong-password",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestMeReturnsAuthenticatedAccount(t *testing.T) {
	app, db := testutils.NewApp(t)
	user := testutils.SeedUser(t, db, "me@example.com", constants.RoleAdmin)
	token := testutils.TokenFor(t, &user)

	status, body := testutils.DoJSON(t, app, fiber.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, user.Email, data["email"])
	assert.Equal(t, "Admin", data["role"])
}

func TestLogoutRevokesToken(t *testing.T) {
	app, db := testutils.NewApp(t)
	user := testutils.SeedUser(t, db, "logout@example.com", constants.RoleTeacher)
	token := testutils.TokenFor(t, &user)

	status, _ := testutils.DoJSON(t, app, fiber.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, fiber.StatusOK, status)

	status, body := testutils.DoJSON(t, app, fiber.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Token has been revoked", body["message"])
}

func TestAnonymousRequestGetsLoginRedirectEnvelope(t *testing.T) {
	app, _ := testutils.NewApp(t)

	status, body := testutils.DoJSON(t, app, fiber.MethodGet, "/api/auth/me", nil, "")
	require.Equal(t, fiber.StatusUnauthorized, status)

	extra := body["extra"].(map[string]any)
	assert.Equal(t, "/api/auth/login", extra["login_url"])
}
