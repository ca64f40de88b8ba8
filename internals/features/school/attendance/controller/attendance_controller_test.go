package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studentrecords_backend/internals/constants"
	userModel "studentrecords_backend/internals/features/users/user/model"
	"studentrecords_backend/internals/testutils"
)

type attendanceFixture struct {
	app     *fiber.App
	db      *gorm.DB
	token   string
	student userModel.UserModel
	subject string
}

func newAttendanceFixture(t *testing.T) attendanceFixture {
	app, db := testutils.NewApp(t)
	staff := testutils.SeedUser(t, db, "teacher@example.com", constants.RoleTeacher)
	student := testutils.SeedUser(t, db, "student@example.com", constants.RoleStudent)
	testutils.SeedProfile(t, db, student.ID, "5", "202451")
	subject := testutils.SeedSubject(t, db, "Physics")

	return attendanceFixture{
		app:     app,
		db:      db,
		token:   testutils.TokenFor(t, &staff),
		student: student,
		subject: subject.ID.String(),
	}
}

func (fx attendanceFixture) record(t *testing.T, status, day string) (int, map[string]any) {
	t.Helper()
	return testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/attendance/", fiber.Map{
		"user_id":    fx.student.ID.String(),
		"subject_id": fx.subject,
		"status":     status,
		"day":        day,
	}, fx.token)
}

func TestCreateAttendanceOncePerDay(t *testing.T) {
	fx := newAttendanceFixture(t)

	status, body := fx.record(t, "Present", "2024-03-01")
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "2024-03-01", body["data"].(map[string]any)["day"])

	// a second mark for the same day is rejected, not overwritten
	status, body = fx.record(t, "Absent", "2024-03-01")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t,
		"Attendance for this student, subject and day is already recorded",
		body["message"])

	status, _ = fx.record(t, "Absent", "2024-03-02")
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestCreateAttendanceValidatesStatusAndDay(t *testing.T) {
	fx := newAttendanceFixture(t)

	status, body := fx.record(t, "Vanished", "2024-03-01")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Status must be Present, Absent or Late", body["message"])

	status, _ = fx.record(t, "Present", "01-03-2024")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCreateAttendanceRequiresClassAssignment(t *testing.T) {
	fx := newAttendanceFixture(t)
	unassigned := testutils.SeedUser(t, fx.db, "noclass@example.com", constants.RoleStudent)

	status, body := testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/attendance/", fiber.Map{
		"user_id":    unassigned.ID.String(),
		"subject_id": fx.subject,
		"status":     "Present",
		"day":        "2024-03-01",
	}, fx.token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Student has no class assignment yet", body["message"])
}

func TestAttendanceSummaryAggregatesLedger(t *testing.T) {
	fx := newAttendanceFixture(t)

	for _, entry := range []struct{ status, day string }{
		{"Present", "2024-03-01"},
		{"Present", "2024-03-02"},
		{"Late", "2024-03-03"},
		{"Absent", "2024-03-04"},
	} {
		status, _ := fx.record(t, entry.status, entry.day)
		require.Equal(t, fiber.StatusCreated, status)
	}

	// two ledger entries sum up, they never overwrite
	for _, count := range []int{10, 5} {
		status, _ := testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/attendance/class-count", fiber.Map{
			"user_id":    fx.student.ID.String(),
			"subject_id": fx.subject,
			"count":      count,
		}, fx.token)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, body := testutils.DoJSON(t, fx.app, fiber.MethodGet,
		"/api/u/attendance/summary/"+fx.student.ID.String(), nil, fx.token)
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(2), data["present"])
	assert.Equal(t, float64(1), data["late"])
	assert.Equal(t, float64(1), data["absent"])
	assert.Equal(t, float64(15), data["total_classes"])
}

func TestAttendanceSummaryStudentSelfOnly(t *testing.T) {
	fx := newAttendanceFixture(t)
	other := testutils.SeedUser(t, fx.db, "other@example.com", constants.RoleStudent)
	studentToken := testutils.TokenFor(t, &fx.student)

	status, _ := testutils.DoJSON(t, fx.app, fiber.MethodGet,
		"/api/u/attendance/summary/"+other.ID.String(), nil, studentToken)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = testutils.DoJSON(t, fx.app, fiber.MethodGet,
		"/api/u/attendance/summary/"+fx.student.ID.String(), nil, studentToken)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestListAttendanceStudentSeesOwnRowsOnly(t *testing.T) {
	fx := newAttendanceFixture(t)
	other := testutils.SeedUser(t, fx.db, "other@example.com", constants.RoleStudent)
	testutils.SeedProfile(t, fx.db, other.ID, "5", "202452")

	status, _ := fx.record(t, "Present", "2024-03-01")
	require.Equal(t, fiber.StatusCreated, status)
	status, _ = testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/attendance/", fiber.Map{
		"user_id":    other.ID.String(),
		"subject_id": fx.subject,
		"status":     "Late",
		"day":        "2024-03-01",
	}, fx.token)
	require.Equal(t, fiber.StatusCreated, status)

	studentToken := testutils.TokenFor(t, &fx.student)
	status, body := testutils.DoJSON(t, fx.app, fiber.MethodGet, "/api/u/attendance", nil, studentToken)
	require.Equal(t, fiber.StatusOK, status)

	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, fx.student.ID.String(), rows[0].(map[string]any)["user_id"])

	// staff see everything
	status, body = testutils.DoJSON(t, fx.app, fiber.MethodGet, "/api/u/attendance", nil, fx.token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"].([]any), 2)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["total"])
}
