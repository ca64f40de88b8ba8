package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studentrecords_backend/internals/constants"
	resultModel "studentrecords_backend/internals/features/school/result/model"
	userModel "studentrecords_backend/internals/features/users/user/model"
	"studentrecords_backend/internals/testutils"
)

type resultFixture struct {
	app     *fiber.App
	db      *gorm.DB
	token   string
	student userModel.UserModel
	subject string
}

func newResultFixture(t *testing.T) resultFixture {
	app, db := testutils.NewApp(t)
	staff := testutils.SeedUser(t, db, "teacher@example.com", constants.RoleTeacher)
	student := testutils.SeedUser(t, db, "student@example.com", constants.RoleStudent)
	testutils.SeedProfile(t, db, student.ID, "5", "202451")
	subject := testutils.SeedSubject(t, db, "Mathematics")

	return resultFixture{
		app:     app,
		db:      db,
		token:   testutils.TokenFor(t, &staff),
		student: student,
		subject: subject.ID.String(),
	}
}

func TestCreateResultRecordsGrade(t *testing.T) {
	fx := newResultFixture(t)

	status, body := testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/results/", fiber.Map{
		"user_id":    fx.student.ID.String(),
		"subject_id": fx.subject,
		"year":       "2024",
		"semester":   "1",
		"grade":      3.8,
	}, fx.token)
	require.Equal(t, fiber.StatusCreated, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, "2024", data["year"])
	assert.Equal(t, "1", data["semester"])
	assert.Equal(t, 3.8, data["grade"])
}

func TestCreateResultRejectsDuplicateAndKeepsOriginalGrade(t *testing.T) {
	fx := newResultFixture(t)

	payload := fiber.Map{
		"user_id":    fx.student.ID.String(),
		"subject_id": fx.subject,
		"year":       "2024",
		"semester":   "1",
		"grade":      3.8,
	}
	status, _ := testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/results/", payload, fx.token)
	require.Equal(t, fiber.StatusCreated, status)

	payload["grade"] = 2.0
	status, body := testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/results/", payload, fx.token)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t,
		"This subject already has a result for this student in this semester and year",
		body["message"])

	var rows []resultModel.ResultModel
	require.NoError(t, fx.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 3.8, rows[0].Grade)
}

func TestCreateResultRequiresClassAssignment(t *testing.T) {
	fx := newResultFixture(t)
	unassigned := testutils.SeedUser(t, fx.db, "noclass@example.com", constants.RoleStudent)

	status, body := testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/results/", fiber.Map{
		"user_id":    unassigned.ID.String(),
		"subject_id": fx.subject,
		"year":       "2024",
		"semester":   "1",
		"grade":      3.0,
	}, fx.token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Student has no class assignment yet", body["message"])
}

func TestListResultsGroupsYearDescSemesterAsc(t *testing.T) {
	fx := newResultFixture(t)

	for _, entry := range []struct {
		year, semester string
		grade          float64
	}{
		{"2023", "2", 3.0},
		{"2024", "2", 3.6},
		{"2023", "1", 2.9},
		{"2024", "1", 3.8},
	} {
		status, _ := testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/results/", fiber.Map{
			"user_id":    fx.student.ID.String(),
			"subject_id": fx.subject,
			"year":       entry.year,
			"semester":   entry.semester,
			"grade":      entry.grade,
		}, fx.token)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, body := testutils.DoJSON(t, fx.app, fiber.MethodGet, "/api/u/results", nil, fx.token)
	require.Equal(t, fiber.StatusOK, status)

	groups := body["data"].([]any)
	require.Len(t, groups, 2)

	first := groups[0].(map[string]any)
	assert.Equal(t, "2024", first["year"])
	semesters := first["semesters"].([]any)
	require.Len(t, semesters, 2)
	assert.Equal(t, "1", semesters[0].(map[string]any)["semester"])
	assert.Equal(t, "2", semesters[1].(map[string]any)["semester"])

	second := groups[1].(map[string]any)
	assert.Equal(t, "2023", second["year"])

	includes := body["includes"].(map[string]any)
	assert.Equal(t, []any{"2024", "2023"}, includes["years"].([]any))
	assert.Equal(t, []any{"1", "2"}, includes["semesters"].([]any))
}

func TestStudentOnlySeesOwnResults(t *testing.T) {
	fx := newResultFixture(t)
	other := testutils.SeedUser(t, fx.db, "other@example.com", constants.RoleStudent)
	testutils.SeedProfile(t, fx.db, other.ID, "5", "202452")

	for _, id := range []string{fx.student.ID.String(), other.ID.String()} {
		status, _ := testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/results/", fiber.Map{
			"user_id":    id,
			"subject_id": fx.subject,
			"year":       "2024",
			"semester":   "1",
			"grade":      3.0,
		}, fx.token)
		require.Equal(t, fiber.StatusCreated, status)
	}

	studentToken := testutils.TokenFor(t, &fx.student)
	status, body := testutils.DoJSON(t, fx.app, fiber.MethodGet, "/api/u/results", nil, studentToken)
	require.Equal(t, fiber.StatusOK, status)

	groups := body["data"].([]any)
	require.Len(t, groups, 1)
	semesters := groups[0].(map[string]any)["semesters"].([]any)
	results := semesters[0].(map[string]any)["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, fx.student.ID.String(), results[0].(map[string]any)["user_id"])
}

func TestListResultsRequiresAuthentication(t *testing.T) {
	fx := newResultFixture(t)

	status, body := testutils.DoJSON(t, fx.app, fiber.MethodGet, "/api/u/results", nil, "")
	require.Equal(t, fiber.StatusUnauthorized, status)
	extra := body["extra"].(map[string]any)
	assert.Equal(t, "/api/auth/login", extra["login_url"])
}

func TestUpdateResultRejectsCollidingTarget(t *testing.T) {
	fx := newResultFixture(t)

	var firstID string
	for _, semester := range []string{"1", "2"} {
		status, body := testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/results/", fiber.Map{
			"user_id":    fx.student.ID.String(),
			"subject_id": fx.subject,
			"year":       "2024",
			"semester":   semester,
			"grade":      3.0,
		}, fx.token)
		require.Equal(t, fiber.StatusCreated, status)
		if semester == "1" {
			firstID = body["data"].(map[string]any)["id"].(string)
		}
	}

	// moving semester 1 onto semester 2 would collide
	status, _ := testutils.DoJSON(t, fx.app, fiber.MethodPut, "/api/a/results/"+firstID,
		fiber.Map{"semester": "2"}, fx.token)
	assert.Equal(t, fiber.StatusConflict, status)

	// a plain grade change is fine
	status, body := testutils.DoJSON(t, fx.app, fiber.MethodPut, "/api/a/results/"+firstID,
		fiber.Map{"grade": 4.0}, fx.token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 4.0, body["data"].(map[string]any)["grade"])
}

func TestDeleteResult(t *testing.T) {
	fx := newResultFixture(t)

	status, body := testutils.DoJSON(t, fx.app, fiber.MethodPost, "/api/a/results/", fiber.Map{
		"user_id":    fx.student.ID.String(),
		"subject_id": fx.subject,
		"year":       "2024",
		"semester":   "1",
		"grade":      3.0,
	}, fx.token)
	require.Equal(t, fiber.StatusCreated, status)
	id := body["data"].(map[string]any)["id"].(string)

	status, _ = testutils.DoJSON(t, fx.app, fiber.MethodDelete, "/api/a/results/"+id, nil, fx.token)
	require.Equal(t, fiber.StatusOK, status)

	var cnt int64
	require.NoError(t, fx.db.Model(&resultModel.ResultModel{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}
