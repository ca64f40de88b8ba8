// Package testutils provides the shared fixtures for package-level tests: an
// isolated in-memory database with the full schema, a wired fiber app, seeded
// accounts and signed tokens.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"studentrecords_backend/internals/configs"
	"studentrecords_backend/internals/constants"
	attendanceModel "studentrecords_backend/internals/features/school/attendance/model"
	resultModel "studentrecords_backend/internals/features/school/result/model"
	studentModel "studentrecords_backend/internals/features/school/student/model"
	subjectModel "studentrecords_backend/internals/features/school/subject/model"
	authModel "studentrecords_backend/internals/features/users/auth/model"
	authService "studentrecords_backend/internals/features/users/auth/service"
	userModel "studentrecords_backend/internals/features/users/user/model"
	routes "studentrecords_backend/internals/route"
)

// SeedPassword is the plaintext password of every account created by SeedUser.
const SeedPassword = "password123"

var dbSeq int64

// OpenTestDB opens an isolated in-memory database with the full schema
// migrated. The pool is pinned to one connection: that keeps the shared-cache
// handle alive for the whole test and serializes concurrent transactions the
// way row locks do on the production database.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	configs.JWTSecret = "test-secret"

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.TokenBlacklistModel{},
		&studentModel.StudentProfileModel{},
		&studentModel.ClassRollCounterModel{},
		&subjectModel.SubjectModel{},
		&resultModel.ResultModel{},
		&attendanceModel.AttendanceModel{},
		&attendanceModel.TotalClassCountModel{},
	))
	return db
}

// NewApp returns a fiber app with all routes mounted on a fresh test database.
func NewApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := OpenTestDB(t)
	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app, db
}

// SeedUser inserts a normalized account with SeedPassword as its password.
func SeedUser(t *testing.T, db *gorm.DB, email string, role constants.Role) userModel.UserModel {
	t.Helper()
	hash, err := authService.HashPassword(SeedPassword)
	require.NoError(t, err)

	user := userModel.UserModel{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  hash,
		Role:      role,
	}
	user.Normalize()
	require.NoError(t, db.Create(&user).Error)
	return user
}

// SeedProfile inserts a class assignment for the given user.
func SeedProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, class, roll string) studentModel.StudentProfileModel {
	t.Helper()
	profile := studentModel.StudentProfileModel{
		UserID: userID,
		Class:  class,
		Roll:   roll,
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}

// SeedSubject inserts a subject.
func SeedSubject(t *testing.T, db *gorm.DB, name string) subjectModel.SubjectModel {
	t.Helper()
	subject := subjectModel.SubjectModel{Name: name}
	require.NoError(t, db.Create(&subject).Error)
	return subject
}

// TokenFor signs an access token for the given account.
func TokenFor(t *testing.T, user *userModel.UserModel) string {
	t.Helper()
	token, err := authService.GenerateToken(user)
	require.NoError(t, err)
	return token
}

// DoJSON performs a request against the app and decodes the JSON envelope.
// An empty token leaves the request anonymous.
func DoJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return resp.StatusCode, envelope
}
