package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentrecords_backend/internals/constants"
	attendanceDTO "studentrecords_backend/internals/features/school/attendance/dto"
	attendanceModel "studentrecords_backend/internals/features/school/attendance/model"
	studentModel "studentrecords_backend/internals/features/school/student/model"
	userModel "studentrecords_backend/internals/features/users/user/model"
	helper "studentrecords_backend/internals/helpers"
)

var validate = validator.New()

const duplicateAttendanceMsg = "Attendance for this student, subject and day is already recorded"

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

// POST /api/a/attendance
// One status per (profile, subject, day). A second submission for the same
// day fails with the duplicate error; it never overwrites silently.
func (ctl *AttendanceController) CreateAttendance(c *fiber.Ctx) error {
	var req attendanceDTO.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	status := attendanceModel.AttendanceStatus(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Status must be Present, Absent or Late")
	}

	day := attendanceModel.TruncateToDay(time.Now())
	if req.Day != "" {
		parsed, err := time.Parse("2006-01-02", req.Day)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Day must be formatted YYYY-MM-DD")
		}
		day = attendanceModel.TruncateToDay(parsed)
	}

	var row attendanceModel.AttendanceModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var user userModel.UserModel
		if err := tx.First(&user, "id = ? AND role = ?", req.UserID, constants.RoleStudent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
		}

		var profile studentModel.StudentProfileModel
		if err := tx.First(&profile, "user_id = ?", user.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Student has no class assignment yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch profile")
		}

		var cnt int64
		if err := tx.Model(&attendanceModel.AttendanceModel{}).
			Where("profile_id = ? AND subject_id = ? AND day = ?", profile.ID, req.SubjectID, day).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check for duplicates")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, duplicateAttendanceMsg)
		}

		subjectID := req.SubjectID
		row = attendanceModel.AttendanceModel{
			UserID:    user.ID,
			ProfileID: profile.ID,
			SubjectID: &subjectID,
			Status:    status,
			Day:       day,
		}
		if err := tx.Create(&row).Error; err != nil {
			if helper.IsDuplicateKeyErr(err) {
				return fiber.NewError(fiber.StatusConflict, duplicateAttendanceMsg)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record attendance")
		}
		return nil
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record attendance")
	}

	return helper.JsonCreated(c, "Attendance recorded", attendanceDTO.FromAttendanceModel(&row))
}

// GET /api/u/attendance?subject_id=&day=
// Students see their own rows only; staff see everything.
func (ctl *AttendanceController) ListAttendance(c *fiber.Ctx) error {
	role, ok := helper.GetRoleFromLocals(c)
	if !ok {
		return helper.JsonUnauthorized(c, "Authentication required")
	}

	q := ctl.DB.Model(&attendanceModel.AttendanceModel{})
	if role == constants.RoleStudent {
		userID, err := helper.GetUserIDFromLocals(c)
		if err != nil {
			return helper.JsonUnauthorized(c, "Authentication required")
		}
		q = q.Where("user_id = ?", userID)
	}

	if subjectID := strings.TrimSpace(c.Query("subject_id")); subjectID != "" {
		sid, err := uuid.Parse(subjectID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject ID")
		}
		q = q.Where("subject_id = ?", sid)
	}
	if dayStr := strings.TrimSpace(c.Query("day")); dayStr != "" {
		parsed, err := time.Parse("2006-01-02", dayStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Day must be formatted YYYY-MM-DD")
		}
		q = q.Where("day = ?", attendanceModel.TruncateToDay(parsed))
	}

	offset, limit := helper.PageParams(c)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list attendance")
	}

	var rows []attendanceModel.AttendanceModel
	if err := q.
		Preload("User").Preload("Profile").Preload("Subject").
		Order("day DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list attendance")
	}

	pagination := helper.BuildPaginationFromOffset(total, offset, limit)
	return helper.JsonList(c, "", attendanceDTO.FromAttendanceModels(rows), &pagination)
}

// POST /api/a/attendance/class-count
// Appends to the total-classes ledger. The class is snapshotted from the
// student's current profile; totals are always recomputed by summing rows.
func (ctl *AttendanceController) RecordClassCount(c *fiber.Ctx) error {
	var req attendanceDTO.RecordClassCountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var profile studentModel.StudentProfileModel
	if err := ctl.DB.First(&profile, "user_id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Student has no class assignment yet")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}

	subjectID := req.SubjectID
	entry := attendanceModel.TotalClassCountModel{
		UserID:    req.UserID,
		Class:     profile.Class,
		SubjectID: &subjectID,
		Count:     req.Count,
	}
	if err := ctl.DB.Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record class count")
	}
	return helper.JsonCreated(c, "Class count recorded", entry)
}

// GET /api/u/attendance/summary/:user_id
// Staff may look up any student; a student only their own summary.
func (ctl *AttendanceController) AttendanceSummary(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(strings.TrimSpace(c.Params("user_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if !helper.IsStaffFromLocals(c) {
		requesterID, err := helper.GetUserIDFromLocals(c)
		if err != nil {
			return helper.JsonUnauthorized(c, "Authentication required")
		}
		if requesterID != targetID {
			return helper.JsonError(c, fiber.StatusForbidden, "You may only view your own attendance")
		}
	}

	summary := attendanceDTO.AttendanceSummary{UserID: targetID}
	counts := []struct {
		status attendanceModel.AttendanceStatus
		dest   *int64
	}{
		{attendanceModel.StatusPresent, &summary.Present},
		{attendanceModel.StatusAbsent, &summary.Absent},
		{attendanceModel.StatusLate, &summary.Late},
	}
	for _, entry := range counts {
		if err := ctl.DB.Model(&attendanceModel.AttendanceModel{}).
			Where("user_id = ? AND status = ?", targetID, entry.status).
			Count(entry.dest).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to aggregate attendance")
		}
	}

	var total *int64
	if err := ctl.DB.Model(&attendanceModel.TotalClassCountModel{}).
		Where("user_id = ?", targetID).
		Select("SUM(count)").Scan(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sum class counts")
	}
	if total != nil {
		summary.TotalClasses = *total
	}

	return helper.JsonOK(c, "", summary)
}
