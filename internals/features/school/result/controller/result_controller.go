package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentrecords_backend/internals/constants"
	resultDTO "studentrecords_backend/internals/features/school/result/dto"
	resultModel "studentrecords_backend/internals/features/school/result/model"
	studentModel "studentrecords_backend/internals/features/school/student/model"
	userModel "studentrecords_backend/internals/features/users/user/model"
	helper "studentrecords_backend/internals/helpers"
)

var validate = validator.New()

const duplicateResultMsg = "This subject already has a result for this student in this semester and year"

type ResultController struct {
	DB *gorm.DB
}

func NewResultController(db *gorm.DB) *ResultController {
	return &ResultController{DB: db}
}

// POST /api/a/results
// The advisory duplicate check runs first for the friendlier error; the
// unique constraint is what actually guarantees at most one row per
// (student, year, semester, subject), and a raced violation is surfaced as
// the same duplicate error.
func (ctl *ResultController) CreateResult(c *fiber.Ctx) error {
	var req resultDTO.CreateResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var result resultModel.ResultModel
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
		if err := tx.Model(&resultModel.ResultModel{}).
			Where("user_id = ? AND year = ? AND semester = ? AND subject_id = ?",
				req.UserID, req.Year, req.Semester, req.SubjectID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check for duplicates")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, duplicateResultMsg)
		}

		subjectID := req.SubjectID
		result = resultModel.ResultModel{
			UserID:    user.ID,
			ProfileID: profile.ID,
			SubjectID: &subjectID,
			Year:      strings.TrimSpace(req.Year),
			Semester:  strings.TrimSpace(req.Semester),
			Grade:     req.Grade,
		}
		if err := tx.Create(&result).Error; err != nil {
			if helper.IsDuplicateKeyErr(err) {
				return fiber.NewError(fiber.StatusConflict, duplicateResultMsg)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create result")
		}
		return nil
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create result")
	}

	return helper.JsonCreated(c, "Result recorded", resultDTO.FromResultModel(&result))
}

// GET /api/u/results?year=&semester=&class=&search=
// Students only ever see their own rows; staff see everything. Output is
// grouped by year (descending) then semester (ascending), with distinct
// option lists for the filter dropdowns.
func (ctl *ResultController) ListResults(c *fiber.Ctx) error {
	role, ok := helper.GetRoleFromLocals(c)
	if !ok {
		return helper.JsonUnauthorized(c, "Authentication required")
	}

	q := ctl.DB.Model(&resultModel.ResultModel{}).
		Select("student_results.*").
		Joins("JOIN users ON users.id = student_results.user_id").
		Joins("LEFT JOIN student_profiles ON student_profiles.user_id = users.id")

	if role == constants.RoleStudent {
		userID, err := helper.GetUserIDFromLocals(c)
		if err != nil {
			return helper.JsonUnauthorized(c, "Authentication required")
		}
		q = q.Where("student_results.user_id = ?", userID)
	}

	if year := strings.TrimSpace(c.Query("year")); year != "" {
		q = q.Where("student_results.year = ?", year)
	}
	if semester := strings.TrimSpace(c.Query("semester")); semester != "" {
		q = q.Where("student_results.semester = ?", semester)
	}
	if class := strings.TrimSpace(c.Query("class")); class != "" {
		q = q.Where("student_profiles.class = ?", class)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		kw := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(student_profiles.roll) LIKE ?",
			kw, kw, kw, kw,
		)
	}

	var rows []resultModel.ResultModel
	if err := q.
		Preload("User").Preload("Profile").Preload("Subject").
		Order("student_results.year DESC, student_results.semester ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list results")
	}

	includes, err := ctl.filterOptions(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load filter options")
	}

	return helper.JsonListEx(c, "", resultDTO.GroupResults(rows), nil, includes)
}

// PUT /api/a/results/:id
func (ctl *ResultController) UpdateResult(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid result ID")
	}

	var req resultDTO.UpdateResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var result resultModel.ResultModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&result, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Result not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch result")
		}

		if req.SubjectID != nil {
			result.SubjectID = req.SubjectID
		}
		if req.Year != nil {
			result.Year = strings.TrimSpace(*req.Year)
		}
		if req.Semester != nil {
			result.Semester = strings.TrimSpace(*req.Semester)
		}
		if req.Grade != nil {
			result.Grade = *req.Grade
		}

		var cnt int64
		dup := tx.Model(&resultModel.ResultModel{}).
			Where("user_id = ? AND year = ? AND semester = ? AND id <> ?",
				result.UserID, result.Year, result.Semester, result.ID)
		if result.SubjectID != nil {
			dup = dup.Where("subject_id = ?", *result.SubjectID)
		} else {
			dup = dup.Where("subject_id IS NULL")
		}
		if err := dup.Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check for duplicates")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, duplicateResultMsg)
		}

		if err := tx.Save(&result).Error; err != nil {
			if helper.IsDuplicateKeyErr(err) {
				return fiber.NewError(fiber.StatusConflict, duplicateResultMsg)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update result")
		}
		return nil
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update result")
	}

	return helper.JsonUpdated(c, "Result updated", resultDTO.FromResultModel(&result))
}

// DELETE /api/a/results/:id
func (ctl *ResultController) DeleteResult(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid result ID")
	}

	var result resultModel.ResultModel
	if err := ctl.DB.First(&result, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Result not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch result")
	}

	if err := ctl.DB.Delete(&result).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete result")
	}
	return helper.JsonDeleted(c, "Result deleted", resultDTO.FromResultModel(&result))
}

// filterOptions builds the distinct dropdown lists shown next to the
// listing. These reads are separate queries; they need not be snapshot
// consistent with the main listing.
func (ctl *ResultController) filterOptions(c *fiber.Ctx) (fiber.Map, error) {
	var years []string
	if err := ctl.DB.Model(&resultModel.ResultModel{}).
		Distinct().Order("year DESC").Pluck("year", &years).Error; err != nil {
		return nil, err
	}

	var semesters []string
	if err := ctl.DB.Model(&resultModel.ResultModel{}).
		Distinct().Order("semester ASC").Pluck("semester", &semesters).Error; err != nil {
		return nil, err
	}

	var classes []string
	if err := ctl.DB.Model(&resultModel.ResultModel{}).
		Joins("LEFT JOIN student_profiles ON student_profiles.user_id = student_results.user_id").
		Where("student_profiles.class IS NOT NULL").
		Distinct().Pluck("student_profiles.class", &classes).Error; err != nil {
		return nil, err
	}

	return fiber.Map{
		"years":             years,
		"semesters":         semesters,
		"classes":           classes,
		"selected_year":     c.Query("year"),
		"selected_semester": c.Query("semester"),
		"selected_class":    c.Query("class"),
	}, nil
}
