package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectDTO "studentrecords_backend/internals/features/school/subject/dto"
	subjectModel "studentrecords_backend/internals/features/school/subject/model"
	helper "studentrecords_backend/internals/helpers"
)

var validate = validator.New()

// SubjectController manages the subject catalog. Names are unique; deleting
// a subject nulls references from results and attendance instead of
// cascading.
type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

// POST /api/a/subjects
func (ctl *SubjectController) CreateSubject(c *fiber.Ctx) error {
	var req subjectDTO.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	subject := subjectModel.SubjectModel{Name: req.Name}
	if err := ctl.DB.Create(&subject).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Subject already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create subject")
	}
	return helper.JsonCreated(c, "Subject created", subjectDTO.FromSubjectModel(&subject))
}

// GET /api/a/subjects
func (ctl *SubjectController) ListSubjects(c *fiber.Ctx) error {
	var subjects []subjectModel.SubjectModel
	if err := ctl.DB.Order("name ASC").Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list subjects")
	}
	return helper.JsonList(c, "", subjectDTO.FromSubjectModels(subjects), nil)
}

// DELETE /api/a/subjects/:id
func (ctl *SubjectController) DeleteSubject(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject ID")
	}

	var subject subjectModel.SubjectModel
	if err := ctl.DB.First(&subject, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subject")
	}

	if err := ctl.DB.Delete(&subject).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete subject")
	}
	return helper.JsonDeleted(c, "Subject deleted", subjectDTO.FromSubjectModel(&subject))
}
