package controller

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentrecords_backend/internals/constants"
	resultModel "studentrecords_backend/internals/features/school/result/model"
	studentDTO "studentrecords_backend/internals/features/school/student/dto"
	studentModel "studentrecords_backend/internals/features/school/student/model"
	"studentrecords_backend/internals/features/school/student/service"
	authService "studentrecords_backend/internals/features/users/auth/service"
	userDTO "studentrecords_backend/internals/features/users/user/dto"
	userModel "studentrecords_backend/internals/features/users/user/model"
	helper "studentrecords_backend/internals/helpers"
)

var validate = validator.New()

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

// POST /api/a/students
// Staff shortcut for onboarding: the account is forced into the Student role
// and gets a random initial password; class assignment follows separately.
func (ctl *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req studentDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hash, err := authService.HashPassword(uuid.NewString())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hash,
		Role:      constants.RoleStudent,
	}
	user.Normalize()

	if err := ctl.DB.Create(&user).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
	}

	return helper.JsonCreated(c, "Student created", fiber.Map{
		"user":             userDTO.FromUserModel(&user),
		"assign_class_url": "/api/a/students/" + user.ID.String() + "/class",
	})
}

// POST /api/a/students/:id/class
// First class assignment: generates the roll number atomically with the
// profile insert.
func (ctl *StudentController) AssignClass(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	var req studentDTO.AssignClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !studentModel.ValidClass(req.Class) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Class must be between 0 and 10")
	}

	var profile studentModel.StudentProfileModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var user userModel.UserModel
		if err := tx.First(&user, "id = ? AND role = ?", id, constants.RoleStudent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
		}

		var cnt int64
		if err := tx.Model(&studentModel.StudentProfileModel{}).
			Where("user_id = ?", user.ID).Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing profile")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Student is already assigned to a class")
		}

		roll, err := service.NextRoll(tx, time.Now().Year(), req.Class)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to reserve roll number")
		}

		profile = studentModel.StudentProfileModel{
			UserID: user.ID,
			Class:  req.Class,
			Roll:   roll,
		}
		if err := tx.Create(&profile).Error; err != nil {
			if helper.IsDuplicateKeyErr(err) {
				return fiber.NewError(fiber.StatusConflict, "Student is already assigned to a class")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create profile")
		}
		return nil
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to assign class")
	}

	return helper.JsonCreated(c, "Class assigned", studentDTO.FromProfileModel(&profile))
}

// PUT /api/a/students/:id/class
// Explicit update path: class and roll change together.
func (ctl *StudentController) UpdateClass(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	var req studentDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !studentModel.ValidClass(req.Class) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Class must be between 0 and 10")
	}

	var profile studentModel.StudentProfileModel
	if err := ctl.DB.First(&profile, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}

	profile.Class = req.Class
	profile.Roll = req.Roll
	if err := ctl.DB.Save(&profile).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Roll number already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return helper.JsonUpdated(c, "Class assignment updated", studentDTO.FromProfileModel(&profile))
}

// GET /api/a/students?search=&class=
func (ctl *StudentController) ListStudents(c *fiber.Ctx) error {
	q := ctl.DB.Model(&userModel.UserModel{}).
		Select("users.*").
		Where("users.role = ?", constants.RoleStudent).
		Joins("LEFT JOIN student_profiles ON student_profiles.user_id = users.id")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		kw := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(student_profiles.class) LIKE ? OR LOWER(student_profiles.roll) LIKE ?",
			kw, kw, kw, kw, kw,
		)
	}
	if class := strings.TrimSpace(c.Query("class")); class != "" {
		q = q.Where("student_profiles.class = ?", class)
	}

	offset, limit := helper.PageParams(c)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list students")
	}

	var users []userModel.UserModel
	if err := q.Order("users.created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list students")
	}

	students := make([]studentDTO.StudentResponse, 0, len(users))
	for i := range users {
		resp := studentDTO.StudentResponse{UserResponse: userDTO.FromUserModel(&users[i])}
		var profile studentModel.StudentProfileModel
		if err := ctl.DB.First(&profile, "user_id = ?", users[i].ID).Error; err == nil {
			p := studentDTO.FromProfileModel(&profile)
			resp.Profile = &p
		}
		students = append(students, resp)
	}

	classes, err := ctl.distinctClasses()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load class options")
	}

	pagination := helper.BuildPaginationFromOffset(total, offset, limit)
	return helper.JsonListEx(c, "", students, &pagination, fiber.Map{
		"class_options":  classes,
		"selected_class": c.Query("class"),
	})
}

// GET /api/a/students/:id
func (ctl *StudentController) GetStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "id = ? AND role = ?", id, constants.RoleStudent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	resp := studentDTO.StudentResponse{UserResponse: userDTO.FromUserModel(&user)}
	var profile studentModel.StudentProfileModel
	if err := ctl.DB.First(&profile, "user_id = ?", user.ID).Error; err == nil {
		p := studentDTO.FromProfileModel(&profile)
		resp.Profile = &p
	}
	return helper.JsonOK(c, "", resp)
}

// DELETE /api/a/students/:id
func (ctl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "id = ? AND role = ?", id, constants.RoleStudent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if err := ctl.DB.Delete(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete student")
	}
	return helper.JsonDeleted(c, "Student deleted", userDTO.FromUserModel(&user))
}

// GET /api/a/students/options?exclude_with_results=true
// Explicit option query for selection dropdowns. The exclusion set is a
// parameter, not a hidden side effect of building a form.
func (ctl *StudentController) StudentOptions(c *fiber.Ctx) error {
	excludeWithResults := strings.EqualFold(c.Query("exclude_with_results"), "true")

	options, err := StudentOptionList(ctl.DB, excludeWithResults)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student options")
	}
	return helper.JsonOK(c, "", options)
}

// StudentOptionList returns the selectable students, optionally excluding
// those that already have at least one result row.
func StudentOptionList(db *gorm.DB, excludeWithResults bool) ([]studentDTO.StudentOption, error) {
	q := db.Model(&userModel.UserModel{}).Where("role = ?", constants.RoleStudent)
	if excludeWithResults {
		sub := db.Model(&resultModel.ResultModel{}).Select("user_id")
		q = q.Where("id NOT IN (?)", sub)
	}

	var users []userModel.UserModel
	if err := q.Order("first_name ASC, last_name ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	options := make([]studentDTO.StudentOption, 0, len(users))
	for i := range users {
		opt := studentDTO.StudentOption{ID: users[i].ID, Name: users[i].FullName()}
		var profile studentModel.StudentProfileModel
		if err := db.First(&profile, "user_id = ?", users[i].ID).Error; err == nil {
			opt.Roll = profile.Roll
		}
		options = append(options, opt)
	}
	return options, nil
}

func (ctl *StudentController) distinctClasses() ([]string, error) {
	var classes []string
	if err := ctl.DB.Model(&studentModel.StudentProfileModel{}).
		Distinct().Pluck("class", &classes).Error; err != nil {
		return nil, err
	}
	sort.Slice(classes, func(i, j int) bool {
		a, _ := strconv.Atoi(classes[i])
		b, _ := strconv.Atoi(classes[j])
		return a < b
	})
	return classes, nil
}
