package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentrecords_backend/internals/constants"
	authService "studentrecords_backend/internals/features/users/auth/service"
	userDTO "studentrecords_backend/internals/features/users/user/dto"
	userModel "studentrecords_backend/internals/features/users/user/model"
	helper "studentrecords_backend/internals/helpers"
)

var validate = validator.New()

// UserController covers staff management of accounts. Superuser accounts are
// never listed, updated or deleted through this surface.
type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// POST /api/a/users
// Staff-side account creation with an explicit role. Student accounts still
// need a class assignment; the response points there.
func (ctl *UserController) CreateUser(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	role := constants.ParseRole(req.Role)
	if !role.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown role")
	}

	hash, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hash,
		Role:      role,
	}
	user.Normalize()

	if err := ctl.DB.Create(&user).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	data := fiber.Map{"user": userDTO.FromUserModel(&user)}
	if user.Role == constants.RoleStudent {
		data["assign_class_url"] = "/api/a/students/" + user.ID.String() + "/class"
	}
	return helper.JsonCreated(c, "User created", data)
}

// GET /api/a/users?search=
func (ctl *UserController) ListUsers(c *fiber.Ctx) error {
	q := ctl.DB.Model(&userModel.UserModel{}).Where("is_superuser = ?", false)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		kw := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(role) LIKE ?",
			kw, kw, kw, kw,
		)
	}

	offset, limit := helper.PageParams(c)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list users")
	}

	var users []userModel.UserModel
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list users")
	}

	pagination := helper.BuildPaginationFromOffset(total, offset, limit)
	return helper.JsonList(c, "", userDTO.FromUserModels(users), &pagination)
}

// GET /api/a/users/:id
func (ctl *UserController) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	return helper.JsonOK(c, "", userDTO.FromUserModel(&user))
}

// PUT /api/a/users/:id
func (ctl *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Role != nil && !constants.ParseRole(*req.Role).Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown role")
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "id = ? AND is_superuser = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	req.Apply(&user)
	user.Normalize()

	if err := ctl.DB.Save(&user).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	data := fiber.Map{"user": userDTO.FromUserModel(&user)}
	if user.Role == constants.RoleStudent {
		data["assign_class_url"] = "/api/a/students/" + user.ID.String() + "/class"
	}
	return helper.JsonUpdated(c, "User updated", data)
}

// DELETE /api/a/users/:id
func (ctl *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "id = ? AND is_superuser = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	// dependents (profile, results, attendance, class counts) cascade
	if err := ctl.DB.Delete(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	return helper.JsonDeleted(c, "User deleted", userDTO.FromUserModel(&user))
}
