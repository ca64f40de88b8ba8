package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studentrecords_backend/internals/constants"
	userDTO "studentrecords_backend/internals/features/users/user/dto"
	userModel "studentrecords_backend/internals/features/users/user/model"
	helper "studentrecords_backend/internals/helpers"
)

var validate = validator.New()

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account with the requested role. Student accounts still
// need a class assignment afterwards; the response points the caller there.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user := userModel.UserModel{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      constants.ParseRole(req.Role),
	}
	if !user.Role.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown role")
	}
	user.Normalize()

	hash, err := HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	user.Password = hash

	if err := db.Create(&user).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	data := fiber.Map{"user": userDTO.FromUserModel(&user)}
	if user.Role == constants.RoleStudent {
		// staff must place the student into a class before records can be kept
		data["assign_class_url"] = "/api/a/students/" + user.ID.String() + "/class"
	}
	return helper.JsonCreated(c, "Account registered", data)
}

// Login verifies credentials and issues an access token.
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user userModel.UserModel
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonUnauthorized(c, "Invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up account")
	}
	if !CheckPassword(user.Password, req.Password) {
		return helper.JsonUnauthorized(c, "Invalid email or password")
	}

	token, err := GenerateToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonOK(c, "Logged in", fiber.Map{
		"access_token": token,
		"user":         userDTO.FromUserModel(&user),
	})
}

// Logout blacklists the presented token.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)
	if token == "" {
		return helper.JsonUnauthorized(c, "Authentication required")
	}
	if err := BlacklistToken(db, token); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log out")
	}
	return helper.JsonOK(c, "Logged out", nil)
}

// Me returns the authenticated account.
func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonUnauthorized(c, "Authentication required")
	}
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "", userDTO.FromUserModel(&user))
}
