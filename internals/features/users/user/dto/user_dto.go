package dto

import (
	"time"

	"github.com/google/uuid"

	"studentrecords_backend/internals/constants"
	"studentrecords_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Role      *string `json:"role"`
}

type UserResponse struct {
	ID        uuid.UUID      `json:"id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Role      constants.Role `json:"role"`
	IsStaff   bool           `json:"is_staff"`
	CreatedAt time.Time      `json:"created_at"`
}

func FromUserModel(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}

func FromUserModels(users []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromUserModel(&users[i]))
	}
	return out
}

// Apply copies the provided fields onto the model. Callers must Normalize()
// afterwards so role changes keep the staff flag consistent.
func (r *UpdateUserRequest) Apply(u *model.UserModel) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Role != nil {
		u.Role = constants.ParseRole(*r.Role)
	}
}
