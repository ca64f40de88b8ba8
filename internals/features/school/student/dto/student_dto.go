package dto

import (
	"time"

	"github.com/google/uuid"

	"studentrecords_backend/internals/features/school/student/model"
	userDTO "studentrecords_backend/internals/features/users/user/dto"
)

type CreateStudentRequest struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
}

type AssignClassRequest struct {
	Class string `json:"class" validate:"required"`
}

type UpdateClassRequest struct {
	Class string `json:"class" validate:"required"`
	Roll  string `json:"roll" validate:"required,max=20"`
}

type StudentProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Class     string    `json:"class"`
	Roll      string    `json:"roll"`
	CreatedAt time.Time `json:"created_at"`
}

type StudentResponse struct {
	userDTO.UserResponse
	Profile *StudentProfileResponse `json:"profile,omitempty"`
}

func FromProfileModel(p *model.StudentProfileModel) StudentProfileResponse {
	return StudentProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Class:     p.Class,
		Roll:      p.Roll,
		CreatedAt: p.CreatedAt,
	}
}

// StudentOption is the minimal entry for selection dropdowns.
type StudentOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Roll string    `json:"roll,omitempty"`
}
