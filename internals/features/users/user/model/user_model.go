package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentrecords_backend/internals/constants"
)

// UserModel is the root identity entity. Profiles, results, attendance and
// class-count rows all cascade from it.
type UserModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string         `gorm:"size:150;not null" json:"first_name"`
	LastName  string         `gorm:"size:150;not null" json:"last_name"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      constants.Role `gorm:"type:varchar(20);not null;default:'Student'" json:"role"`

	IsStaff     bool `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool `gorm:"not null;default:false" json:"is_superuser"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Normalize enforces the account invariants and must run before every write:
// a superuser is always an Admin with staff privilege, whatever the form said.
// This is an explicit step in the write paths, not a persistence hook.
func (u *UserModel) Normalize() {
	if u.Role == "" {
		u.Role = constants.RoleStudent
	}
	if u.IsSuperuser {
		u.Role = constants.RoleAdmin
		u.IsStaff = true
		return
	}
	u.IsStaff = u.Role.Staff()
}

func (u *UserModel) FullName() string {
	return u.FirstName + " " + u.LastName
}
