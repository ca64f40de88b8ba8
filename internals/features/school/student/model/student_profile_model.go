package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "studentrecords_backend/internals/features/users/user/model"
)

// StudentProfileModel is the 1:1 student extension of an account: the class
// the student is placed in and the generated roll number. The roll is derived
// at assignment time and only changes together with the class through the
// explicit update path.
type StudentProfileModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	Class string `gorm:"type:varchar(10);not null" json:"class"`
	Roll  string `gorm:"type:varchar(20);not null;uniqueIndex" json:"roll"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *userModel.UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (StudentProfileModel) TableName() string { return "student_profiles" }

func (p *StudentProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ValidClass reports whether class is one of "0".."10".
func ValidClass(class string) bool {
	switch class {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10":
		return true
	default:
		return false
	}
}
