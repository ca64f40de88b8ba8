package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectModel "studentrecords_backend/internals/features/school/subject/model"
	userModel "studentrecords_backend/internals/features/users/user/model"
)

// TotalClassCountModel is an append-only ledger of classes held. A class
// occurring is a fact about the class, not about one student's presence, so
// totals live apart from the attendance rows: a student's total-classes figure
// is the sum of Count across their rows. Class is snapshotted at write time.
type TotalClassCountModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Class     string     `gorm:"type:varchar(10);not null" json:"class"`
	SubjectID *uuid.UUID `gorm:"type:uuid" json:"subject_id"`
	Count     int        `gorm:"not null" json:"count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User    *userModel.UserModel       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Subject *subjectModel.SubjectModel `gorm:"foreignKey:SubjectID;constraint:OnDelete:SET NULL" json:"subject,omitempty"`
}

func (TotalClassCountModel) TableName() string { return "total_class_counts" }

func (t *TotalClassCountModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
