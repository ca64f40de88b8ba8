package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "studentrecords_backend/internals/features/school/student/model"
	subjectModel "studentrecords_backend/internals/features/school/subject/model"
	userModel "studentrecords_backend/internals/features/users/user/model"
)

// ResultModel records one grade per (student, year, semester, subject).
// The composite unique index is the source of truth for that invariant; the
// controller's advisory check only produces the friendlier error first.
type ResultModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_results_user_year_semester_subject" json:"user_id"`
	ProfileID uuid.UUID  `gorm:"type:uuid;not null" json:"profile_id"`
	SubjectID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_results_user_year_semester_subject" json:"subject_id"`

	Year     string  `gorm:"size:50;not null;uniqueIndex:uq_results_user_year_semester_subject" json:"year"`
	Semester string  `gorm:"size:50;not null;uniqueIndex:uq_results_user_year_semester_subject" json:"semester"`
	Grade    float64 `gorm:"not null" json:"grade"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User    *userModel.UserModel              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Profile *studentModel.StudentProfileModel `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Subject *subjectModel.SubjectModel        `gorm:"foreignKey:SubjectID;constraint:OnDelete:SET NULL" json:"subject,omitempty"`
}

func (ResultModel) TableName() string { return "student_results" }

func (r *ResultModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
