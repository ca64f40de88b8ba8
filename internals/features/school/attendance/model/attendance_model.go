package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "studentrecords_backend/internals/features/school/student/model"
	subjectModel "studentrecords_backend/internals/features/school/subject/model"
	userModel "studentrecords_backend/internals/features/users/user/model"
)

// AttendanceStatus is the closed set of per-day attendance states.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusLate    AttendanceStatus = "Late"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	default:
		return false
	}
}

// AttendanceModel records at most one status per (profile, subject, day).
// The unique index backs the advisory duplicate check in the controller.
type AttendanceModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	ProfileID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_profile_subject_day" json:"profile_id"`
	SubjectID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_attendance_profile_subject_day" json:"subject_id"`

	Status AttendanceStatus `gorm:"type:varchar(10);not null" json:"status"`
	Day    time.Time        `gorm:"type:date;not null;uniqueIndex:uq_attendance_profile_subject_day" json:"day"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User    *userModel.UserModel              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Profile *studentModel.StudentProfileModel `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Subject *subjectModel.SubjectModel        `gorm:"foreignKey:SubjectID;constraint:OnDelete:SET NULL" json:"subject,omitempty"`
}

func (AttendanceModel) TableName() string { return "student_attendance" }

func (a *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TruncateToDay normalizes a timestamp to its calendar date so the composite
// key compares equal for any two submissions on the same day.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
