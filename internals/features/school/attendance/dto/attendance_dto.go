package dto

import (
	"time"

	"github.com/google/uuid"

	"studentrecords_backend/internals/features/school/attendance/model"
)

type CreateAttendanceRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Status    string    `json:"status" validate:"required"`
	Day       string    `json:"day" validate:"omitempty,datetime=2006-01-02"` // defaults to today
}

type RecordClassCountRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Count     int       `json:"count" validate:"required,gt=0"`
}

type AttendanceResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	StudentName string    `json:"student_name,omitempty"`
	Roll        string    `json:"roll,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Status      string    `json:"status"`
	Day         string    `json:"day"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromAttendanceModel(a *model.AttendanceModel) AttendanceResponse {
	resp := AttendanceResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Status:    string(a.Status),
		Day:       a.Day.Format("2006-01-02"),
		CreatedAt: a.CreatedAt,
	}
	if a.User != nil {
		resp.StudentName = a.User.FullName()
	}
	if a.Profile != nil {
		resp.Roll = a.Profile.Roll
	}
	if a.Subject != nil {
		resp.Subject = a.Subject.Name
	}
	return resp
}

func FromAttendanceModels(rows []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromAttendanceModel(&rows[i]))
	}
	return out
}

// AttendanceSummary aggregates a student's per-status counts against the
// total classes held (summed from the append-only class-count ledger).
type AttendanceSummary struct {
	UserID       uuid.UUID `json:"user_id"`
	Present      int64     `json:"present"`
	Absent       int64     `json:"absent"`
	Late         int64     `json:"late"`
	TotalClasses int64     `json:"total_classes"`
}
