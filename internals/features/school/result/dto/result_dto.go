package dto

import (
	"time"

	"github.com/google/uuid"

	"studentrecords_backend/internals/features/school/result/model"
)

type CreateResultRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Year      string    `json:"year" validate:"required,max=50"`
	Semester  string    `json:"semester" validate:"required,max=50"`
	Grade     float64   `json:"grade" validate:"gte=0"`
}

type UpdateResultRequest struct {
	SubjectID *uuid.UUID `json:"subject_id"`
	Year      *string    `json:"year" validate:"omitempty,max=50"`
	Semester  *string    `json:"semester" validate:"omitempty,max=50"`
	Grade     *float64   `json:"grade" validate:"omitempty,gte=0"`
}

type ResultResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	StudentName string    `json:"student_name"`
	Email       string    `json:"email"`
	Class       string    `json:"class,omitempty"`
	Roll        string    `json:"roll,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Year        string    `json:"year"`
	Semester    string    `json:"semester"`
	Grade       float64   `json:"grade"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromResultModel(r *model.ResultModel) ResultResponse {
	resp := ResultResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Year:      r.Year,
		Semester:  r.Semester,
		Grade:     r.Grade,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil {
		resp.StudentName = r.User.FullName()
		resp.Email = r.User.Email
	}
	if r.Profile != nil {
		resp.Class = r.Profile.Class
		resp.Roll = r.Profile.Roll
	}
	if r.Subject != nil {
		resp.Subject = r.Subject.Name
	}
	return resp
}

/* ===============================
   Grouped listing
=================================*/

type SemesterGroup struct {
	Semester string           `json:"semester"`
	Results  []ResultResponse `json:"results"`
}

type YearGroup struct {
	Year      string          `json:"year"`
	Semesters []SemesterGroup `json:"semesters"`
}

// GroupResults folds rows already sorted by year descending then semester
// ascending into the nested display shape, preserving that order.
func GroupResults(rows []model.ResultModel) []YearGroup {
	groups := make([]YearGroup, 0)
	for i := range rows {
		resp := FromResultModel(&rows[i])

		if len(groups) == 0 || groups[len(groups)-1].Year != resp.Year {
			groups = append(groups, YearGroup{Year: resp.Year})
		}
		yg := &groups[len(groups)-1]

		if len(yg.Semesters) == 0 || yg.Semesters[len(yg.Semesters)-1].Semester != resp.Semester {
			yg.Semesters = append(yg.Semesters, SemesterGroup{Semester: resp.Semester})
		}
		sg := &yg.Semesters[len(yg.Semesters)-1]
		sg.Results = append(sg.Results, resp)
	}
	return groups
}
