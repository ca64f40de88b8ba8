package dto

import (
	"time"

	"github.com/google/uuid"

	"studentrecords_backend/internals/features/school/subject/model"
)

type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type SubjectResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func FromSubjectModel(s *model.SubjectModel) SubjectResponse {
	return SubjectResponse{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
	}
}

func FromSubjectModels(subjects []model.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for i := range subjects {
		out = append(out, FromSubjectModel(&subjects[i]))
	}
	return out
}
