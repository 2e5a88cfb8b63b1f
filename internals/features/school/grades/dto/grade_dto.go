package dto

import (
	"strings"
	"time"

	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	"estudify_backend/internals/features/school/grades/model"
)

/* ===================== REQUEST ===================== */

type CreateGradeRequest struct {
	StudentID uint     `json:"grade_student_id" form:"grade_student_id" validate:"required,gt=0"`
	SubjectID uint     `json:"grade_subject_id" form:"grade_subject_id" validate:"required,gt=0"`
	Period    string   `json:"grade_period"     form:"grade_period"     validate:"required,oneof=1 2 3 4 final"`
	Score     *float64 `json:"grade_score"      form:"grade_score"      validate:"required,gte=0,lte=5"`
	Notes     string   `json:"grade_notes"      form:"grade_notes"      validate:"omitempty,max=5000"`
}

func (r *CreateGradeRequest) Normalize() {
	r.Period = strings.ToLower(strings.TrimSpace(r.Period))
	r.Notes = strings.TrimSpace(r.Notes)
}

// Notes nil = tidak diubah.
type UpdateGradeRequest struct {
	Score *float64 `json:"grade_score" form:"grade_score" validate:"required,gte=0,lte=5"`
	Notes *string  `json:"grade_notes" form:"grade_notes" validate:"omitempty,max=5000"`
}

type ListGradesQuery struct {
	SubjectID uint   `query:"subject_id"`
	Period    string `query:"period"`
	Search    string `query:"search"`
}

/* ===================== RESPONSE ===================== */

type GradeResponse struct {
	GradeID          uint         `json:"grade_id"`
	GradeStudentID   uint         `json:"grade_student_id"`
	GradeStudentName string       `json:"grade_student_name,omitempty"`
	GradeSubjectID   uint         `json:"grade_subject_id"`
	GradeSubjectName string       `json:"grade_subject_name,omitempty"`
	GradeCourseName  string       `json:"grade_course_name,omitempty"`
	GradePeriod      model.Period `json:"grade_period"`
	GradePeriodLabel string       `json:"grade_period_label"`
	GradeScore       float64      `json:"grade_score"`
	GradePassed      bool         `json:"grade_passed"`
	GradeNotes       string       `json:"grade_notes"`
	GradeNotified    bool         `json:"grade_notified"`
	GradeCreatedAt   time.Time    `json:"grade_created_at"`
	GradeUpdatedAt   time.Time    `json:"grade_updated_at"`
}

func FromModel(m model.GradeModel) GradeResponse {
	out := GradeResponse{
		GradeID:          m.GradeID,
		GradeStudentID:   m.GradeStudentID,
		GradeSubjectID:   m.GradeSubjectID,
		GradePeriod:      m.GradePeriod,
		GradePeriodLabel: m.GradePeriod.Label(),
		GradeScore:       m.GradeScore,
		GradePassed:      m.Passed(),
		GradeNotes:       m.GradeNotes,
		GradeNotified:    m.GradeNotified,
		GradeCreatedAt:   m.GradeCreatedAt,
		GradeUpdatedAt:   m.GradeUpdatedAt,
	}
	if m.Student != nil {
		out.GradeStudentName = m.Student.FullName()
	}
	if m.Subject != nil {
		out.GradeSubjectName = m.Subject.SubjectName
		if m.Subject.Course != nil {
			out.GradeCourseName = m.Subject.Course.CourseName
		}
	}
	return out
}

func FromModels(list []model.GradeModel) []GradeResponse {
	out := make([]GradeResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// SubjectGrades: nilai satu student di satu subject beserta rata-ratanya.
type SubjectGrades struct {
	Subject subjectModel.SubjectModel
	Grades  []model.GradeModel
	Average float64
}

type SubjectGradesResponse struct {
	SubjectID   uint            `json:"subject_id"`
	SubjectName string          `json:"subject_name"`
	SubjectCode string          `json:"subject_code"`
	CourseName  string          `json:"course_name"`
	Average     float64         `json:"average"`
	Grades      []GradeResponse `json:"grades"`
}

type MyGradesResponse struct {
	Average  float64                 `json:"average"`
	Subjects []SubjectGradesResponse `json:"subjects"`
}

func FromSubjectGrades(list []SubjectGrades, overall float64) MyGradesResponse {
	out := MyGradesResponse{Average: overall, Subjects: make([]SubjectGradesResponse, 0, len(list))}
	for _, sg := range list {
		r := SubjectGradesResponse{
			SubjectID:   sg.Subject.SubjectID,
			SubjectName: sg.Subject.SubjectName,
			SubjectCode: sg.Subject.SubjectCode,
			Average:     sg.Average,
			Grades:      FromModels(sg.Grades),
		}
		if sg.Subject.Course != nil {
			r.CourseName = sg.Subject.Course.CourseName
		}
		out.Subjects = append(out.Subjects, r)
	}
	return out
}
