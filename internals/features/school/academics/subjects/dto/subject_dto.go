package dto

import (
	"strings"
	"time"

	"estudify_backend/internals/features/school/academics/subjects/model"
)

type SubjectRequest struct {
	Name        string `json:"subject_name"        form:"subject_name"        validate:"required,max=100"`
	Code        string `json:"subject_code"        form:"subject_code"        validate:"required,max=20"`
	Description string `json:"subject_description" form:"subject_description" validate:"omitempty,max=5000"`
	Credits     int    `json:"subject_credits"     form:"subject_credits"     validate:"omitempty,gte=1,lte=20"`
	CourseID    uint   `json:"subject_course_id"   form:"subject_course_id"   validate:"required"`
	TeacherID   *uint  `json:"subject_teacher_id"  form:"subject_teacher_id"`
	IsActive    *bool  `json:"subject_is_active"   form:"subject_is_active"`
}

func (r *SubjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if r.Credits == 0 {
		r.Credits = 1
	}
	if r.TeacherID != nil && *r.TeacherID == 0 {
		r.TeacherID = nil
	}
}

type ListSubjectsQuery struct {
	CourseID  uint   `query:"course_id"`
	TeacherID uint   `query:"teacher_id"`
	Search    string `query:"search"`
	Active    string `query:"active"`
}

type SubjectResponse struct {
	SubjectID          uint      `json:"subject_id"`
	SubjectName        string    `json:"subject_name"`
	SubjectCode        string    `json:"subject_code"`
	SubjectDescription string    `json:"subject_description"`
	SubjectCredits     int       `json:"subject_credits"`
	SubjectIsActive    bool      `json:"subject_is_active"`
	SubjectCourseID    uint      `json:"subject_course_id"`
	CourseName         string    `json:"course_name,omitempty"`
	SubjectTeacherID   *uint     `json:"subject_teacher_id,omitempty"`
	TeacherName        string    `json:"teacher_name,omitempty"`
	SubjectCreatedAt   time.Time `json:"subject_created_at"`
}

func FromModel(m model.SubjectModel) SubjectResponse {
	out := SubjectResponse{
		SubjectID:          m.SubjectID,
		SubjectName:        m.SubjectName,
		SubjectCode:        m.SubjectCode,
		SubjectDescription: m.SubjectDescription,
		SubjectCredits:     m.SubjectCredits,
		SubjectIsActive:    m.SubjectIsActive,
		SubjectCourseID:    m.SubjectCourseID,
		SubjectTeacherID:   m.SubjectTeacherID,
		SubjectCreatedAt:   m.SubjectCreatedAt,
	}
	if m.Course != nil {
		out.CourseName = m.Course.CourseName
	}
	if m.Teacher != nil {
		out.TeacherName = m.Teacher.FullName()
	}
	return out
}

func FromModels(list []model.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
