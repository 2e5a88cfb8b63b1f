package dto

import (
	"strings"
	"time"

	"estudify_backend/internals/features/school/academics/courses/model"
)

type CourseRequest struct {
	Name        string `json:"course_name"        form:"course_name"        validate:"required,max=100"`
	Description string `json:"course_description" form:"course_description" validate:"omitempty,max=5000"`
	SchoolYear  string `json:"course_school_year" form:"course_school_year" validate:"required,max=9"`
	IsActive    *bool  `json:"course_is_active"   form:"course_is_active"`
}

func (r *CourseRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.SchoolYear = strings.TrimSpace(r.SchoolYear)
}

type ListCoursesQuery struct {
	Search string `query:"search"`
	Active string `query:"active"`
}

type CourseResponse struct {
	CourseID          uint      `json:"course_id"`
	CourseName        string    `json:"course_name"`
	CourseDescription string    `json:"course_description"`
	CourseSchoolYear  string    `json:"course_school_year"`
	CourseIsActive    bool      `json:"course_is_active"`
	CourseCreatedAt   time.Time `json:"course_created_at"`
}

func FromModel(m model.CourseModel) CourseResponse {
	return CourseResponse{
		CourseID:          m.CourseID,
		CourseName:        m.CourseName,
		CourseDescription: m.CourseDescription,
		CourseSchoolYear:  m.CourseSchoolYear,
		CourseIsActive:    m.CourseIsActive,
		CourseCreatedAt:   m.CourseCreatedAt,
	}
}

func FromModels(list []model.CourseModel) []CourseResponse {
	out := make([]CourseResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
