package dto

import (
	"time"

	courseDTO "estudify_backend/internals/features/school/academics/courses/dto"
	subjectDTO "estudify_backend/internals/features/school/academics/subjects/dto"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	"estudify_backend/internals/features/school/enrollments/model"
	userDTO "estudify_backend/internals/features/users/user/dto"
	"estudify_backend/internals/helpers/dbtime"
)

type ListEnrollmentsQuery struct {
	CourseID  uint   `query:"course_id"`
	StudentID uint   `query:"student_id"`
	Active    string `query:"active"`
}

type EnrollmentResponse struct {
	EnrollmentID         uint                      `json:"enrollment_id"`
	EnrollmentStudentID  uint                      `json:"enrollment_student_id"`
	Student              *userDTO.UserBrief        `json:"student,omitempty"`
	EnrollmentCourseID   uint                      `json:"enrollment_course_id"`
	Course               *courseDTO.CourseResponse `json:"course,omitempty"`
	EnrollmentEnrolledOn string                    `json:"enrollment_enrolled_on"`
	EnrollmentIsActive   bool                      `json:"enrollment_is_active"`
}

func FromModel(m model.EnrollmentModel) EnrollmentResponse {
	out := EnrollmentResponse{
		EnrollmentID:         m.EnrollmentID,
		EnrollmentStudentID:  m.EnrollmentStudentID,
		Student:              userDTO.BriefOf(m.Student),
		EnrollmentCourseID:   m.EnrollmentCourseID,
		EnrollmentEnrolledOn: dbtime.FormatDate(m.EnrollmentEnrolledOn),
		EnrollmentIsActive:   m.EnrollmentIsActive,
	}
	if m.Course != nil {
		c := courseDTO.FromModel(*m.Course)
		out.Course = &c
	}
	return out
}

func FromModels(list []model.EnrollmentModel) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

type SubjectEnrollmentResponse struct {
	SubjectEnrollmentID         uint                        `json:"subject_enrollment_id"`
	SubjectEnrollmentSubjectID  uint                        `json:"subject_enrollment_subject_id"`
	Subject                     *subjectDTO.SubjectResponse `json:"subject,omitempty"`
	SubjectEnrollmentEnrolledAt time.Time                   `json:"subject_enrollment_enrolled_at"`
}

func FromSubjectEnrollment(m model.SubjectEnrollmentModel) SubjectEnrollmentResponse {
	out := SubjectEnrollmentResponse{
		SubjectEnrollmentID:         m.SubjectEnrollmentID,
		SubjectEnrollmentSubjectID:  m.SubjectEnrollmentSubjectID,
		SubjectEnrollmentEnrolledAt: m.SubjectEnrollmentEnrolledAt,
	}
	if m.Subject != nil {
		s := subjectDTO.FromModel(*m.Subject)
		out.Subject = &s
	}
	return out
}

func FromSubjectEnrollments(list []model.SubjectEnrollmentModel) []SubjectEnrollmentResponse {
	out := make([]SubjectEnrollmentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromSubjectEnrollment(m))
	}
	return out
}

// MyCourse: enrollment + subject aktif di course tsb.
type MyCourse struct {
	Enrollment model.EnrollmentModel
	Subjects   []subjectModel.SubjectModel
}

type MyCourseResponse struct {
	EnrollmentResponse
	Subjects []subjectDTO.SubjectResponse `json:"subjects"`
}

func FromMyCourses(list []MyCourse) []MyCourseResponse {
	out := make([]MyCourseResponse, 0, len(list))
	for _, mc := range list {
		out = append(out, MyCourseResponse{
			EnrollmentResponse: FromModel(mc.Enrollment),
			Subjects:           subjectDTO.FromModels(mc.Subjects),
		})
	}
	return out
}
