// file: internals/features/school/enrollments/model/enrollment_model.go
package model

import (
	"time"

	"gorm.io/datatypes"

	courseModel "estudify_backend/internals/features/school/academics/courses/model"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	userModel "estudify_backend/internals/features/users/user/model"
)

/* =========================================================
   Enrollment: student ↔ course (unik per pasangan)
========================================================= */

type EnrollmentModel struct {
	EnrollmentID         uint           `gorm:"column:enrollment_id;primaryKey;autoIncrement"                                       json:"enrollment_id"`
	EnrollmentStudentID  uint           `gorm:"column:enrollment_student_id;not null;uniqueIndex:uq_enrollments_student_course"     json:"enrollment_student_id"`
	EnrollmentCourseID   uint           `gorm:"column:enrollment_course_id;not null;uniqueIndex:uq_enrollments_student_course;index:idx_enrollments_course" json:"enrollment_course_id"`
	EnrollmentEnrolledOn datatypes.Date `gorm:"column:enrollment_enrolled_on;type:date;not null"                                   json:"enrollment_enrolled_on"`
	EnrollmentIsActive   bool           `gorm:"column:enrollment_is_active;not null;index:idx_enrollments_active"                   json:"enrollment_is_active"`

	Student *userModel.UserModel     `gorm:"foreignKey:EnrollmentStudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"      json:"student,omitempty"`
	Course  *courseModel.CourseModel `gorm:"foreignKey:EnrollmentCourseID;references:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course,omitempty"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

/* =========================================================
   SubjectEnrollment: student ↔ subject (jalur independen)
========================================================= */

type SubjectEnrollmentModel struct {
	SubjectEnrollmentID         uint      `gorm:"column:subject_enrollment_id;primaryKey;autoIncrement"                                          json:"subject_enrollment_id"`
	SubjectEnrollmentStudentID  uint      `gorm:"column:subject_enrollment_student_id;not null;uniqueIndex:uq_subject_enrollments_student_subject" json:"subject_enrollment_student_id"`
	SubjectEnrollmentSubjectID  uint      `gorm:"column:subject_enrollment_subject_id;not null;uniqueIndex:uq_subject_enrollments_student_subject;index:idx_subject_enrollments_subject" json:"subject_enrollment_subject_id"`
	SubjectEnrollmentEnrolledAt time.Time `gorm:"column:subject_enrollment_enrolled_at;not null;autoCreateTime"                                  json:"subject_enrollment_enrolled_at"`

	Student *userModel.UserModel       `gorm:"foreignKey:SubjectEnrollmentStudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"        json:"student,omitempty"`
	Subject *subjectModel.SubjectModel `gorm:"foreignKey:SubjectEnrollmentSubjectID;references:SubjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"subject,omitempty"`
}

func (SubjectEnrollmentModel) TableName() string { return "subject_enrollments" }
