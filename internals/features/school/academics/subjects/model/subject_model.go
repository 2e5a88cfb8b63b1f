// file: internals/features/school/academics/subjects/model/subject_model.go
package model

import (
	"time"

	courseModel "estudify_backend/internals/features/school/academics/courses/model"
	userModel "estudify_backend/internals/features/users/user/model"
)

type SubjectModel struct {
	SubjectID          uint   `gorm:"column:subject_id;primaryKey;autoIncrement"                      json:"subject_id"`
	SubjectName        string `gorm:"column:subject_name;type:varchar(100);not null"                  json:"subject_name"`
	SubjectCode        string `gorm:"column:subject_code;type:varchar(20);not null;uniqueIndex:uq_subjects_code" json:"subject_code"`
	SubjectDescription string `gorm:"column:subject_description;type:text"                            json:"subject_description"`
	SubjectCredits     int    `gorm:"column:subject_credits;not null;default:1"                       json:"subject_credits"`
	SubjectIsActive    bool   `gorm:"column:subject_is_active;not null;index:idx_subjects_active"     json:"subject_is_active"`

	SubjectCourseID  uint  `gorm:"column:subject_course_id;not null;index:idx_subjects_course"   json:"subject_course_id"`
	SubjectTeacherID *uint `gorm:"column:subject_teacher_id;index:idx_subjects_teacher"          json:"subject_teacher_id,omitempty"`

	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;not null;autoCreateTime" json:"subject_created_at"`

	Course  *courseModel.CourseModel `gorm:"foreignKey:SubjectCourseID;references:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course,omitempty"`
	Teacher *userModel.UserModel     `gorm:"foreignKey:SubjectTeacherID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"    json:"teacher,omitempty"`
}

func (SubjectModel) TableName() string { return "subjects" }

// OwnedBy: teacher_id nil tidak pernah dimiliki siapa pun.
func (m SubjectModel) OwnedBy(userID uint) bool {
	return m.SubjectTeacherID != nil && *m.SubjectTeacherID == userID
}
