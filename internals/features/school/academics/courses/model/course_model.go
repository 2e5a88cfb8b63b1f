// file: internals/features/school/academics/courses/model/course_model.go
package model

import "time"

type CourseModel struct {
	CourseID          uint      `gorm:"column:course_id;primaryKey;autoIncrement"                 json:"course_id"`
	CourseName        string    `gorm:"column:course_name;type:varchar(100);not null;index:idx_courses_name" json:"course_name"`
	CourseDescription string    `gorm:"column:course_description;type:text"                       json:"course_description"`
	CourseSchoolYear  string    `gorm:"column:course_school_year;type:varchar(9);not null"        json:"course_school_year"`
	CourseIsActive    bool      `gorm:"column:course_is_active;not null;index:idx_courses_active" json:"course_is_active"`
	CourseCreatedAt   time.Time `gorm:"column:course_created_at;not null;autoCreateTime"          json:"course_created_at"`
}

func (CourseModel) TableName() string { return "courses" }

// Label: "Matematika 10 (2024-2025)"
func (m CourseModel) Label() string {
	return m.CourseName + " (" + m.CourseSchoolYear + ")"
}
