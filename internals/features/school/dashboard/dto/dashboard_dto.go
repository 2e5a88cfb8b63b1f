package dto

import (
	subjectDTO "estudify_backend/internals/features/school/academics/subjects/dto"
	enrollmentDTO "estudify_backend/internals/features/school/enrollments/dto"
	gradeDTO "estudify_backend/internals/features/school/grades/dto"
	notifDTO "estudify_backend/internals/features/school/notifications/dto"
	userDTO "estudify_backend/internals/features/users/user/dto"
)

/* ===================== ADMIN ===================== */

type CourseEnrollmentCount struct {
	CourseID          uint   `json:"course_id"`
	CourseName        string `json:"course_name"`
	ActiveEnrollments int64  `json:"active_enrollments"`
}

type AdminDashboard struct {
	ActiveStudents int64                   `json:"active_students"`
	ActiveTeachers int64                   `json:"active_teachers"`
	ActiveCourses  int64                   `json:"active_courses"`
	ActiveSubjects int64                   `json:"active_subjects"`
	GradeAverage   float64                 `json:"grade_average"`
	AttendanceRate float64                 `json:"attendance_rate"`
	Month          string                  `json:"month"`
	RecentStudents []userDTO.UserResponse  `json:"recent_students"`
	PopularCourses []CourseEnrollmentCount `json:"popular_courses"`
}

/* ===================== TEACHER ===================== */

type TeacherDashboard struct {
	Subjects      []subjectDTO.SubjectResponse `json:"subjects"`
	TotalStudents int                          `json:"total_students"`
	TotalGrades   int64                        `json:"total_grades"`
	GradeAverage  float64                      `json:"grade_average"`
	RecentGrades  []gradeDTO.GradeResponse     `json:"recent_grades"`
}

type SubjectStatistics struct {
	Subject        subjectDTO.SubjectResponse `json:"subject"`
	TotalGrades    int64                      `json:"total_grades"`
	Average        float64                    `json:"average"`
	Passed         int64                      `json:"passed"`
	Failed         int64                      `json:"failed"`
	AttendanceRate float64                    `json:"attendance_rate"`
}

type TeacherStudentsQuery struct {
	SubjectID uint `query:"subject_id"`
}

/* ===================== STUDENT ===================== */

type StudentDashboard struct {
	Enrollments         []enrollmentDTO.EnrollmentResponse `json:"enrollments"`
	Grades              []gradeDTO.GradeResponse           `json:"grades"`
	GradeAverage        float64                            `json:"grade_average"`
	UnreadNotifications []notifDTO.NotificationResponse    `json:"unread_notifications"`
	AttendanceRate      float64                            `json:"attendance_rate"`
	Month               string                             `json:"month"`
}
