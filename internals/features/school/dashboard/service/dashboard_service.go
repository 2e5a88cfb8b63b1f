// file: internals/features/school/dashboard/service/dashboard_service.go
package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/constants"
	courseModel "estudify_backend/internals/features/school/academics/courses/model"
	subjectDTO "estudify_backend/internals/features/school/academics/subjects/dto"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	subjectService "estudify_backend/internals/features/school/academics/subjects/service"
	attendanceService "estudify_backend/internals/features/school/attendance/service"
	"estudify_backend/internals/features/school/dashboard/dto"
	enrollmentDTO "estudify_backend/internals/features/school/enrollments/dto"
	enrollmentModel "estudify_backend/internals/features/school/enrollments/model"
	enrollmentService "estudify_backend/internals/features/school/enrollments/service"
	gradeDTO "estudify_backend/internals/features/school/grades/dto"
	gradeModel "estudify_backend/internals/features/school/grades/model"
	gradeService "estudify_backend/internals/features/school/grades/service"
	notifDTO "estudify_backend/internals/features/school/notifications/dto"
	notifService "estudify_backend/internals/features/school/notifications/service"
	userDTO "estudify_backend/internals/features/users/user/dto"
	userModel "estudify_backend/internals/features/users/user/model"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
	"estudify_backend/internals/helpers/dbtime"
)

const (
	recentStudentsLimit = 5
	popularCoursesLimit = 5
	recentGradesLimit   = 10
	unreadLimit         = 5
)

func count(tx *gorm.DB, op string) (int64, error) {
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, helper.Internal(err, op)
	}
	return n, nil
}

/* =========================================================
   ADMIN
========================================================= */

func AdminDashboard(db *gorm.DB, caller helperAuth.Identity, now time.Time) (dto.AdminDashboard, error) {
	var out dto.AdminDashboard
	if err := helperAuth.RequireAdmin(caller, "dashboard admin"); err != nil {
		return out, err
	}

	var err error
	users := func() *gorm.DB { return db.Model(&userModel.UserModel{}).Where("is_active = ?", true) }
	if out.ActiveStudents, err = count(users().Where("role = ?", constants.RoleStudent), "count students"); err != nil {
		return out, err
	}
	if out.ActiveTeachers, err = count(users().Where("role = ?", constants.RoleTeacher), "count teachers"); err != nil {
		return out, err
	}
	if out.ActiveCourses, err = count(db.Model(&courseModel.CourseModel{}).Where("course_is_active = ?", true), "count courses"); err != nil {
		return out, err
	}
	if out.ActiveSubjects, err = count(db.Model(&subjectModel.SubjectModel{}).Where("subject_is_active = ?", true), "count subjects"); err != nil {
		return out, err
	}
	if out.GradeAverage, err = gradeService.OverallAverage(db); err != nil {
		return out, err
	}

	month := dbtime.MonthOf(now)
	out.Month = month.String()
	if out.AttendanceRate, err = attendanceService.AttendanceRate(db, attendanceService.RateFilter{Month: &month}); err != nil {
		return out, err
	}

	var recent []userModel.UserModel
	if err := db.Where("role = ?", constants.RoleStudent).
		Order("joined_at DESC").Order("id DESC").
		Limit(recentStudentsLimit).
		Find(&recent).Error; err != nil {
		return out, helper.Internal(err, "recent students")
	}
	out.RecentStudents = userDTO.FromModels(recent)

	out.PopularCourses = []dto.CourseEnrollmentCount{}
	if err := db.Model(&courseModel.CourseModel{}).
		Select("courses.course_id, courses.course_name, COUNT(enrollments.enrollment_id) AS active_enrollments").
		Joins("LEFT JOIN enrollments ON enrollments.enrollment_course_id = courses.course_id AND enrollments.enrollment_is_active = ?", true).
		Group("courses.course_id, courses.course_name").
		Order("active_enrollments DESC").Order("courses.course_name ASC").
		Limit(popularCoursesLimit).
		Scan(&out.PopularCourses).Error; err != nil {
		return out, helper.Internal(err, "popular courses")
	}
	return out, nil
}

/* =========================================================
   TEACHER
========================================================= */

func subjectIDs(list []subjectModel.SubjectModel) []uint {
	ids := make([]uint, 0, len(list))
	for _, s := range list {
		ids = append(ids, s.SubjectID)
	}
	return ids
}

func TeacherDashboard(db *gorm.DB, caller helperAuth.Identity) (dto.TeacherDashboard, error) {
	var out dto.TeacherDashboard
	if err := helperAuth.RequireTeacher(caller, "dashboard teacher"); err != nil {
		return out, err
	}
	subjects, err := subjectService.TeacherSubjects(db, caller.UserID, true)
	if err != nil {
		return out, err
	}
	ids := subjectIDs(subjects)
	out.Subjects = subjectDTO.FromModels(subjects)

	students, err := enrollmentService.StudentsForSubjects(db, ids, false)
	if err != nil {
		return out, err
	}
	out.TotalStudents = len(students)

	recent, total, err := gradeService.ListTeacherGrades(db, caller, gradeDTO.ListGradesQuery{}, helper.NewPaging(1, recentGradesLimit, recentGradesLimit, recentGradesLimit))
	if err != nil {
		return out, err
	}
	out.TotalGrades = total
	out.RecentGrades = gradeDTO.FromModels(recent)

	if out.GradeAverage, err = gradeService.AverageForSubjects(db, ids); err != nil {
		return out, err
	}
	return out, nil
}

// TeacherStatistics: per subject aktif milik teacher.
func TeacherStatistics(db *gorm.DB, caller helperAuth.Identity) ([]dto.SubjectStatistics, error) {
	if err := helperAuth.RequireTeacher(caller, "statistik"); err != nil {
		return nil, err
	}
	subjects, err := subjectService.TeacherSubjects(db, caller.UserID, true)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubjectStatistics, 0, len(subjects))
	for _, s := range subjects {
		st := dto.SubjectStatistics{Subject: subjectDTO.FromModel(s)}
		grades := func() *gorm.DB {
			return db.Model(&gradeModel.GradeModel{}).Where("grade_subject_id = ?", s.SubjectID)
		}
		if st.TotalGrades, err = count(grades(), "count grades"); err != nil {
			return nil, err
		}
		if st.Passed, err = count(grades().Where("grade_score >= ?", gradeModel.PassingScore), "count passed"); err != nil {
			return nil, err
		}
		st.Failed = st.TotalGrades - st.Passed
		if st.Average, err = gradeService.AverageForSubject(db, s.SubjectID); err != nil {
			return nil, err
		}
		if st.AttendanceRate, err = attendanceService.AttendanceRate(db, attendanceService.RateFilter{SubjectIDs: []uint{s.SubjectID}}); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// TeacherStudents: student aktif yang terdaftar di subject aktif milik teacher.
func TeacherStudents(db *gorm.DB, caller helperAuth.Identity, q dto.TeacherStudentsQuery) ([]userModel.UserModel, error) {
	if err := helperAuth.RequireTeacher(caller, "daftar student"); err != nil {
		return nil, err
	}
	var ids []uint
	if q.SubjectID != 0 {
		s, err := subjectService.OwnedSubject(db, caller, q.SubjectID, "daftar student")
		if err != nil {
			return nil, err
		}
		if !s.SubjectIsActive {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Subject tidak aktif")
		}
		ids = []uint{s.SubjectID}
	} else {
		subjects, err := subjectService.TeacherSubjects(db, caller.UserID, true)
		if err != nil {
			return nil, err
		}
		ids = subjectIDs(subjects)
	}
	return enrollmentService.StudentsForSubjects(db, ids, true)
}

/* =========================================================
   STUDENT
========================================================= */

func StudentDashboard(db *gorm.DB, caller helperAuth.Identity, now time.Time) (dto.StudentDashboard, error) {
	var out dto.StudentDashboard
	if err := helperAuth.RequireStudent(caller, "dashboard student"); err != nil {
		return out, err
	}

	var enrollments []enrollmentModel.EnrollmentModel
	if err := db.Preload("Course").
		Where("enrollment_student_id = ? AND enrollment_is_active = ?", caller.UserID, true).
		Order("enrollment_enrolled_on DESC").Order("enrollment_id DESC").
		Find(&enrollments).Error; err != nil {
		return out, helper.Internal(err, "active enrollments")
	}
	out.Enrollments = enrollmentDTO.FromModels(enrollments)

	var grades []gradeModel.GradeModel
	if err := db.Preload("Subject.Course").
		Where("grade_student_id = ?", caller.UserID).
		Order("grade_created_at DESC").Order("grade_id DESC").
		Find(&grades).Error; err != nil {
		return out, helper.Internal(err, "student grades")
	}
	out.Grades = gradeDTO.FromModels(grades)

	var err error
	if out.GradeAverage, err = gradeService.AverageForStudent(db, caller.UserID); err != nil {
		return out, err
	}

	unread, err := notifService.RecentUnread(db, caller.UserID, unreadLimit)
	if err != nil {
		return out, err
	}
	out.UnreadNotifications = notifDTO.FromModels(unread)

	month := dbtime.MonthOf(now)
	out.Month = month.String()
	if out.AttendanceRate, err = attendanceService.AttendanceRate(db, attendanceService.RateFilter{StudentID: caller.UserID, Month: &month}); err != nil {
		return out, err
	}
	return out, nil
}
