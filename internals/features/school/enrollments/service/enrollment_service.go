// file: internals/features/school/enrollments/service/enrollment_service.go
package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/constants"
	courseModel "estudify_backend/internals/features/school/academics/courses/model"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	"estudify_backend/internals/features/school/enrollments/dto"
	"estudify_backend/internals/features/school/enrollments/model"
	userModel "estudify_backend/internals/features/users/user/model"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
	"estudify_backend/internals/helpers/dbtime"
)

const (
	featureStudent = "pendaftaran"
	featureAdmin   = "manajemen pendaftaran"
)

/* =========================================================
   STUDENT: enroll course / subject
========================================================= */

func EnrollCourse(db *gorm.DB, caller helperAuth.Identity, courseID uint) (*model.EnrollmentModel, error) {
	if err := helperAuth.RequireStudent(caller, featureStudent); err != nil {
		return nil, err
	}

	row := &model.EnrollmentModel{
		EnrollmentStudentID:  caller.UserID,
		EnrollmentCourseID:   courseID,
		EnrollmentEnrolledOn: dbtime.Today(),
		EnrollmentIsActive:   true,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var course courseModel.CourseModel
		if err := tx.First(&course, "course_id = ?", courseID).Error; err != nil {
			if helper.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
			}
			return helper.Internal(err, "load course")
		}
		if !course.CourseIsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Course tidak aktif")
		}

		var n int64
		if err := tx.Model(&model.EnrollmentModel{}).
			Where("enrollment_student_id = ? AND enrollment_course_id = ?", caller.UserID, courseID).
			Count(&n).Error; err != nil {
			return helper.Internal(err, "check enrollment")
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusConflict, "Anda sudah terdaftar di course "+course.CourseName)
		}
		if err := tx.Create(row).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Anda sudah terdaftar di course "+course.CourseName)
			}
			return helper.Internal(err, "create enrollment")
		}
		row.Course = &course
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[ENROLL] %s → course #%d", caller.UserName, courseID)
	return row, nil
}

func EnrollSubject(db *gorm.DB, caller helperAuth.Identity, subjectID uint) (*model.SubjectEnrollmentModel, error) {
	if err := helperAuth.RequireStudent(caller, featureStudent); err != nil {
		return nil, err
	}

	row := &model.SubjectEnrollmentModel{
		SubjectEnrollmentStudentID: caller.UserID,
		SubjectEnrollmentSubjectID: subjectID,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var subject subjectModel.SubjectModel
		if err := tx.Preload("Course").Preload("Teacher").
			First(&subject, "subject_id = ?", subjectID).Error; err != nil {
			if helper.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Subject tidak ditemukan")
			}
			return helper.Internal(err, "load subject")
		}
		if !subject.SubjectIsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Subject tidak aktif")
		}

		var n int64
		if err := tx.Model(&model.SubjectEnrollmentModel{}).
			Where("subject_enrollment_student_id = ? AND subject_enrollment_subject_id = ?", caller.UserID, subjectID).
			Count(&n).Error; err != nil {
			return helper.Internal(err, "check subject enrollment")
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusConflict, "Anda sudah terdaftar di subject "+subject.SubjectName)
		}
		if err := tx.Create(row).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Anda sudah terdaftar di subject "+subject.SubjectName)
			}
			return helper.Internal(err, "create subject enrollment")
		}
		row.Subject = &subject
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

/* =========================================================
   STUDENT: katalog & milik sendiri
========================================================= */

// AvailableCourses: course aktif yang belum diikuti student.
func AvailableCourses(db *gorm.DB, caller helperAuth.Identity) ([]courseModel.CourseModel, error) {
	if err := helperAuth.RequireStudent(caller, featureStudent); err != nil {
		return nil, err
	}
	enrolled := db.Model(&model.EnrollmentModel{}).
		Select("enrollment_course_id").
		Where("enrollment_student_id = ?", caller.UserID)

	var list []courseModel.CourseModel
	if err := db.Where("course_is_active = ?", true).
		Where("course_id NOT IN (?)", enrolled).
		Order("course_name ASC").
		Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "list available courses")
	}
	return list, nil
}

// AvailableSubjects: subject aktif yang belum diikuti langsung oleh student.
func AvailableSubjects(db *gorm.DB, caller helperAuth.Identity) ([]subjectModel.SubjectModel, error) {
	if err := helperAuth.RequireStudent(caller, featureStudent); err != nil {
		return nil, err
	}
	enrolled := db.Model(&model.SubjectEnrollmentModel{}).
		Select("subject_enrollment_subject_id").
		Where("subject_enrollment_student_id = ?", caller.UserID)

	var list []subjectModel.SubjectModel
	if err := db.Model(&subjectModel.SubjectModel{}).
		Joins("LEFT JOIN courses ON courses.course_id = subjects.subject_course_id").
		Where("subjects.subject_is_active = ?", true).
		Where("subjects.subject_id NOT IN (?)", enrolled).
		Order("courses.course_name ASC").Order("subjects.subject_name ASC").
		Preload("Course").Preload("Teacher").
		Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "list available subjects")
	}
	return list, nil
}

// MyCourses: enrollment terbaru dulu, tiap course dengan subject aktifnya.
func MyCourses(db *gorm.DB, caller helperAuth.Identity) ([]dto.MyCourse, error) {
	if err := helperAuth.RequireStudent(caller, featureStudent); err != nil {
		return nil, err
	}
	var enrollments []model.EnrollmentModel
	if err := db.Preload("Course").
		Where("enrollment_student_id = ?", caller.UserID).
		Order("enrollment_enrolled_on DESC").Order("enrollment_id DESC").
		Find(&enrollments).Error; err != nil {
		return nil, helper.Internal(err, "list my enrollments")
	}
	if len(enrollments) == 0 {
		return []dto.MyCourse{}, nil
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.EnrollmentCourseID)
	}
	var subjects []subjectModel.SubjectModel
	if err := db.Preload("Teacher").
		Where("subject_course_id IN ? AND subject_is_active = ?", courseIDs, true).
		Order("subject_name ASC").
		Find(&subjects).Error; err != nil {
		return nil, helper.Internal(err, "list course subjects")
	}
	byCourse := make(map[uint][]subjectModel.SubjectModel, len(courseIDs))
	for _, s := range subjects {
		byCourse[s.SubjectCourseID] = append(byCourse[s.SubjectCourseID], s)
	}

	out := make([]dto.MyCourse, 0, len(enrollments))
	for _, e := range enrollments {
		subs := byCourse[e.EnrollmentCourseID]
		if subs == nil {
			subs = []subjectModel.SubjectModel{}
		}
		out = append(out, dto.MyCourse{Enrollment: e, Subjects: subs})
	}
	return out, nil
}

// MySubjects: subject enrollment langsung milik student.
func MySubjects(db *gorm.DB, caller helperAuth.Identity) ([]model.SubjectEnrollmentModel, error) {
	if err := helperAuth.RequireStudent(caller, featureStudent); err != nil {
		return nil, err
	}
	var list []model.SubjectEnrollmentModel
	if err := db.Preload("Subject.Course").Preload("Subject.Teacher").
		Where("subject_enrollment_student_id = ?", caller.UserID).
		Order("subject_enrollment_enrolled_at DESC").Order("subject_enrollment_id DESC").
		Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "list my subjects")
	}
	return list, nil
}

/* =========================================================
   ADMIN
========================================================= */

func ListEnrollments(db *gorm.DB, caller helperAuth.Identity, q dto.ListEnrollmentsQuery, p helper.Paging) ([]model.EnrollmentModel, int64, error) {
	if err := helperAuth.RequireAdmin(caller, featureAdmin); err != nil {
		return nil, 0, err
	}
	tx := db.Model(&model.EnrollmentModel{})
	if q.CourseID != 0 {
		tx = tx.Where("enrollment_course_id = ?", q.CourseID)
	}
	if q.StudentID != 0 {
		tx = tx.Where("enrollment_student_id = ?", q.StudentID)
	}
	switch strings.ToLower(strings.TrimSpace(q.Active)) {
	case "":
	case "true", "1":
		tx = tx.Where("enrollment_is_active = ?", true)
	case "false", "0":
		tx = tx.Where("enrollment_is_active = ?", false)
	default:
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "active harus true/false")
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, helper.Internal(err, "count enrollments")
	}
	var list []model.EnrollmentModel
	if err := tx.Preload("Student").Preload("Course").
		Order("enrollment_enrolled_on DESC").Order("enrollment_id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return nil, 0, helper.Internal(err, "list enrollments")
	}
	return list, total, nil
}

func findEnrollment(db *gorm.DB, id uint) (*model.EnrollmentModel, error) {
	var m model.EnrollmentModel
	if err := db.Preload("Student").Preload("Course").First(&m, "enrollment_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Enrollment tidak ditemukan")
		}
		return nil, helper.Internal(err, "load enrollment")
	}
	return &m, nil
}

func DeactivateEnrollment(db *gorm.DB, caller helperAuth.Identity, id uint) (*model.EnrollmentModel, error) {
	if err := helperAuth.RequireAdmin(caller, featureAdmin); err != nil {
		return nil, err
	}
	m, err := findEnrollment(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&model.EnrollmentModel{}).Where("enrollment_id = ?", id).
		Update("enrollment_is_active", false).Error; err != nil {
		return nil, helper.Internal(err, "deactivate enrollment")
	}
	m.EnrollmentIsActive = false
	return m, nil
}

func DeleteEnrollment(db *gorm.DB, caller helperAuth.Identity, id uint) error {
	if err := helperAuth.RequireAdmin(caller, featureAdmin); err != nil {
		return err
	}
	res := db.Where("enrollment_id = ?", id).Delete(&model.EnrollmentModel{})
	if res.Error != nil {
		return helper.Internal(res.Error, "delete enrollment")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Enrollment tidak ditemukan")
	}
	return nil
}

/* =========================================================
   Eligibility (dipakai grading & attendance)
========================================================= */

// reachableStudentIDs: student lewat enrollment course aktif atau subject enrollment.
func reachableStudentIDs(tx *gorm.DB, subjectIDs []uint) (*gorm.DB, *gorm.DB) {
	viaCourse := tx.Table("enrollments").
		Select("enrollments.enrollment_student_id").
		Joins("JOIN subjects ON subjects.subject_course_id = enrollments.enrollment_course_id").
		Where("subjects.subject_id IN ? AND enrollments.enrollment_is_active = ?", subjectIDs, true)
	viaSubject := tx.Table("subject_enrollments").
		Select("subject_enrollment_student_id").
		Where("subject_enrollment_subject_id IN ?", subjectIDs)
	return viaCourse, viaSubject
}

// IsStudentEnrolledInSubject: student aktif (role student) yang terdaftar
// di subject lewat salah satu jalur.
func IsStudentEnrolledInSubject(tx *gorm.DB, studentID, subjectID uint) (bool, error) {
	viaCourse, viaSubject := reachableStudentIDs(tx, []uint{subjectID})
	var n int64
	err := tx.Model(&userModel.UserModel{}).
		Where("id = ? AND role = ? AND is_active = ?", studentID, constants.RoleStudent, true).
		Where(tx.Where("id IN (?)", viaCourse).Or("id IN (?)", viaSubject)).
		Count(&n).Error
	if err != nil {
		return false, helper.Internal(err, "check student enrollment")
	}
	return n > 0, nil
}

// StudentsForSubjects: student unik di subject-subject tsb, urut nama.
func StudentsForSubjects(tx *gorm.DB, subjectIDs []uint, activeOnly bool) ([]userModel.UserModel, error) {
	if len(subjectIDs) == 0 {
		return []userModel.UserModel{}, nil
	}
	viaCourse, viaSubject := reachableStudentIDs(tx, subjectIDs)
	q := tx.Model(&userModel.UserModel{}).
		Where("role = ?", constants.RoleStudent).
		Where(tx.Where("id IN (?)", viaCourse).Or("id IN (?)", viaSubject))
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var list []userModel.UserModel
	if err := q.Order("first_name ASC").Order("last_name ASC").Order("user_name ASC").
		Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "list subject students")
	}
	return list, nil
}
