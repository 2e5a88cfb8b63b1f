// file: internals/features/school/academics/courses/service/course_service.go
package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/academics/courses/dto"
	"estudify_backend/internals/features/school/academics/courses/model"
	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	subjectService "estudify_backend/internals/features/school/academics/subjects/service"
	enrollmentModel "estudify_backend/internals/features/school/enrollments/model"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

const feature = "manajemen course"

func findCourse(db *gorm.DB, id uint) (*model.CourseModel, error) {
	var m model.CourseModel
	if err := db.First(&m, "course_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return nil, helper.Internal(err, "load course")
	}
	return &m, nil
}

/* ===================== READ ===================== */

func ListCourses(db *gorm.DB, caller helperAuth.Identity, q dto.ListCoursesQuery, p helper.Paging) ([]model.CourseModel, int64, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, 0, err
	}

	tx := db.Model(&model.CourseModel{})
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		like := helper.ContainsPattern(s)
		tx = tx.Where("LOWER(course_name) LIKE ? ESCAPE '\\' OR course_school_year LIKE ? ESCAPE '\\'", like, like)
	}
	switch strings.ToLower(strings.TrimSpace(q.Active)) {
	case "":
	case "true", "1":
		tx = tx.Where("course_is_active = ?", true)
	case "false", "0":
		tx = tx.Where("course_is_active = ?", false)
	default:
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "active harus true/false")
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, helper.Internal(err, "count courses")
	}
	var list []model.CourseModel
	if err := tx.Order("course_name ASC").Order("course_id ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return nil, 0, helper.Internal(err, "list courses")
	}
	return list, total, nil
}

// ActiveCourses: katalog course aktif, urut nama.
func ActiveCourses(db *gorm.DB) ([]model.CourseModel, error) {
	var list []model.CourseModel
	if err := db.Where("course_is_active = ?", true).
		Order("course_name ASC").
		Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "list active courses")
	}
	return list, nil
}

/* ===================== WRITE ===================== */

func CreateCourse(db *gorm.DB, caller helperAuth.Identity, req dto.CourseRequest) (*model.CourseModel, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validateCourse(req); err != nil {
		return nil, err
	}

	m := &model.CourseModel{
		CourseName:        req.Name,
		CourseDescription: req.Description,
		CourseSchoolYear:  req.SchoolYear,
		CourseIsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := db.Create(m).Error; err != nil {
		return nil, helper.Internal(err, "create course")
	}
	return m, nil
}

func UpdateCourse(db *gorm.DB, caller helperAuth.Identity, id uint, req dto.CourseRequest) (*model.CourseModel, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validateCourse(req); err != nil {
		return nil, err
	}

	var out *model.CourseModel
	err := db.Transaction(func(tx *gorm.DB) error {
		m, err := findCourse(tx, id)
		if err != nil {
			return err
		}
		m.CourseName = req.Name
		m.CourseDescription = req.Description
		m.CourseSchoolYear = req.SchoolYear
		if req.IsActive != nil {
			m.CourseIsActive = *req.IsActive
		}
		if err := tx.Save(m).Error; err != nil {
			return helper.Internal(err, "update course")
		}
		out = m
		return nil
	})
	return out, err
}

func DeactivateCourse(db *gorm.DB, caller helperAuth.Identity, id uint) (*model.CourseModel, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, err
	}
	m, err := findCourse(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(m).Update("course_is_active", false).Error; err != nil {
		return nil, helper.Internal(err, "deactivate course")
	}
	m.CourseIsActive = false
	return m, nil
}

// DeleteCourse menghapus course beserta subject, enrollment, dan
// seluruh grade/attendance/subject enrollment di bawah subject-nya.
func DeleteCourse(db *gorm.DB, caller helperAuth.Identity, id uint) error {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		m, err := findCourse(tx, id)
		if err != nil {
			return err
		}

		var subjectIDs []uint
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("subject_course_id = ?", id).
			Pluck("subject_id", &subjectIDs).Error; err != nil {
			return helper.Internal(err, "collect course subjects")
		}
		if err := subjectService.PurgeSubjects(tx, subjectIDs); err != nil {
			return err
		}
		if err := tx.Where("enrollment_course_id = ?", id).
			Delete(&enrollmentModel.EnrollmentModel{}).Error; err != nil {
			return helper.Internal(err, "delete course enrollments")
		}
		if err := tx.Delete(m).Error; err != nil {
			return helper.Internal(err, "delete course")
		}
		log.Printf("[COURSE] %s menghapus course #%d (%d subject)", caller.UserName, id, len(subjectIDs))
		return nil
	})
}

func validateCourse(req dto.CourseRequest) error {
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "course_name wajib diisi")
	}
	if req.SchoolYear == "" || len([]rune(req.SchoolYear)) > 9 {
		return fiber.NewError(fiber.StatusBadRequest, "course_school_year wajib diisi (maks 9 karakter)")
	}
	return nil
}
