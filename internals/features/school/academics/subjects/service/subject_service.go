// file: internals/features/school/academics/subjects/service/subject_service.go
package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/constants"
	courseModel "estudify_backend/internals/features/school/academics/courses/model"
	"estudify_backend/internals/features/school/academics/subjects/dto"
	"estudify_backend/internals/features/school/academics/subjects/model"
	attendanceModel "estudify_backend/internals/features/school/attendance/model"
	enrollmentModel "estudify_backend/internals/features/school/enrollments/model"
	gradeModel "estudify_backend/internals/features/school/grades/model"
	userModel "estudify_backend/internals/features/users/user/model"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

const feature = "manajemen subject"

func FindSubject(db *gorm.DB, id uint) (*model.SubjectModel, error) {
	var m model.SubjectModel
	if err := db.Preload("Course").Preload("Teacher").
		First(&m, "subject_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Subject tidak ditemukan")
		}
		return nil, helper.Internal(err, "load subject")
	}
	return &m, nil
}

// OwnedSubject: subject yang boleh dinilai/diabsen caller. Teacher hanya
// subject miliknya; subject orang lain atau yang tidak ada sama-sama 403.
// Admin boleh semua subject, subject yang tidak ada = 400 (referensi body).
func OwnedSubject(tx *gorm.DB, caller helperAuth.Identity, subjectID uint, feature string) (*model.SubjectModel, error) {
	if err := helperAuth.RequireAdminOrTeacher(caller, feature); err != nil {
		return nil, err
	}
	q := tx.Preload("Course").Where("subject_id = ?", subjectID)
	if !caller.IsAdmin() {
		q = q.Where("subject_teacher_id = ?", caller.UserID)
	}
	var m model.SubjectModel
	if err := q.First(&m).Error; err != nil {
		if !helper.IsNotFound(err) {
			return nil, helper.Internal(err, "load owned subject")
		}
		if caller.IsAdmin() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Subject tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusForbidden, "Anda bukan pengajar subject ini")
	}
	return &m, nil
}

// orderedSubjects: urut nama course lalu nama subject.
func orderedSubjects(db *gorm.DB) *gorm.DB {
	return db.Model(&model.SubjectModel{}).
		Joins("LEFT JOIN courses ON courses.course_id = subjects.subject_course_id").
		Order("courses.course_name ASC").
		Order("subjects.subject_name ASC").
		Order("subjects.subject_id ASC")
}

/* ===================== READ ===================== */

func ListSubjects(db *gorm.DB, caller helperAuth.Identity, q dto.ListSubjectsQuery, p helper.Paging) ([]model.SubjectModel, int64, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, 0, err
	}

	tx := orderedSubjects(db)
	if q.CourseID != 0 {
		tx = tx.Where("subjects.subject_course_id = ?", q.CourseID)
	}
	if q.TeacherID != 0 {
		tx = tx.Where("subjects.subject_teacher_id = ?", q.TeacherID)
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		like := helper.ContainsPattern(s)
		tx = tx.Where("LOWER(subjects.subject_name) LIKE ? ESCAPE '\\' OR LOWER(subjects.subject_code) LIKE ? ESCAPE '\\'", like, like)
	}
	switch strings.ToLower(strings.TrimSpace(q.Active)) {
	case "":
	case "true", "1":
		tx = tx.Where("subjects.subject_is_active = ?", true)
	case "false", "0":
		tx = tx.Where("subjects.subject_is_active = ?", false)
	default:
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "active harus true/false")
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, helper.Internal(err, "count subjects")
	}
	var list []model.SubjectModel
	if err := tx.Preload("Course").Preload("Teacher").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return nil, 0, helper.Internal(err, "list subjects")
	}
	return list, total, nil
}

// ActiveSubjects: katalog subject aktif.
func ActiveSubjects(db *gorm.DB) ([]model.SubjectModel, error) {
	var list []model.SubjectModel
	if err := orderedSubjects(db).
		Where("subjects.subject_is_active = ?", true).
		Preload("Course").Preload("Teacher").
		Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "list active subjects")
	}
	return list, nil
}

// TeacherSubjects: subject milik teacher; activeOnly untuk dashboard/grades.
func TeacherSubjects(db *gorm.DB, teacherID uint, activeOnly bool) ([]model.SubjectModel, error) {
	tx := orderedSubjects(db).Where("subjects.subject_teacher_id = ?", teacherID)
	if activeOnly {
		tx = tx.Where("subjects.subject_is_active = ?", true)
	}
	var list []model.SubjectModel
	if err := tx.Preload("Course").Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "list teacher subjects")
	}
	return list, nil
}

/* ===================== WRITE ===================== */

func CreateSubject(db *gorm.DB, caller helperAuth.Identity, req dto.SubjectRequest) (*model.SubjectModel, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, err
	}
	req.Normalize()
	code := helper.NormalizeCode(req.Code)
	if req.Name == "" || code == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "subject_name & subject_code wajib diisi")
	}

	m := &model.SubjectModel{
		SubjectName:        req.Name,
		SubjectCode:        code,
		SubjectDescription: req.Description,
		SubjectCredits:     req.Credits,
		SubjectIsActive:    req.IsActive == nil || *req.IsActive,
		SubjectCourseID:    req.CourseID,
		SubjectTeacherID:   req.TeacherID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx, req.CourseID, req.TeacherID); err != nil {
			return err
		}
		if err := checkCodeFree(tx, code, 0); err != nil {
			return err
		}
		if err := tx.Create(m).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Kode subject sudah digunakan")
			}
			return helper.Internal(err, "create subject")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FindSubject(db, m.SubjectID)
}

func UpdateSubject(db *gorm.DB, caller helperAuth.Identity, id uint, req dto.SubjectRequest) (*model.SubjectModel, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, err
	}
	req.Normalize()
	code := helper.NormalizeCode(req.Code)
	if req.Name == "" || code == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "subject_name & subject_code wajib diisi")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var m model.SubjectModel
		if err := tx.First(&m, "subject_id = ?", id).Error; err != nil {
			if helper.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Subject tidak ditemukan")
			}
			return helper.Internal(err, "load subject")
		}
		if err := checkRefs(tx, req.CourseID, req.TeacherID); err != nil {
			return err
		}
		if err := checkCodeFree(tx, code, id); err != nil {
			return err
		}

		updates := map[string]any{
			"subject_name":        req.Name,
			"subject_code":        code,
			"subject_description": req.Description,
			"subject_credits":     req.Credits,
			"subject_course_id":   req.CourseID,
			"subject_teacher_id":  req.TeacherID,
		}
		if req.IsActive != nil {
			updates["subject_is_active"] = *req.IsActive
		}
		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Kode subject sudah digunakan")
			}
			return helper.Internal(err, "update subject")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FindSubject(db, id)
}

func DeactivateSubject(db *gorm.DB, caller helperAuth.Identity, id uint) (*model.SubjectModel, error) {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return nil, err
	}
	m, err := FindSubject(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&model.SubjectModel{}).Where("subject_id = ?", id).
		Update("subject_is_active", false).Error; err != nil {
		return nil, helper.Internal(err, "deactivate subject")
	}
	m.SubjectIsActive = false
	return m, nil
}

func DeleteSubject(db *gorm.DB, caller helperAuth.Identity, id uint) error {
	if err := helperAuth.RequireAdmin(caller, feature); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.SubjectModel{}).Where("subject_id = ?", id).Count(&n).Error; err != nil {
			return helper.Internal(err, "check subject")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Subject tidak ditemukan")
		}
		return PurgeSubjects(tx, []uint{id})
	})
}

// PurgeSubjects menghapus subject beserta grade, attendance, dan subject
// enrollment-nya. Harus dipanggil di dalam transaksi caller.
func PurgeSubjects(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	steps := []struct {
		what  string
		model any
		col   string
	}{
		{"grades", &gradeModel.GradeModel{}, "grade_subject_id"},
		{"attendance", &attendanceModel.AttendanceModel{}, "attendance_subject_id"},
		{"subject enrollments", &enrollmentModel.SubjectEnrollmentModel{}, "subject_enrollment_subject_id"},
		{"subjects", &model.SubjectModel{}, "subject_id"},
	}
	for _, s := range steps {
		if err := tx.Where(s.col+" IN ?", ids).Delete(s.model).Error; err != nil {
			return helper.Internal(err, "purge "+s.what)
		}
	}
	return nil
}

/* ===================== checks ===================== */

func checkRefs(tx *gorm.DB, courseID uint, teacherID *uint) error {
	var n int64
	if err := tx.Model(&courseModel.CourseModel{}).Where("course_id = ?", courseID).Count(&n).Error; err != nil {
		return helper.Internal(err, "check course")
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "subject_course_id tidak ditemukan")
	}
	if teacherID == nil {
		return nil
	}
	if err := tx.Model(&userModel.UserModel{}).
		Where("id = ? AND role = ? AND is_active = ?", *teacherID, constants.RoleTeacher, true).
		Count(&n).Error; err != nil {
		return helper.Internal(err, "check teacher")
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "subject_teacher_id harus teacher yang aktif")
	}
	return nil
}

func checkCodeFree(tx *gorm.DB, code string, exceptID uint) error {
	var n int64
	q := tx.Model(&model.SubjectModel{}).Where("subject_code = ?", code)
	if exceptID != 0 {
		q = q.Where("subject_id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return helper.Internal(err, "check subject code")
	}
	if n > 0 {
		return fiber.NewError(fiber.StatusConflict, "Kode subject sudah digunakan")
	}
	return nil
}
