// file: internals/features/school/grades/service/grade_service.go
package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	subjectService "estudify_backend/internals/features/school/academics/subjects/service"
	enrollmentService "estudify_backend/internals/features/school/enrollments/service"
	"estudify_backend/internals/features/school/grades/dto"
	"estudify_backend/internals/features/school/grades/model"
	notifModel "estudify_backend/internals/features/school/notifications/model"
	notifService "estudify_backend/internals/features/school/notifications/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

const feature = "penilaian"

func checkScore(score *float64) error {
	if score == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Score wajib diisi")
	}
	if err := model.ValidScore(*score); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

/* =========================================================
   CREATE (+ notifikasi dalam transaksi yang sama)
========================================================= */

func CreateGrade(db *gorm.DB, caller helperAuth.Identity, req dto.CreateGradeRequest) (*model.GradeModel, error) {
	if err := helperAuth.RequireAdminOrTeacher(caller, feature); err != nil {
		return nil, err
	}

	var row *model.GradeModel
	err := db.Transaction(func(tx *gorm.DB) error {
		subject, err := subjectService.OwnedSubject(tx, caller, req.SubjectID, feature)
		if err != nil {
			return err
		}

		period := model.Period(strings.ToLower(strings.TrimSpace(req.Period)))
		if !period.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Period harus salah satu dari 1, 2, 3, 4, final")
		}
		if err := checkScore(req.Score); err != nil {
			return err
		}

		ok, err := enrollmentService.IsStudentEnrolledInSubject(tx, req.StudentID, subject.SubjectID)
		if err != nil {
			return err
		}
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Student tidak terdaftar di subject "+subject.SubjectName)
		}

		dupMsg := fmt.Sprintf("Nilai %s untuk student ini di %s sudah ada", period.Label(), subject.SubjectName)
		var n int64
		if err := tx.Model(&model.GradeModel{}).
			Where("grade_student_id = ? AND grade_subject_id = ? AND grade_period = ?", req.StudentID, subject.SubjectID, period).
			Count(&n).Error; err != nil {
			return helper.Internal(err, "check grade")
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusConflict, dupMsg)
		}

		g := &model.GradeModel{
			GradeStudentID: req.StudentID,
			GradeSubjectID: subject.SubjectID,
			GradePeriod:    period,
			GradeScore:     *req.Score,
			GradeNotes:     strings.TrimSpace(req.Notes),
			GradeNotified:  false,
		}
		if err := tx.Create(g).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, dupMsg)
			}
			return helper.Internal(err, "create grade")
		}

		title := "New grade in " + subject.SubjectName
		body := fmt.Sprintf("You received a grade of %.2f in %s - %s", g.GradeScore, subject.SubjectName, period.Label())
		if _, err := notifService.Emit(tx, g.GradeStudentID, notifModel.TypeGrade, title, body); err != nil {
			return err
		}
		if err := tx.Model(&model.GradeModel{}).Where("grade_id = ?", g.GradeID).
			Update("grade_notified", true).Error; err != nil {
			return helper.Internal(err, "mark grade notified")
		}
		g.GradeNotified = true
		g.Subject = subject
		row = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[GRADE] %s → student #%d %s %s = %.2f", caller.UserName, row.GradeStudentID, row.Subject.SubjectCode, row.GradePeriod, row.GradeScore)
	return row, nil
}

/* =========================================================
   UPDATE / DELETE (hanya teacher pemilik subject)
========================================================= */

// ownedGrade: grade di subject milik teacher; selain itu 403 (termasuk id yang tidak ada).
func ownedGrade(tx *gorm.DB, caller helperAuth.Identity, id uint) (*model.GradeModel, error) {
	if err := helperAuth.RequireTeacher(caller, feature); err != nil {
		return nil, err
	}
	owned := tx.Model(&subjectModel.SubjectModel{}).
		Select("subject_id").
		Where("subject_teacher_id = ?", caller.UserID)

	var g model.GradeModel
	if err := tx.Preload("Student").Preload("Subject.Course").
		Where("grade_id = ? AND grade_subject_id IN (?)", id, owned).
		First(&g).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusForbidden, "Anda tidak berhak mengubah nilai ini")
		}
		return nil, helper.Internal(err, "load grade")
	}
	return &g, nil
}

func UpdateGrade(db *gorm.DB, caller helperAuth.Identity, id uint, req dto.UpdateGradeRequest) (*model.GradeModel, error) {
	var out *model.GradeModel
	err := db.Transaction(func(tx *gorm.DB) error {
		g, err := ownedGrade(tx, caller, id)
		if err != nil {
			return err
		}
		if err := checkScore(req.Score); err != nil {
			return err
		}
		updates := map[string]any{"grade_score": *req.Score}
		if req.Notes != nil {
			updates["grade_notes"] = strings.TrimSpace(*req.Notes)
		}
		if err := tx.Model(g).Updates(updates).Error; err != nil {
			return helper.Internal(err, "update grade")
		}
		g.GradeScore = *req.Score
		if req.Notes != nil {
			g.GradeNotes = strings.TrimSpace(*req.Notes)
		}
		out = g
		return nil
	})
	return out, err
}

func DeleteGrade(db *gorm.DB, caller helperAuth.Identity, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		g, err := ownedGrade(tx, caller, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&model.GradeModel{}, "grade_id = ?", g.GradeID).Error; err != nil {
			return helper.Internal(err, "delete grade")
		}
		return nil
	})
}

/* =========================================================
   READ
========================================================= */

// ListTeacherGrades: nilai di subject aktif milik teacher, terbaru dulu.
func ListTeacherGrades(db *gorm.DB, caller helperAuth.Identity, q dto.ListGradesQuery, p helper.Paging) ([]model.GradeModel, int64, error) {
	if err := helperAuth.RequireTeacher(caller, feature); err != nil {
		return nil, 0, err
	}
	owned := db.Model(&subjectModel.SubjectModel{}).
		Select("subject_id").
		Where("subject_teacher_id = ? AND subject_is_active = ?", caller.UserID, true)

	tx := db.Model(&model.GradeModel{}).
		Joins("JOIN users ON users.id = grades.grade_student_id").
		Where("grades.grade_subject_id IN (?)", owned)
	if q.SubjectID != 0 {
		tx = tx.Where("grades.grade_subject_id = ?", q.SubjectID)
	}
	if per := strings.ToLower(strings.TrimSpace(q.Period)); per != "" {
		if !model.Period(per).Valid() {
			return nil, 0, fiber.NewError(fiber.StatusBadRequest, "Period tidak valid")
		}
		tx = tx.Where("grades.grade_period = ?", per)
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		like := helper.ContainsPattern(s)
		tx = tx.Where("LOWER(users.user_name) LIKE ? ESCAPE '\\' OR LOWER(users.first_name) LIKE ? ESCAPE '\\' OR LOWER(users.last_name) LIKE ? ESCAPE '\\'", like, like, like)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, helper.Internal(err, "count grades")
	}
	var list []model.GradeModel
	if err := tx.Preload("Student").Preload("Subject.Course").
		Order("grades.grade_created_at DESC").Order("grades.grade_id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return nil, 0, helper.Internal(err, "list grades")
	}
	return list, total, nil
}

// StudentGrades: urut course, subject, period (dipakai export & halaman nilai).
func StudentGrades(db *gorm.DB, studentID uint) ([]model.GradeModel, error) {
	var list []model.GradeModel
	if err := db.Model(&model.GradeModel{}).
		Joins("JOIN subjects ON subjects.subject_id = grades.grade_subject_id").
		Joins("JOIN courses ON courses.course_id = subjects.subject_course_id").
		Where("grades.grade_student_id = ?", studentID).
		Order("courses.course_name ASC").Order("subjects.subject_name ASC").Order("grades.grade_period ASC").
		Preload("Subject.Course").
		Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "list student grades")
	}
	return list, nil
}

// SubjectGradesForReport: urut username student lalu period.
func SubjectGradesForReport(db *gorm.DB, subjectID uint) ([]model.GradeModel, error) {
	var list []model.GradeModel
	if err := db.Model(&model.GradeModel{}).
		Joins("JOIN users ON users.id = grades.grade_student_id").
		Where("grades.grade_subject_id = ?", subjectID).
		Order("users.user_name ASC").Order("grades.grade_period ASC").
		Preload("Student").
		Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "list subject grades")
	}
	return list, nil
}

/* =========================================================
   Rata-rata
========================================================= */

func averageOf(tx *gorm.DB) (float64, error) {
	var scores []float64
	if err := tx.Pluck("grade_score", &scores).Error; err != nil {
		return 0, helper.Internal(err, "load scores")
	}
	return model.Average(scores), nil
}

func AverageForSubject(db *gorm.DB, subjectID uint) (float64, error) {
	return averageOf(db.Model(&model.GradeModel{}).Where("grade_subject_id = ?", subjectID))
}

func AverageForSubjects(db *gorm.DB, subjectIDs []uint) (float64, error) {
	if len(subjectIDs) == 0 {
		return 0, nil
	}
	return averageOf(db.Model(&model.GradeModel{}).Where("grade_subject_id IN ?", subjectIDs))
}

func AverageForStudent(db *gorm.DB, studentID uint) (float64, error) {
	return averageOf(db.Model(&model.GradeModel{}).Where("grade_student_id = ?", studentID))
}

func OverallAverage(db *gorm.DB) (float64, error) {
	return averageOf(db.Model(&model.GradeModel{}))
}

// AveragesByStudent mengelompokkan nilai student per subject.
func AveragesByStudent(db *gorm.DB, studentID uint) ([]dto.SubjectGrades, error) {
	grades, err := StudentGrades(db, studentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubjectGrades, 0)
	index := make(map[uint]int)
	for _, g := range grades {
		i, ok := index[g.GradeSubjectID]
		if !ok {
			sg := dto.SubjectGrades{}
			if g.Subject != nil {
				sg.Subject = *g.Subject
			}
			out = append(out, sg)
			i = len(out) - 1
			index[g.GradeSubjectID] = i
		}
		out[i].Grades = append(out[i].Grades, g)
	}
	for i := range out {
		scores := make([]float64, 0, len(out[i].Grades))
		for _, g := range out[i].Grades {
			scores = append(scores, g.GradeScore)
		}
		out[i].Average = model.Average(scores)
	}
	return out, nil
}

// MyGrades: halaman nilai student (per subject + rata-rata keseluruhan).
func MyGrades(db *gorm.DB, caller helperAuth.Identity) (dto.MyGradesResponse, error) {
	if err := helperAuth.RequireStudent(caller, feature); err != nil {
		return dto.MyGradesResponse{}, err
	}
	groups, err := AveragesByStudent(db, caller.UserID)
	if err != nil {
		return dto.MyGradesResponse{}, err
	}
	overall, err := AverageForStudent(db, caller.UserID)
	if err != nil {
		return dto.MyGradesResponse{}, err
	}
	return dto.FromSubjectGrades(groups, overall), nil
}
