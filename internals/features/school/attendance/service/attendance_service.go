// file: internals/features/school/attendance/service/attendance_service.go
package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	subjectService "estudify_backend/internals/features/school/academics/subjects/service"
	"estudify_backend/internals/features/school/attendance/dto"
	"estudify_backend/internals/features/school/attendance/model"
	enrollmentService "estudify_backend/internals/features/school/enrollments/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
	"estudify_backend/internals/helpers/dbtime"
)

const feature = "absensi"

func parseStatus(s string) (model.Status, error) {
	st := model.Status(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		st = model.StatusPresent
	}
	if !st.Valid() {
		return "", fiber.NewError(fiber.StatusBadRequest, "Status harus salah satu dari present, absent, late, excused")
	}
	return st, nil
}

/* =========================================================
   CREATE / UPDATE / DELETE
========================================================= */

func CreateAttendance(db *gorm.DB, caller helperAuth.Identity, req dto.CreateAttendanceRequest) (*model.AttendanceModel, error) {
	if err := helperAuth.RequireAdminOrTeacher(caller, feature); err != nil {
		return nil, err
	}

	var row *model.AttendanceModel
	err := db.Transaction(func(tx *gorm.DB) error {
		subject, err := subjectService.OwnedSubject(tx, caller, req.SubjectID, feature)
		if err != nil {
			return err
		}
		date, err := dbtime.ParseDate(req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		status, err := parseStatus(req.Status)
		if err != nil {
			return err
		}

		ok, err := enrollmentService.IsStudentEnrolledInSubject(tx, req.StudentID, subject.SubjectID)
		if err != nil {
			return err
		}
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Student tidak terdaftar di subject "+subject.SubjectName)
		}

		dupMsg := "Absensi student ini di " + subject.SubjectName + " tanggal " + dbtime.FormatDate(date) + " sudah ada"
		var n int64
		if err := tx.Model(&model.AttendanceModel{}).
			Where("attendance_student_id = ? AND attendance_subject_id = ? AND attendance_date = ?", req.StudentID, subject.SubjectID, date).
			Count(&n).Error; err != nil {
			return helper.Internal(err, "check attendance")
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusConflict, dupMsg)
		}

		recorder := caller.UserID
		a := &model.AttendanceModel{
			AttendanceStudentID:  req.StudentID,
			AttendanceSubjectID:  subject.SubjectID,
			AttendanceDate:       date,
			AttendanceStatus:     status,
			AttendanceNotes:      strings.TrimSpace(req.Notes),
			AttendanceRecordedBy: &recorder,
		}
		if err := tx.Create(a).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, dupMsg)
			}
			return helper.Internal(err, "create attendance")
		}
		a.Subject = subject
		row = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[ATTENDANCE] %s → student #%d %s %s = %s", caller.UserName, row.AttendanceStudentID, row.Subject.SubjectCode, dbtime.FormatDate(row.AttendanceDate), row.AttendanceStatus)
	return row, nil
}

// ownedAttendance: record di subject milik teacher; selain itu 403.
func ownedAttendance(tx *gorm.DB, caller helperAuth.Identity, id uint) (*model.AttendanceModel, error) {
	if err := helperAuth.RequireTeacher(caller, feature); err != nil {
		return nil, err
	}
	owned := tx.Model(&subjectModel.SubjectModel{}).
		Select("subject_id").
		Where("subject_teacher_id = ?", caller.UserID)

	var a model.AttendanceModel
	if err := tx.Preload("Student").Preload("Subject").Preload("Recorder").
		Where("attendance_id = ? AND attendance_subject_id IN (?)", id, owned).
		First(&a).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusForbidden, "Anda tidak berhak mengubah absensi ini")
		}
		return nil, helper.Internal(err, "load attendance")
	}
	return &a, nil
}

func UpdateAttendance(db *gorm.DB, caller helperAuth.Identity, id uint, req dto.UpdateAttendanceRequest) (*model.AttendanceModel, error) {
	var out *model.AttendanceModel
	err := db.Transaction(func(tx *gorm.DB) error {
		a, err := ownedAttendance(tx, caller, id)
		if err != nil {
			return err
		}
		updates := map[string]any{}
		if req.Status != nil {
			st, err := parseStatus(*req.Status)
			if err != nil {
				return err
			}
			updates["attendance_status"] = st
			a.AttendanceStatus = st
		}
		if req.Notes != nil {
			updates["attendance_notes"] = strings.TrimSpace(*req.Notes)
			a.AttendanceNotes = strings.TrimSpace(*req.Notes)
		}
		if len(updates) > 0 {
			if err := tx.Model(&model.AttendanceModel{}).Where("attendance_id = ?", a.AttendanceID).
				Updates(updates).Error; err != nil {
				return helper.Internal(err, "update attendance")
			}
		}
		out = a
		return nil
	})
	return out, err
}

func DeleteAttendance(db *gorm.DB, caller helperAuth.Identity, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		a, err := ownedAttendance(tx, caller, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&model.AttendanceModel{}, "attendance_id = ?", a.AttendanceID).Error; err != nil {
			return helper.Internal(err, "delete attendance")
		}
		return nil
	})
}

/* =========================================================
   READ
========================================================= */

// teacherScope: absensi di subject aktif milik teacher + filter.
func teacherScope(db *gorm.DB, teacherID uint, q dto.ListAttendanceQuery) (*gorm.DB, error) {
	owned := db.Model(&subjectModel.SubjectModel{}).
		Select("subject_id").
		Where("subject_teacher_id = ? AND subject_is_active = ?", teacherID, true)

	tx := db.Model(&model.AttendanceModel{}).Where("attendance_subject_id IN (?)", owned)
	if q.SubjectID != 0 {
		tx = tx.Where("attendance_subject_id = ?", q.SubjectID)
	}
	if s := strings.TrimSpace(q.Status); s != "" {
		st, err := parseStatus(s)
		if err != nil {
			return nil, err
		}
		tx = tx.Where("attendance_status = ?", st)
	}
	if d := strings.TrimSpace(q.Date); d != "" {
		date, err := dbtime.ParseDate(d)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		tx = tx.Where("attendance_date = ?", date)
	}
	return tx, nil
}

func ListTeacherAttendance(db *gorm.DB, caller helperAuth.Identity, q dto.ListAttendanceQuery, p helper.Paging) ([]model.AttendanceModel, int64, error) {
	if err := helperAuth.RequireTeacher(caller, feature); err != nil {
		return nil, 0, err
	}
	tx, err := teacherScope(db, caller.UserID, q)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, helper.Internal(err, "count attendance")
	}
	var list []model.AttendanceModel
	if err := tx.Preload("Student").Preload("Subject").Preload("Recorder").
		Order("attendance_date DESC").Order("attendance_id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return nil, 0, helper.Internal(err, "list attendance")
	}
	return list, total, nil
}

// TeacherAttendanceForExport: sama dengan list tapi tanpa paging.
func TeacherAttendanceForExport(db *gorm.DB, caller helperAuth.Identity, q dto.ListAttendanceQuery) ([]model.AttendanceModel, error) {
	if err := helperAuth.RequireTeacher(caller, feature); err != nil {
		return nil, err
	}
	tx, err := teacherScope(db, caller.UserID, q)
	if err != nil {
		return nil, err
	}
	var list []model.AttendanceModel
	if err := tx.Preload("Student").Preload("Subject").Preload("Recorder").
		Order("attendance_date DESC").Order("attendance_id DESC").
		Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "export attendance")
	}
	return list, nil
}

/* =========================================================
   Rate & ringkasan
========================================================= */

// RateFilter: kosong semua = seluruh absensi.
type RateFilter struct {
	SubjectIDs []uint
	StudentID  uint
	Month      *dbtime.Month
}

func (f RateFilter) apply(db *gorm.DB) *gorm.DB {
	tx := db.Model(&model.AttendanceModel{})
	if f.SubjectIDs != nil {
		tx = tx.Where("attendance_subject_id IN ?", f.SubjectIDs)
	}
	if f.StudentID != 0 {
		tx = tx.Where("attendance_student_id = ?", f.StudentID)
	}
	if f.Month != nil {
		from, to := f.Month.Bounds()
		tx = tx.Where("attendance_date >= ? AND attendance_date < ?", from, to)
	}
	return tx
}

// AttendanceRate = present / total × 100 (1 desimal), 0 kalau kosong.
func AttendanceRate(db *gorm.DB, f RateFilter) (float64, error) {
	if f.SubjectIDs != nil && len(f.SubjectIDs) == 0 {
		return 0, nil
	}
	var total, present int64
	if err := f.apply(db).Count(&total).Error; err != nil {
		return 0, helper.Internal(err, "count attendance")
	}
	if total == 0 {
		return 0, nil
	}
	if err := f.apply(db).Where("attendance_status = ?", model.StatusPresent).Count(&present).Error; err != nil {
		return 0, helper.Internal(err, "count present")
	}
	return model.Rate(present, total), nil
}

func StudentSummary(db *gorm.DB, studentID uint) (dto.Summary, error) {
	var rows []struct {
		Status model.Status
		N      int64
	}
	if err := db.Model(&model.AttendanceModel{}).
		Select("attendance_status AS status, COUNT(*) AS n").
		Where("attendance_student_id = ?", studentID).
		Group("attendance_status").
		Scan(&rows).Error; err != nil {
		return dto.Summary{}, helper.Internal(err, "summarize attendance")
	}
	var s dto.Summary
	for _, r := range rows {
		s.Total += r.N
		switch r.Status {
		case model.StatusPresent:
			s.Present = r.N
		case model.StatusAbsent:
			s.Absent = r.N
		case model.StatusLate:
			s.Late = r.N
		case model.StatusExcused:
			s.Excused = r.N
		}
	}
	s.Rate = model.Rate(s.Present, s.Total)
	return s, nil
}

// MyAttendance: riwayat absensi student (terbaru dulu) + ringkasan.
func MyAttendance(db *gorm.DB, caller helperAuth.Identity) (dto.MyAttendanceResponse, error) {
	if err := helperAuth.RequireStudent(caller, feature); err != nil {
		return dto.MyAttendanceResponse{}, err
	}
	var list []model.AttendanceModel
	if err := db.Preload("Subject").
		Where("attendance_student_id = ?", caller.UserID).
		Order("attendance_date DESC").Order("attendance_id DESC").
		Find(&list).Error; err != nil {
		return dto.MyAttendanceResponse{}, helper.Internal(err, "list my attendance")
	}
	summary, err := StudentSummary(db, caller.UserID)
	if err != nil {
		return dto.MyAttendanceResponse{}, err
	}
	return dto.MyAttendanceResponse{Summary: summary, Records: dto.FromModels(list)}, nil
}

// SubjectRate: rate satu subject milik teacher, opsional per bulan.
func SubjectRate(db *gorm.DB, caller helperAuth.Identity, q dto.RateQuery) (float64, error) {
	if err := helperAuth.RequireTeacher(caller, feature); err != nil {
		return 0, err
	}
	if q.SubjectID == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "subject_id wajib diisi")
	}
	if _, err := subjectService.OwnedSubject(db, caller, q.SubjectID, feature); err != nil {
		return 0, err
	}
	f := RateFilter{SubjectIDs: []uint{q.SubjectID}}
	if strings.TrimSpace(q.Month) != "" {
		m, err := dbtime.ParseMonth(q.Month)
		if err != nil {
			return 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		f.Month = &m
	}
	return AttendanceRate(db, f)
}
