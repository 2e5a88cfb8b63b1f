// file: internals/features/school/reports/service/report_service.go
package service

import (
	"strings"
	"time"

	"gorm.io/gorm"

	subjectModel "estudify_backend/internals/features/school/academics/subjects/model"
	subjectService "estudify_backend/internals/features/school/academics/subjects/service"
	attendanceDTO "estudify_backend/internals/features/school/attendance/dto"
	attendanceService "estudify_backend/internals/features/school/attendance/service"
	gradeService "estudify_backend/internals/features/school/grades/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
	"estudify_backend/internals/helpers/dbtime"
)

const feature = "laporan"

var (
	myGradesColumns = []column{
		{"Subject", 30}, {"Course", 20}, {"Period", 15}, {"Score", 10}, {"Notes", 40}, {"Date", 15},
	}
	subjectReportColumns = []column{
		{"Student", 30}, {"Period", 20}, {"Score", 10}, {"Status", 15}, {"Notes", 40}, {"Date", 15},
	}
	attendanceColumns = []column{
		{"Student", 30}, {"Date", 15}, {"Status", 12}, {"Notes", 40}, {"Recorded By", 30},
	}
)

// StudentGradesExport: "My Grades" milik student yang login.
func StudentGradesExport(db *gorm.DB, caller helperAuth.Identity) (*Export, error) {
	if err := helperAuth.RequireStudent(caller, feature); err != nil {
		return nil, err
	}
	grades, err := gradeService.StudentGrades(db, caller.UserID)
	if err != nil {
		return nil, err
	}

	w, err := newSheet("My Grades", myGradesColumns)
	if err != nil {
		return nil, helper.Internal(err, "my grades workbook")
	}
	for _, g := range grades {
		var subject, course string
		if g.Subject != nil {
			subject = g.Subject.SubjectName
			if g.Subject.Course != nil {
				course = g.Subject.Course.CourseName
			}
		}
		if err := w.append(subject, course, g.GradePeriod.Label(), g.GradeScore, g.GradeNotes, dbtime.DisplayDate(g.GradeCreatedAt)); err != nil {
			w.close()
			return nil, helper.Internal(err, "my grades row")
		}
	}
	out, err := w.finish("my_grades_" + helper.Slugify(caller.UserName, 50) + ".xlsx")
	if err != nil {
		return nil, helper.Internal(err, "my grades workbook")
	}
	return out, nil
}

// reportSubject: teacher hanya subject miliknya (403), admin semua (404 kalau tidak ada).
func reportSubject(db *gorm.DB, caller helperAuth.Identity, id uint) (*subjectModel.SubjectModel, error) {
	if err := helperAuth.RequireAdminOrTeacher(caller, feature); err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return subjectService.FindSubject(db, id)
	}
	return subjectService.OwnedSubject(db, caller, id, feature)
}

// SubjectReportExport: semua nilai satu subject, status Passed/Failed.
func SubjectReportExport(db *gorm.DB, caller helperAuth.Identity, subjectID uint) (*Export, error) {
	subject, err := reportSubject(db, caller, subjectID)
	if err != nil {
		return nil, err
	}
	grades, err := gradeService.SubjectGradesForReport(db, subject.SubjectID)
	if err != nil {
		return nil, err
	}

	w, err := newSheet(sheetName("Grades "+subject.SubjectCode), subjectReportColumns)
	if err != nil {
		return nil, helper.Internal(err, "subject report workbook")
	}
	for _, g := range grades {
		student := ""
		if g.Student != nil {
			student = g.Student.FullName()
		}
		status := "Failed"
		if g.Passed() {
			status = "Passed"
		}
		if err := w.append(student, g.GradePeriod.Label(), g.GradeScore, status, g.GradeNotes, dbtime.DisplayDate(g.GradeCreatedAt)); err != nil {
			w.close()
			return nil, helper.Internal(err, "subject report row")
		}
	}
	out, err := w.finish("report_" + helper.Slugify(subject.SubjectCode, 50) + ".xlsx")
	if err != nil {
		return nil, helper.Internal(err, "subject report workbook")
	}
	return out, nil
}

// AttendanceExport: absensi subject milik teacher dengan filter yang sama seperti listing.
func AttendanceExport(db *gorm.DB, caller helperAuth.Identity, q attendanceDTO.ListAttendanceQuery, now time.Time) (*Export, error) {
	list, err := attendanceService.TeacherAttendanceForExport(db, caller, q)
	if err != nil {
		return nil, err
	}

	w, err := newSheet("Attendance", attendanceColumns)
	if err != nil {
		return nil, helper.Internal(err, "attendance workbook")
	}
	for _, a := range list {
		student, recorder := "", ""
		if a.Student != nil {
			student = a.Student.FullName()
		}
		if a.Recorder != nil {
			recorder = a.Recorder.FullName()
		}
		if err := w.append(student, dbtime.DisplayDate(time.Time(a.AttendanceDate)), a.AttendanceStatus.Label(), a.AttendanceNotes, recorder); err != nil {
			w.close()
			return nil, helper.Internal(err, "attendance row")
		}
	}
	name := "attendance_" + helper.Slugify(caller.UserName, 50) + "_" + now.UTC().Format("20060102_150405") + ".xlsx"
	out, err := w.finish(name)
	if err != nil {
		return nil, helper.Internal(err, "attendance workbook")
	}
	return out, nil
}

var sheetNameReplacer = strings.NewReplacer(":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "")

// sheetName: excel menolak : \ / ? * [ ] dan membatasi 31 karakter.
func sheetName(s string) string {
	r := []rune(sheetNameReplacer.Replace(s))
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}
