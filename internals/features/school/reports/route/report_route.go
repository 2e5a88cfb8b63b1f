package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/reports/controller"
)

// Base: /api/a
func ReportAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewReportController(db)
	r.Get("/reports/subjects/:id.xlsx", ctl.SubjectReport)
}

// Base: /api/t
func ReportTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewReportController(db)
	r.Get("/reports/subjects/:id.xlsx", ctl.SubjectReport)
	r.Get("/reports/attendance.xlsx", ctl.Attendance)
}

// Base: /api/s
func ReportStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewReportController(db)
	r.Get("/export/grades.xlsx", ctl.MyGrades)
}
