package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "estudify_backend/internals/features/school/attendance/route"
	dashboardRoute "estudify_backend/internals/features/school/dashboard/route"
	gradeRoute "estudify_backend/internals/features/school/grades/route"
	reportRoute "estudify_backend/internals/features/school/reports/route"
)

// Base: /api/t (AuthMiddleware + OnlyTeacher)
func TeacherRoutes(r fiber.Router, db *gorm.DB) {
	dashboardRoute.DashboardTeacherRoutes(r, db)
	gradeRoute.GradeTeacherRoutes(r, db)
	attendanceRoute.AttendanceTeacherRoutes(r, db)
	reportRoute.ReportTeacherRoutes(r, db)
}
