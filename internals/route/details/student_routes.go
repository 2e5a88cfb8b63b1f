package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "estudify_backend/internals/features/school/attendance/route"
	dashboardRoute "estudify_backend/internals/features/school/dashboard/route"
	enrollmentRoute "estudify_backend/internals/features/school/enrollments/route"
	gradeRoute "estudify_backend/internals/features/school/grades/route"
	notificationRoute "estudify_backend/internals/features/school/notifications/route"
	reportRoute "estudify_backend/internals/features/school/reports/route"
)

// Base: /api/s (AuthMiddleware + OnlyStudent)
func StudentRoutes(r fiber.Router, db *gorm.DB) {
	dashboardRoute.DashboardStudentRoutes(r, db)
	gradeRoute.GradeStudentRoutes(r, db)
	enrollmentRoute.EnrollmentStudentRoutes(r, db)
	attendanceRoute.AttendanceStudentRoutes(r, db)
	notificationRoute.NotificationStudentRoutes(r, db)
	reportRoute.ReportStudentRoutes(r, db)
}
