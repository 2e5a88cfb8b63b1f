package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseRoute "estudify_backend/internals/features/school/academics/courses/route"
	subjectRoute "estudify_backend/internals/features/school/academics/subjects/route"
	dashboardRoute "estudify_backend/internals/features/school/dashboard/route"
	enrollmentRoute "estudify_backend/internals/features/school/enrollments/route"
	notificationRoute "estudify_backend/internals/features/school/notifications/route"
	reportRoute "estudify_backend/internals/features/school/reports/route"
	userRoute "estudify_backend/internals/features/users/user/route"
)

// Base: /api/a (AuthMiddleware + OnlyAdmin)
func AdminRoutes(r fiber.Router, db *gorm.DB) {
	dashboardRoute.DashboardAdminRoutes(r, db)
	userRoute.UserAdminRoutes(r, db)
	courseRoute.CourseAdminRoutes(r, db)
	subjectRoute.SubjectAdminRoutes(r, db)
	enrollmentRoute.EnrollmentAdminRoutes(r, db)
	notificationRoute.NotificationAdminRoutes(r, db)
	reportRoute.ReportAdminRoutes(r, db)
}
