package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/dashboard/controller"
)

// Base: /api/a
func DashboardAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewDashboardController(db)
	r.Get("/dashboard", ctl.Admin)
}

// Base: /api/t
func DashboardTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewDashboardController(db)
	r.Get("/dashboard", ctl.Teacher)
	r.Get("/statistics", ctl.Statistics)
	r.Get("/students", ctl.Students)
}

// Base: /api/s
func DashboardStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewDashboardController(db)
	r.Get("/dashboard", ctl.Student)
}
