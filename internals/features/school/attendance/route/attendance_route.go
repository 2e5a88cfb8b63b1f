package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/attendance/controller"
)

// Base: /api/t
func AttendanceTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceController(db)

	g := r.Group("/attendance")
	g.Get("/", ctl.List)
	g.Get("/rate", ctl.Rate)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}

// Base: /api/s
func AttendanceStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceController(db)
	r.Get("/attendance", ctl.Mine)
}
