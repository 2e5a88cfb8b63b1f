package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/grades/controller"
)

// Base: /api/t
func GradeTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewGradeController(db)

	g := r.Group("/grades")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}

// Base: /api/s
func GradeStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewGradeController(db)
	r.Get("/grades", ctl.Mine)
}
