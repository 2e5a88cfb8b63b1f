package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/academics/courses/controller"
)

// Base: /api/a/courses
func CourseAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewCourseController(db)

	g := r.Group("/courses")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Patch("/:id/deactivate", ctl.Deactivate)
	g.Delete("/:id", ctl.Delete)
}
