package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/academics/subjects/controller"
)

// Base: /api/a/subjects
func SubjectAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewSubjectController(db)

	g := r.Group("/subjects")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Patch("/:id/deactivate", ctl.Deactivate)
	g.Delete("/:id", ctl.Delete)
}
