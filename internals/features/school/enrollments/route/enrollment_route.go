package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/enrollments/controller"
)

// Base: /api/s
func EnrollmentStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewStudentEnrollmentController(db)

	r.Get("/courses", ctl.MyCourses)
	r.Get("/subjects", ctl.MySubjects)

	catalog := r.Group("/catalog")
	catalog.Get("/courses", ctl.AvailableCourses)
	catalog.Post("/courses/:id/enroll", ctl.EnrollCourse)
	catalog.Get("/subjects", ctl.AvailableSubjects)
	catalog.Post("/subjects/:id/enroll", ctl.EnrollSubject)
}

// Base: /api/a
func EnrollmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAdminEnrollmentController(db)

	g := r.Group("/enrollments")
	g.Get("/", ctl.List)
	g.Patch("/:id/deactivate", ctl.Deactivate)
	g.Delete("/:id", ctl.Delete)
}
