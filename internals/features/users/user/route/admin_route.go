package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/users/user/controller"
)

// Base: /api/a/users (sudah lewat AuthMiddleware + OnlyAdmin)
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)

	g := r.Group("/users")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Deactivate)
}
