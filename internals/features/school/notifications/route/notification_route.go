package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/notifications/controller"
)

// Base: /api/s
func NotificationStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewNotificationController(db)

	g := r.Group("/notifications")
	g.Get("/", ctl.ListMine)
	g.Patch("/read-all", ctl.MarkAllRead)
	g.Patch("/:id/read", ctl.MarkRead)
}

// Base: /api/a
func NotificationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewNotificationController(db)
	r.Post("/notifications", ctl.Send)
}
