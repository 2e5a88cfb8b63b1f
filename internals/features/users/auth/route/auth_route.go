// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/users/auth/controller"
	rateLimiter "estudify_backend/internals/middlewares"
	authMiddleware "estudify_backend/internals/middlewares/auth"
)

// Base: /api/auth + /api/dashboard
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)
	protected := authMiddleware.AuthMiddleware(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)

	// 🔒 Protected
	baseAuth.Post("/logout", protected, authController.Logout)
	baseAuth.Post("/change-password", protected, authController.ChangePassword)
	baseAuth.Get("/me", protected, authController.Me)

	app.Get("/api/dashboard", protected, authController.Dashboard)
}
