// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rateLimiter "estudify_backend/internals/middlewares"
	authMiddleware "estudify_backend/internals/middlewares/auth"
	routeDetails "estudify_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================
	api := app.Group("/api", rateLimiter.GlobalRateLimiter())
	protected := authMiddleware.AuthMiddleware(db)

	log.Println("[INFO] Setting up ADMIN group (Auth + OnlyAdmin)...")
	admin := api.Group("/a", protected, authMiddleware.OnlyAdmin("panel admin"))
	routeDetails.AdminRoutes(admin, db)

	log.Println("[INFO] Setting up TEACHER group (Auth + OnlyTeacher)...")
	teacher := api.Group("/t", protected, authMiddleware.OnlyTeacher("panel teacher"))
	routeDetails.TeacherRoutes(teacher, db)

	log.Println("[INFO] Setting up STUDENT group (Auth + OnlyStudent)...")
	student := api.Group("/s", protected, authMiddleware.OnlyStudent("panel student"))
	routeDetails.StudentRoutes(student, db)

	log.Println("[INFO] All routes mounted")
}
