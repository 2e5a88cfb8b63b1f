package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/dashboard/dto"
	"estudify_backend/internals/features/school/dashboard/service"
	userDTO "estudify_backend/internals/features/users/user/dto"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GET /api/a/dashboard
func (ctl *DashboardController) Admin(c *fiber.Ctx) error {
	out, err := service.AdminDashboard(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/t/dashboard
func (ctl *DashboardController) Teacher(c *fiber.Ctx) error {
	out, err := service.TeacherDashboard(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/t/statistics
func (ctl *DashboardController) Statistics(c *fiber.Ctx) error {
	out, err := service.TeacherStatistics(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", out, nil)
}

// GET /api/t/students?subject_id=
func (ctl *DashboardController) Students(c *fiber.Ctx) error {
	var q dto.TeacherStudentsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	list, err := service.TeacherStudents(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), q)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", userDTO.FromModels(list), nil)
}

// GET /api/s/dashboard
func (ctl *DashboardController) Student(c *fiber.Ctx) error {
	out, err := service.StudentDashboard(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
