package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/enrollments/dto"
	"estudify_backend/internals/features/school/enrollments/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type AdminEnrollmentController struct {
	DB *gorm.DB
}

func NewAdminEnrollmentController(db *gorm.DB) *AdminEnrollmentController {
	return &AdminEnrollmentController{DB: db}
}

// GET /api/a/enrollments?course_id=&student_id=&active=
func (ctl *AdminEnrollmentController) List(c *fiber.Ctx) error {
	var q dto.ListEnrollmentsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 100)
	list, total, err := service.ListEnrollments(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildPagination(total, p))
}

// PATCH /api/a/enrollments/:id/deactivate
func (ctl *AdminEnrollmentController) Deactivate(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := service.DeactivateEnrollment(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Enrollment dinonaktifkan", dto.FromModel(*m))
}

// DELETE /api/a/enrollments/:id
func (ctl *AdminEnrollmentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeleteEnrollment(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Enrollment berhasil dihapus", fiber.Map{"enrollment_id": id})
}
