package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/academics/courses/dto"
	"estudify_backend/internals/features/school/academics/courses/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type CourseController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db, Validate: validator.New()}
}

// GET /api/a/courses
func (ctl *CourseController) List(c *fiber.Ctx) error {
	var q dto.ListCoursesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 100)
	list, total, err := service.ListCourses(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildPagination(total, p))
}

// POST /api/a/courses
func (ctl *CourseController) Create(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := service.CreateCourse(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Course berhasil dibuat", dto.FromModel(*m))
}

// PUT /api/a/courses/:id
func (ctl *CourseController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := service.UpdateCourse(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Course berhasil diperbarui", dto.FromModel(*m))
}

// PATCH /api/a/courses/:id/deactivate
func (ctl *CourseController) Deactivate(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := service.DeactivateCourse(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Course dinonaktifkan", dto.FromModel(*m))
}

// DELETE /api/a/courses/:id
func (ctl *CourseController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeleteCourse(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Course berhasil dihapus", fiber.Map{"course_id": id})
}
