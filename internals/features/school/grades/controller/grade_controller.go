package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/grades/dto"
	"estudify_backend/internals/features/school/grades/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type GradeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewGradeController(db *gorm.DB) *GradeController {
	return &GradeController{DB: db, Validate: validator.New()}
}

// GET /api/t/grades?subject_id=&period=&search=
func (ctl *GradeController) List(c *fiber.Ctx) error {
	var q dto.ListGradesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 200)
	list, total, err := service.ListTeacherGrades(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildPagination(total, p))
}

// POST /api/t/grades
func (ctl *GradeController) Create(c *fiber.Ctx) error {
	var req dto.CreateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	g, err := service.CreateGrade(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Nilai berhasil disimpan", dto.FromModel(*g))
}

// PUT /api/t/grades/:id
func (ctl *GradeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	g, err := service.UpdateGrade(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Nilai berhasil diperbarui", dto.FromModel(*g))
}

// DELETE /api/t/grades/:id
func (ctl *GradeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeleteGrade(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Nilai berhasil dihapus", fiber.Map{"grade_id": id})
}

// GET /api/s/grades
func (ctl *GradeController) Mine(c *fiber.Ctx) error {
	out, err := service.MyGrades(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
