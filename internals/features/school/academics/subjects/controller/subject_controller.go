package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/academics/subjects/dto"
	"estudify_backend/internals/features/school/academics/subjects/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type SubjectController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db, Validate: validator.New()}
}

// GET /api/a/subjects
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	var q dto.ListSubjectsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 100)
	list, total, err := service.ListSubjects(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildPagination(total, p))
}

// POST /api/a/subjects
func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	var req dto.SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := service.CreateSubject(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Subject berhasil dibuat", dto.FromModel(*m))
}

// PUT /api/a/subjects/:id
func (ctl *SubjectController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := service.UpdateSubject(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Subject berhasil diperbarui", dto.FromModel(*m))
}

// PATCH /api/a/subjects/:id/deactivate
func (ctl *SubjectController) Deactivate(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := service.DeactivateSubject(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Subject dinonaktifkan", dto.FromModel(*m))
}

// DELETE /api/a/subjects/:id
func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeleteSubject(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Subject berhasil dihapus", fiber.Map{"subject_id": id})
}
