package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/attendance/dto"
	"estudify_backend/internals/features/school/attendance/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type AttendanceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, Validate: validator.New()}
}

// GET /api/t/attendance?subject_id=&status=&date=
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	var q dto.ListAttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 200)
	list, total, err := service.ListTeacherAttendance(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildPagination(total, p))
}

// POST /api/t/attendance
func (ctl *AttendanceController) Create(c *fiber.Ctx) error {
	var req dto.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	a, err := service.CreateAttendance(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Absensi berhasil dicatat", dto.FromModel(*a))
}

// PUT /api/t/attendance/:id
func (ctl *AttendanceController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	a, err := service.UpdateAttendance(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Absensi berhasil diperbarui", dto.FromModel(*a))
}

// DELETE /api/t/attendance/:id
func (ctl *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeleteAttendance(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Absensi berhasil dihapus", fiber.Map{"attendance_id": id})
}

// GET /api/t/attendance/rate?subject_id=&month=YYYY-MM
func (ctl *AttendanceController) Rate(c *fiber.Ctx) error {
	var q dto.RateQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	rate, err := service.SubjectRate(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), q)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"subject_id": q.SubjectID, "month": q.Month, "rate": rate})
}

// GET /api/s/attendance
func (ctl *AttendanceController) Mine(c *fiber.Ctx) error {
	out, err := service.MyAttendance(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
