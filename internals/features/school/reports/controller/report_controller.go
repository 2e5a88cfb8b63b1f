package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceDTO "estudify_backend/internals/features/school/attendance/dto"
	"estudify_backend/internals/features/school/reports/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func sendExport(c *fiber.Ctx, out *service.Export) error {
	c.Attachment(out.Filename)
	c.Set(fiber.HeaderContentType, service.ContentTypeXLSX)
	return c.Send(out.Body)
}

// GET /api/s/export/grades.xlsx
func (ctl *ReportController) MyGrades(c *fiber.Ctx) error {
	out, err := service.StudentGradesExport(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return sendExport(c, out)
}

// GET /api/{a,t}/reports/subjects/:id.xlsx
func (ctl *ReportController) SubjectReport(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := service.SubjectReportExport(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return sendExport(c, out)
}

// GET /api/t/reports/attendance.xlsx?subject_id=&status=&date=
func (ctl *ReportController) Attendance(c *fiber.Ctx) error {
	var q attendanceDTO.ListAttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	out, err := service.AttendanceExport(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), q, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return sendExport(c, out)
}
