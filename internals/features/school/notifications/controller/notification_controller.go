package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/school/notifications/dto"
	"estudify_backend/internals/features/school/notifications/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type NotificationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db, Validate: validator.New()}
}

// GET /api/s/notifications?unread=true
func (ctl *NotificationController) ListMine(c *fiber.Ctx) error {
	var q dto.ListNotificationsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 100)
	list, total, err := service.ListMine(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), q.UnreadOnly(), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildPagination(total, p))
}

// PATCH /api/s/notifications/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := service.MarkRead(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Notifikasi ditandai sudah dibaca", dto.FromModel(*n))
}

// PATCH /api/s/notifications/read-all
func (ctl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	n, err := service.MarkAllRead(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Semua notifikasi ditandai sudah dibaca", fiber.Map{"updated": n})
}

// POST /api/a/notifications
func (ctl *NotificationController) Send(c *fiber.Ctx) error {
	var req dto.SendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	n, err := service.SendGeneral(ctl.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Notifikasi terkirim", dto.FromModel(*n))
}
