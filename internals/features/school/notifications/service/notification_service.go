package service

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/constants"
	"estudify_backend/internals/features/school/notifications/dto"
	"estudify_backend/internals/features/school/notifications/model"
	userModel "estudify_backend/internals/features/users/user/model"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

const featureNotification = "notifikasi"

// Emit menulis satu notifikasi memakai tx milik pemanggil, jadi ikut
// rollback kalau langkah lain di transaksi itu gagal.
func Emit(tx *gorm.DB, studentID uint, typ model.Type, title, body string) (*model.NotificationModel, error) {
	if !typ.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tipe notifikasi tidak valid")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Judul notifikasi wajib diisi")
	}
	if utf8.RuneCountInString(title) > model.MaxTitleLen {
		title = string([]rune(title)[:model.MaxTitleLen])
	}

	n := &model.NotificationModel{
		NotificationStudentID: studentID,
		NotificationType:      typ,
		NotificationTitle:     title,
		NotificationBody:      body,
		NotificationIsRead:    false,
	}
	if err := tx.Create(n).Error; err != nil {
		return nil, helper.Internal(err, "emit notification")
	}
	return n, nil
}

/* =========================================================
   STUDENT
========================================================= */

func ListMine(db *gorm.DB, caller helperAuth.Identity, unreadOnly bool, p helper.Paging) ([]model.NotificationModel, int64, error) {
	if err := helperAuth.RequireStudent(caller, featureNotification); err != nil {
		return nil, 0, err
	}
	tx := db.Model(&model.NotificationModel{}).Where("notification_student_id = ?", caller.UserID)
	if unreadOnly {
		tx = tx.Where("notification_is_read = ?", false)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, helper.Internal(err, "count notifications")
	}
	var list []model.NotificationModel
	if err := tx.Order("notification_created_at DESC").Order("notification_id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return nil, 0, helper.Internal(err, "list notifications")
	}
	return list, total, nil
}

// RecentUnread dipakai dashboard student.
func RecentUnread(db *gorm.DB, studentID uint, limit int) ([]model.NotificationModel, error) {
	var list []model.NotificationModel
	if err := db.Where("notification_student_id = ? AND notification_is_read = ?", studentID, false).
		Order("notification_created_at DESC").Order("notification_id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, helper.Internal(err, "list unread notifications")
	}
	return list, nil
}

// MarkRead: notifikasi milik student lain diperlakukan sama dengan tidak ada.
func MarkRead(db *gorm.DB, caller helperAuth.Identity, id uint) (*model.NotificationModel, error) {
	if err := helperAuth.RequireStudent(caller, featureNotification); err != nil {
		return nil, err
	}
	var n model.NotificationModel
	if err := db.First(&n, "notification_id = ? AND notification_student_id = ?", id, caller.UserID).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Notifikasi tidak ditemukan")
		}
		return nil, helper.Internal(err, "load notification")
	}
	if n.NotificationIsRead {
		return &n, nil
	}
	if err := db.Model(&model.NotificationModel{}).Where("notification_id = ?", id).
		Update("notification_is_read", true).Error; err != nil {
		return nil, helper.Internal(err, "mark notification read")
	}
	n.NotificationIsRead = true
	return &n, nil
}

func MarkAllRead(db *gorm.DB, caller helperAuth.Identity) (int64, error) {
	if err := helperAuth.RequireStudent(caller, featureNotification); err != nil {
		return 0, err
	}
	res := db.Model(&model.NotificationModel{}).
		Where("notification_student_id = ? AND notification_is_read = ?", caller.UserID, false).
		Update("notification_is_read", true)
	if res.Error != nil {
		return 0, helper.Internal(res.Error, "mark all notifications read")
	}
	return res.RowsAffected, nil
}

/* =========================================================
   ADMIN
========================================================= */

func SendGeneral(db *gorm.DB, caller helperAuth.Identity, req dto.SendNotificationRequest) (*model.NotificationModel, error) {
	if err := helperAuth.RequireAdmin(caller, featureNotification); err != nil {
		return nil, err
	}
	var out *model.NotificationModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var student userModel.UserModel
		if err := tx.First(&student, "id = ?", req.StudentID).Error; err != nil {
			if helper.IsNotFound(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Student tidak ditemukan")
			}
			return helper.Internal(err, "load student")
		}
		if student.Role != constants.RoleStudent {
			return fiber.NewError(fiber.StatusBadRequest, "Penerima harus student")
		}
		n, err := Emit(tx, student.ID, model.TypeGeneral, req.Title, req.Body)
		if err != nil {
			return err
		}
		out = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[NOTIF] %s → student #%d: %s", caller.UserName, req.StudentID, out.NotificationTitle)
	return out, nil
}
