package dto

import (
	"strings"
	"time"

	"estudify_backend/internals/features/school/notifications/model"
)

// Admin → student (tipe general)
type SendNotificationRequest struct {
	StudentID uint   `json:"notification_student_id" form:"notification_student_id" validate:"required,gt=0"`
	Title     string `json:"notification_title"      form:"notification_title"      validate:"required,max=200"`
	Body      string `json:"notification_body"       form:"notification_body"       validate:"required,max=5000"`
}

func (r *SendNotificationRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
}

type ListNotificationsQuery struct {
	Unread string `query:"unread"` // "true" = hanya yang belum dibaca
}

func (q ListNotificationsQuery) UnreadOnly() bool {
	switch strings.ToLower(strings.TrimSpace(q.Unread)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

type NotificationResponse struct {
	NotificationID        uint       `json:"notification_id"`
	NotificationType      model.Type `json:"notification_type"`
	NotificationTitle     string     `json:"notification_title"`
	NotificationBody      string     `json:"notification_body"`
	NotificationIsRead    bool       `json:"notification_is_read"`
	NotificationCreatedAt time.Time  `json:"notification_created_at"`
}

func FromModel(m model.NotificationModel) NotificationResponse {
	return NotificationResponse{
		NotificationID:        m.NotificationID,
		NotificationType:      m.NotificationType,
		NotificationTitle:     m.NotificationTitle,
		NotificationBody:      m.NotificationBody,
		NotificationIsRead:    m.NotificationIsRead,
		NotificationCreatedAt: m.NotificationCreatedAt,
	}
}

func FromModels(list []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
