// file: internals/features/school/notifications/model/notification_model.go
package model

import (
	"time"

	userModel "estudify_backend/internals/features/users/user/model"
)

type Type string

const (
	TypeGrade      Type = "grade"
	TypeAttendance Type = "attendance"
	TypeGeneral    Type = "general"
)

func (t Type) Valid() bool {
	switch t {
	case TypeGrade, TypeAttendance, TypeGeneral:
		return true
	}
	return false
}

const MaxTitleLen = 200

type NotificationModel struct {
	NotificationID        uint      `gorm:"column:notification_id;primaryKey;autoIncrement"                       json:"notification_id"`
	NotificationStudentID uint      `gorm:"column:notification_student_id;not null;index:idx_notifications_student" json:"notification_student_id"`
	NotificationType      Type      `gorm:"column:notification_type;type:varchar(20);not null"                    json:"notification_type"`
	NotificationTitle     string    `gorm:"column:notification_title;type:varchar(200);not null"                  json:"notification_title"`
	NotificationBody      string    `gorm:"column:notification_body;type:text;not null"                           json:"notification_body"`
	NotificationIsRead    bool      `gorm:"column:notification_is_read;not null;index:idx_notifications_read"     json:"notification_is_read"`
	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;not null;autoCreateTime"                json:"notification_created_at"`

	Student *userModel.UserModel `gorm:"foreignKey:NotificationStudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (NotificationModel) TableName() string { return "notifications" }
