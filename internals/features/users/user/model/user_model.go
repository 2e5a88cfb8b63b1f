package model

import (
	"strings"
	"time"

	"estudify_backend/internals/constants"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserName  string         `gorm:"size:50;not null;uniqueIndex:uq_users_user_name" json:"user_name"`
	Email     string         `gorm:"size:255;not null" json:"email"`
	FirstName string         `gorm:"size:150" json:"first_name"`
	LastName  string         `gorm:"size:150" json:"last_name"`
	Password  string         `gorm:"not null" json:"-"`
	Role      constants.Role `gorm:"type:varchar(20);not null;default:'student';index:idx_users_role" json:"role"`
	IsStaff   bool           `gorm:"not null;default:false" json:"is_staff"`
	IsActive  bool           `gorm:"not null;index:idx_users_active" json:"is_active"`
	JoinedAt  time.Time      `gorm:"autoCreateTime" json:"joined_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// FullName: "First Last", fallback ke username.
func (u UserModel) FullName() string {
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full == "" {
		return u.UserName
	}
	return full
}

// SetDefaultValues: role kosong → student; admin selalu staff.
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = constants.RoleStudent
	}
	u.IsStaff = u.Role == constants.RoleAdmin
}
