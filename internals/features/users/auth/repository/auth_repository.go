// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estudify_backend/internals/constants"
	authModel "estudify_backend/internals/features/users/auth/model"
	userModel "estudify_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmailOrUsername(db *gorm.DB, identifier string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_name = ? OR LOWER(email) = ?", identifier, identifier).
		Order("id ASC").
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uint) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UserAuthState: kolom user yang menentukan hak akses per request.
type UserAuthState struct {
	ID       uint
	UserName string
	Role     constants.Role
	IsStaff  bool
	IsActive bool
}

func FindUserAuthState(db *gorm.DB, userID uint) (*UserAuthState, error) {
	var row UserAuthState
	if err := db.Model(&userModel.UserModel{}).
		Select("id, user_name, role, is_staff, is_active").
		Where("id = ?", userID).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func UpdateUserPassword(db *gorm.DB, userID uint, hashed string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", hashed).Error
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken idempotent: logout dua kali dengan token sama tidak error.
func BlacklistToken(db *gorm.DB, token string, expiredAt time.Time) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoNothing: true,
	}).Create(&authModel.TokenBlacklistModel{
		Token:     token,
		ExpiredAt: expiredAt.UTC(),
	}).Error
}

func IsTokenBlacklisted(db *gorm.DB, token string) (bool, error) {
	var n int64
	if err := db.Model(&authModel.TokenBlacklistModel{}).Where("token = ?", token).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func CleanupExpiredBlacklist(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expired_at <= ?", now.UTC()).Delete(&authModel.TokenBlacklistModel{})
	return res.RowsAffected, res.Error
}
