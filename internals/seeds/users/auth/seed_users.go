package user

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"estudify_backend/internals/constants"
	authHelper "estudify_backend/internals/features/users/auth/helper"
	"estudify_backend/internals/features/users/user/model"
	helper "estudify_backend/internals/helpers"
)

type UserSeed struct {
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// SeedUsersFromJSON menambah user demo; user yang username-nya sudah ada dilewati.
func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return err
	}

	for _, data := range inputs {
		username := helper.NormalizeUsername(data.UserName)
		var n int64
		if err := db.Model(&model.UserModel{}).Where("user_name = ?", username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			log.Printf("ℹ️ User '%s' sudah ada, dilewati.", username)
			continue
		}

		role, err := constants.ParseRole(data.Role)
		if err != nil {
			log.Printf("❌ Role user '%s' tidak valid: %v", username, err)
			continue
		}

		// 🔐 Hash password sebelum disimpan
		hashedPassword, err := authHelper.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", username, err)
			continue
		}

		newUser := model.UserModel{
			UserName:  username,
			Email:     data.Email,
			FirstName: data.FirstName,
			LastName:  data.LastName,
			Password:  hashedPassword,
			Role:      role,
			IsActive:  true,
		}
		newUser.SetDefaultValues()

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", username, err)
		} else {
			log.Printf("✅ Berhasil insert user '%s'", username)
		}
	}
	return nil
}
