package seeds

import (
	"log"

	"gorm.io/gorm"

	"estudify_backend/internals/configs"
	userService "estudify_backend/internals/features/users/user/service"
	users "estudify_backend/internals/seeds/users/auth"
)

// EnsureAdmin membuat admin awal dari ENV kalau belum ada (aman dijalankan berulang).
func EnsureAdmin(db *gorm.DB) {
	created, err := userService.EnsureInitialAdmin(db, configs.AdminUsername, configs.AdminEmail, configs.AdminPassword)
	if err != nil {
		log.Printf("[ERROR] bootstrap admin: %+v", err)
		return
	}
	if created {
		log.Printf("✅ Admin awal '%s' dibuat", configs.AdminUsername)
	} else {
		log.Printf("ℹ️ Admin '%s' sudah ada, dilewati", configs.AdminUsername)
	}
}

func RunAllSeeds(db *gorm.DB) {
	EnsureAdmin(db)

	//* User demo (SEED_DEMO=true)
	if configs.GetEnvBool("SEED_DEMO", false) {
		if err := users.SeedUsersFromJSON(db, "internals/seeds/users/auth/data_users.json"); err != nil {
			log.Printf("[ERROR] seed users: %v", err)
		}
	}
}
