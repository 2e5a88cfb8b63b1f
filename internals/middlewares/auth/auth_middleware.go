// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/configs"
	authRepo "estudify_backend/internals/features/users/auth/repository"
	authService "estudify_backend/internals/features/users/auth/service"
	helper "estudify_backend/internals/helpers"
)

// AuthMiddleware memverifikasi access token dan menaruh Identity di Locals.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		// 2) Cek blacklist (sekali per request)
		if c.Locals("token_checked") == nil {
			black, err := authRepo.IsTokenBlacklisted(db, tokenString)
			if err != nil {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if black {
				log.Println("[WARNING] Token ditemukan di blacklist")
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}
			c.Locals("token_checked", true)
		}

		// 3) Parse & verifikasi JWT (signature + exp)
		claims, err := authService.ParseAccessToken(tokenString, configs.JWTSecret)
		if err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return helper.FromFiberError(c, asUnauthorized(err))
		}

		// 4) Identity dari baris user terkini (role bisa berubah setelah token terbit)
		ident, err := loadIdentity(db, claims.UserID)
		if err != nil {
			return helper.FromFiberError(c, err)
		}

		if claims.Role != string(ident.Role) {
			log.Printf("[AUTH] role user %d berubah: token=%s db=%s", ident.UserID, claims.Role, ident.Role)
		}

		// 5) Simpan ke context
		storeIdentityToLocals(c, ident, tokenString)
		return c.Next()
	}
}
