// internals/middlewares/auth/claims_utils.go
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRepo "estudify_backend/internals/features/users/auth/repository"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	// 1) Ambil dari Authorization header atau fallback cookie
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("Unauthorized - No token provided")
	}

	// 2) Toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("Unauthorized - Invalid token format")
	}

	// 3) Buang kutip di kiri/kanan
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("Unauthorized - Empty token")
	}
	return tok, nil
}

func asUnauthorized(err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token invalid or expired")
}

// loadIdentity: token hanya menunjuk user; role & staff selalu dibaca ulang dari DB.
func loadIdentity(db *gorm.DB, userID uint) (helperAuth.Identity, error) {
	if userID == 0 {
		return helperAuth.Anonymous, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
	}
	row, err := authRepo.FindUserAuthState(db, userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return helperAuth.Anonymous, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
		}
		return helperAuth.Anonymous, helper.Internal(err, "load user auth state")
	}
	if !row.IsActive {
		return helperAuth.Anonymous, fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if !row.Role.Valid() {
		return helperAuth.Anonymous, fiber.NewError(fiber.StatusForbidden, "Role user tidak dikenal")
	}
	return helperAuth.Identity{
		UserID:   row.ID,
		UserName: row.UserName,
		Role:     row.Role,
		IsStaff:  row.IsStaff,
	}, nil
}

/* ======== Store claims to Locals ======== */

func storeIdentityToLocals(c *fiber.Ctx, ident helperAuth.Identity, raw string) {
	helperAuth.SetIdentity(c, ident)
	helper.SetRawAccessToken(c, raw)
	c.Locals("user_id", ident.UserID)
	c.Locals("userRole", string(ident.Role))
	c.Locals("user_name", ident.UserName)
}
