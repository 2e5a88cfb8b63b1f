package service

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/configs"
	"estudify_backend/internals/features/users/auth/dto"
	authHelper "estudify_backend/internals/features/users/auth/helper"
	authRepo "estudify_backend/internals/features/users/auth/repository"
	userDTO "estudify_backend/internals/features/users/user/dto"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

func nowUTC() time.Time { return time.Now().UTC() }

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, req dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := helper.NormalizeUsername(req.Identifier)
	if identifier == "" || req.Password == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Identifier dan password wajib diisi")
	}

	user, err := authRepo.FindUserByEmailOrUsername(db, identifier)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
		}
		return nil, helper.Internal(err, "find user for login")
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	token, exp, err := IssueAccessToken(user, configs.JWTSecret, configs.JWTAccessTTL, nowUTC())
	if err != nil {
		return nil, helper.Internal(err, "issue access token")
	}

	dashboard, err := helperAuth.DashboardRoute(identityOf(user.ID, user.UserName, string(user.Role), user.IsStaff))
	if err != nil {
		return nil, err
	}

	log.Printf("[AUTH] login %s (%s)", user.UserName, user.Role)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		Dashboard:   dashboard,
		User:        userDTO.FromModel(*user),
	}, nil
}

/* ==========================
   LOGOUT
========================== */

// Logout mem-blacklist token sampai exp-nya lewat.
func Logout(db *gorm.DB, rawToken string) error {
	if rawToken == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - No token provided")
	}
	expiredAt := nowUTC().Add(configs.BlacklistTTL)
	if claims, err := ParseAccessToken(rawToken, configs.JWTSecret); err == nil && claims.ExpiresAt != nil {
		expiredAt = claims.ExpiresAt.Time
	}
	if err := authRepo.BlacklistToken(db, rawToken, expiredAt); err != nil {
		return helper.Internal(err, "blacklist token")
	}
	return nil
}

/* ==========================
   ME
========================== */

func Me(db *gorm.DB, caller helperAuth.Identity) (*dto.MeResponse, error) {
	if err := helperAuth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	user, err := authRepo.FindUserByID(db, caller.UserID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, helper.Internal(err, "load me")
	}
	dashboard, err := helperAuth.DashboardRoute(identityOf(user.ID, user.UserName, string(user.Role), user.IsStaff))
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{Dashboard: dashboard, User: userDTO.FromModel(*user)}, nil
}

/* ==========================
   CHANGE PASSWORD
========================== */

func ChangePassword(db *gorm.DB, caller helperAuth.Identity, req dto.ChangePasswordRequest) error {
	if err := helperAuth.RequireAuthenticated(caller); err != nil {
		return err
	}
	if err := authHelper.ValidateNewPassword(req.NewPassword); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := authRepo.FindUserByID(db, caller.UserID)
	if err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}
		return helper.Internal(err, "load user")
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.CurrentPassword); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Current password incorrect")
	}
	if req.CurrentPassword == req.NewPassword {
		return fiber.NewError(fiber.StatusBadRequest, "Password baru harus berbeda")
	}

	hashed, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return helper.Internal(err, "hash password")
	}
	if err := authRepo.UpdateUserPassword(db, user.ID, hashed); err != nil {
		return helper.Internal(err, "update password")
	}
	return nil
}

func identityOf(id uint, username, role string, isStaff bool) helperAuth.Identity {
	c := AccessClaims{UserID: id, UserName: username, Role: role, IsStaff: isStaff}
	ident, err := c.Identity()
	if err != nil {
		return helperAuth.Anonymous
	}
	return ident
}
