package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estudify_backend/internals/features/users/auth/dto"
	"estudify_backend/internals/features/users/auth/service"
	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := service.Login(ac.DB.WithContext(c.UserContext()), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return helper.JsonOK(c, "Login berhasil", res)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := service.Logout(ac.DB.WithContext(c.UserContext()), helper.GetRawAccessToken(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Path:     "/",
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	res, err := service.Me(ac.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := service.ChangePassword(ac.DB.WithContext(c.UserContext()), helperAuth.GetIdentity(c), req); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil diubah", nil)
}

// GET /api/dashboard → route dashboard sesuai role
func (ac *AuthController) Dashboard(c *fiber.Ctx) error {
	route, err := helperAuth.DashboardRoute(helperAuth.GetIdentity(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"route": route})
}
