package helper

import (
	"github.com/gofiber/fiber/v2"

	"estudify_backend/internals/constants"
)

// Key Locals yang diisi AuthMiddleware
const LocIdentity = "identity"

// Identity adalah caller yang sudah terverifikasi. Semua operasi ledger
// menerima nilai ini secara eksplisit (bukan membaca "current user" global).
type Identity struct {
	UserID   uint
	UserName string
	Role     constants.Role
	IsStaff  bool
}

// Anonymous dipakai ketika request tidak membawa token valid.
var Anonymous = Identity{}

func (i Identity) Authenticated() bool {
	return i.UserID != 0 && i.Role.Valid()
}

// IsAdmin: flag staff menang atas role (akun admin lama bisa punya role lain).
func (i Identity) IsAdmin() bool {
	return i.Authenticated() && (i.IsStaff || i.Role == constants.RoleAdmin)
}

func (i Identity) IsTeacher() bool {
	return i.Authenticated() && !i.IsAdmin() && i.Role == constants.RoleTeacher
}

func (i Identity) IsStudent() bool {
	return i.Authenticated() && !i.IsAdmin() && i.Role == constants.RoleStudent
}

// DashboardRoute mengklasifikasi identity ke tepat satu dashboard.
func DashboardRoute(i Identity) (string, error) {
	if err := RequireAuthenticated(i); err != nil {
		return "", err
	}
	switch {
	case i.IsAdmin():
		return constants.DashboardAdmin, nil
	case i.Role == constants.RoleTeacher:
		return constants.DashboardTeacher, nil
	default:
		return constants.DashboardStudent, nil
	}
}

/* ==========================
   Authorization checks
========================== */

func RequireAuthenticated(i Identity) error {
	if !i.Authenticated() {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - login diperlukan")
	}
	return nil
}

func RequireAdmin(i Identity, feature string) error {
	if err := RequireAuthenticated(i); err != nil {
		return err
	}
	if !i.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
	}
	return nil
}

func RequireTeacher(i Identity, feature string) error {
	if err := RequireAuthenticated(i); err != nil {
		return err
	}
	if !i.IsTeacher() {
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorTeacher(feature))
	}
	return nil
}

func RequireStudent(i Identity, feature string) error {
	if err := RequireAuthenticated(i); err != nil {
		return err
	}
	if !i.IsStudent() {
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorStudent(feature))
	}
	return nil
}

func RequireAdminOrTeacher(i Identity, feature string) error {
	if err := RequireAuthenticated(i); err != nil {
		return err
	}
	if !i.IsAdmin() && !i.IsTeacher() {
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorStaff(feature))
	}
	return nil
}

/* ==========================
   Locals bridge
========================== */

func SetIdentity(c *fiber.Ctx, i Identity) {
	c.Locals(LocIdentity, i)
}

// GetIdentity tidak pernah gagal; tanpa token hasilnya Anonymous.
func GetIdentity(c *fiber.Ctx) Identity {
	if v, ok := c.Locals(LocIdentity).(Identity); ok {
		return v
	}
	return Anonymous
}
