package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "estudify_backend/internals/helpers"
	helperAuth "estudify_backend/internals/helpers/auth"
)

type gate func(i helperAuth.Identity, feature string) error

func only(check gate, feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := check(helperAuth.GetIdentity(c), feature); err != nil {
			return helper.FromFiberError(c, err)
		}
		return c.Next()
	}
}

// Shortcut biar lebih clean pemakaian di route group
func OnlyAdmin(feature string) fiber.Handler   { return only(helperAuth.RequireAdmin, feature) }
func OnlyTeacher(feature string) fiber.Handler { return only(helperAuth.RequireTeacher, feature) }
func OnlyStudent(feature string) fiber.Handler { return only(helperAuth.RequireStudent, feature) }
