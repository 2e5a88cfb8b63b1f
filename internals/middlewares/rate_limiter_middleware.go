package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"estudify_backend/internals/configs"
	helper "estudify_backend/internals/helpers"
)

func limitByIP(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return limitByIP(
		configs.GetEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		time.Minute,
		"❌ Terlalu banyak permintaan. Silakan coba lagi nanti.",
	)
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return limitByIP(
		configs.GetEnvInt("LOGIN_RATE_LIMIT_PER_MINUTE", 5),
		time.Minute,
		"❌ Terlalu banyak percobaan login. Coba beberapa saat lagi.",
	)
}
