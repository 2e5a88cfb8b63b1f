package logger

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LocRequestID diisi middleware request-id di main.go.
const LocRequestID = "reqid"

// Format akses log; id & user kosong kalau locals belum diisi.
const accessFormat = "[${time}] [ACCESS] id=${locals:" + LocRequestID + "} user=${locals:user_name} ${ip} ${method} ${path} -> ${status} ${latency}\n"

// LoggerMiddleware untuk mencatat semua request
func LoggerMiddleware() fiber.Handler {
	return New(os.Stdout)
}

func New(out io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Format:     accessFormat,
		Output:     out,
	})
}
