package helper

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error hasil service/Transaction (biasanya *fiber.Error)
// menjadi response JSON konsisten. Error lain dianggap 500 dan tidak dibocorkan ke client.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ValidationError(c, ve)
	}
	log.Printf("[ERROR] %s %s: %+v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// ValidationError memetakan validator.ValidationErrors ke 422 per field.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = append(fields[fe.Field()], validationMessage(fe))
	}
	return JsonValidationError(c, fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " wajib diisi."
	case "email":
		return "Format email tidak valid."
	case "min":
		return fe.Field() + " minimal " + fe.Param() + "."
	case "max":
		return fe.Field() + " maksimal " + fe.Param() + "."
	case "oneof":
		return fe.Field() + " harus salah satu dari " + fe.Param() + "."
	case "gte", "lte":
		return fe.Field() + " di luar rentang yang diizinkan."
	case "datetime":
		return fe.Field() + " harus berformat " + fe.Param() + "."
	default:
		return "Format tidak valid."
	}
}
