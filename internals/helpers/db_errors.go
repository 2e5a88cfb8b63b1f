package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// IsDuplicateKey mengenali pelanggaran unique index dari Postgres (23505),
// error hasil TranslateError GORM, atau pesan driver lain (SQLite).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Internal membungkus error store dengan stack trace; FromFiberError
// mencetaknya dengan %+v dan membalas 500.
func Internal(err error, op string) error {
	if err == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return err
	}
	return pkgErrors.Wrap(err, op)
}

// StatusOf: kode HTTP yang akan dipakai FromFiberError untuk err.
func StatusOf(err error) int {
	if err == nil {
		return fiber.StatusOK
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
