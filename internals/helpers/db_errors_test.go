package helper

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	pkgErrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: grades.grade_student_id")))
	assert.False(t, IsDuplicateKey(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
}

func TestInternalWrapsStoreErrors(t *testing.T) {
	base := errors.New("connection reset")
	err := Internal(base, "create grade")

	assert.ErrorIs(t, err, base)
	assert.Equal(t, base, pkgErrors.Cause(err))
	assert.Contains(t, err.Error(), "create grade")
	assert.Equal(t, fiber.StatusInternalServerError, StatusOf(err))

	fe := fiber.NewError(fiber.StatusConflict, "dup")
	assert.Same(t, fe, Internal(fe, "ignored"))
	assert.Equal(t, fiber.StatusConflict, StatusOf(fe))
	assert.Nil(t, Internal(nil, "noop"))
}
