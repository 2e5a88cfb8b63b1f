package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hashed)
	assert.NoError(t, CheckPasswordHash(hashed, "rahasia123"))
	assert.Error(t, CheckPasswordHash(hashed, "salah"))
}

func TestValidateNewPassword(t *testing.T) {
	assert.NoError(t, ValidateNewPassword("abc12345"))
	assert.Error(t, ValidateNewPassword("abc123"))
	assert.Error(t, ValidateNewPassword("abcdefghij"))
	assert.Error(t, ValidateNewPassword("1234567890"))
}
