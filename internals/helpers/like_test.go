package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%ana%", ContainsPattern("ana"))
	assert.Equal(t, `%\_%`, ContainsPattern("_"))
	assert.Equal(t, `%100\%%`, ContainsPattern("100%"))
	assert.Equal(t, `%a\\b%`, ContainsPattern(`a\b`))
}
