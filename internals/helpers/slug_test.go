package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "matematicas-10", Slugify("  Matemáticas 10° ", 0))
	assert.Equal(t, "item", Slugify("###", 0))
	assert.Equal(t, "abc", Slugify("abc-def", 3))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "MAT-101", NormalizeCode(" mat-101 "))
	assert.Equal(t, "MAT-101", NormalizeCode("ＭＡＴ-101"))
	assert.Equal(t, "MAT101", NormalizeCode("mat 101"))
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "ana", NormalizeUsername("  Ana "))
}
