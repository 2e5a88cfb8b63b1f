package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, Rate(0, 0))
	assert.Equal(t, 50.0, Rate(2, 4))
	assert.Equal(t, 66.7, Rate(2, 3))
	assert.Equal(t, 100.0, Rate(5, 5))
}

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("sick").Valid())
	assert.Equal(t, "Late", StatusLate.Label())
}
