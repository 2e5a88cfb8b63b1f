package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradePassedIsDerived(t *testing.T) {
	g := GradeModel{GradeScore: 3.0}
	assert.True(t, g.Passed())

	g.GradeScore = 2.99
	assert.False(t, g.Passed())

	g.GradeScore = 4.5
	assert.True(t, g.Passed())
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 3.0, Average([]float64{4.0, 2.0}))
	assert.Equal(t, 3.67, Average([]float64{4.0, 3.0, 4.0}))
	assert.Equal(t, 4.5, Average([]float64{4.5}))
}

func TestValidScore(t *testing.T) {
	assert.NoError(t, ValidScore(0))
	assert.NoError(t, ValidScore(5))
	assert.NoError(t, ValidScore(3.75))
	assert.Error(t, ValidScore(-0.01))
	assert.Error(t, ValidScore(5.01))
	assert.Error(t, ValidScore(3.755))
}

func TestPeriod(t *testing.T) {
	assert.True(t, Period("final").Valid())
	assert.True(t, Period("3").Valid())
	assert.False(t, Period("5").Valid())
	assert.False(t, Period("").Valid())
	assert.Equal(t, "Period 2", Period2.Label())
	assert.Equal(t, "Final", PeriodFinal.Label())
}
