package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimensionNames(t *testing.T) {
	assert.Equal(t, "aim", Aim.String())
	assert.Equal(t, "speed", Speed.String())
	assert.Equal(t, "unknown", DimensionCount.String())
	assert.Len(t, dimensionNames, int(DimensionCount))
}

func TestIsAimType(t *testing.T) {
	assert.True(t, SnapAim.IsAimType())
	assert.True(t, AimStamina.IsAimType())
	assert.False(t, Stamina.IsAimType())
	assert.False(t, Speed.IsAimType())
}
