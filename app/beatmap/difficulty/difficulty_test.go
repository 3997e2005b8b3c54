package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficultyRange(t *testing.T) {
	assert.Equal(t, 1800.0, DifficultyRange(0, 1800, 1200, 450))
	assert.Equal(t, 1200.0, DifficultyRange(5, 1800, 1200, 450))
	assert.Equal(t, 450.0, DifficultyRange(10, 1800, 1200, 450))
	assert.InDelta(t, 600.0, DifficultyRange(9, 1800, 1200, 450), 1e-9)
}

func TestNoMod(t *testing.T) {
	d := NewDifficulty(5, 5, 8, 9)

	assert.InDelta(t, 32.0, d.CircleRadiusU, 1e-9)
	assert.InDelta(t, 600.0, d.PreemptU, 1e-9)
	assert.InDelta(t, 32.0, d.Hit300U, 1e-9)
	assert.Equal(t, 1.0, d.Speed)
	assert.InDelta(t, 9.0, d.ARReal, 1e-9)
	assert.InDelta(t, 8.0, d.ODReal, 1e-9)
}

func TestDoubleTimeDisplayValues(t *testing.T) {
	d := NewDifficulty(5, 4, 8, 9)
	d.SetMods(DoubleTime)

	assert.Equal(t, 1.5, d.Speed)
	assert.InDelta(t, 5+(1200-400.0)/150, d.ARReal, 1e-9)
	assert.InDelta(t, (80-32/1.5)/6, d.ODReal, 1e-9)
}

func TestCustomSpeed(t *testing.T) {
	d := NewDifficulty(5, 5, 8, 9)
	d.SetCustomSpeed(1.2)

	assert.Equal(t, 1.2, d.Speed)
	assert.Equal(t, 1.2, d.GetCustomSpeed())
	assert.InDelta(t, 5+(1200-600/1.2)/150, d.ARReal, 1e-9)
	assert.InDelta(t, (80-32/1.2)/6, d.ODReal, 1e-9)

	// Custom rate wins over speed changing mods and survives mod changes
	d.SetMods(DoubleTime)
	assert.Equal(t, 1.2, d.Speed)
	assert.Equal(t, 1.2, d.Clone().Speed)

	d.SetCustomSpeed(0)
	assert.Equal(t, 1.5, d.Speed)
}

func TestIntTruncation(t *testing.T) {
	// OD 7.3 gives a 36.2ms window which truncates to 36 before the clock rate is applied
	d := NewDifficulty(5, 4, 7.3, 9.3)
	d.SetMods(DoubleTime)

	assert.InDelta(t, (80-36/1.5)/6, d.ODReal, 1e-9)
	assert.NotEqual(t, (80-d.Hit300U/1.5)/6, d.ODReal)

	preempt := float64(int(DifficultyRange(9.3, 1800, 1200, 450))) / 1.5
	assert.InDelta(t, 5+(1200-preempt)/150, d.ARReal, 1e-9)
}

func TestHardRockAndEasy(t *testing.T) {
	d := NewDifficulty(5, 5, 8, 9)

	d.SetMods(HardRock)
	assert.InDelta(t, 6.5, d.GetCS(), 1e-9)
	assert.InDelta(t, 10.0, d.GetAR(), 1e-9)
	assert.InDelta(t, 10.0, d.GetOD(), 1e-9)

	d.SetMods(Easy)
	assert.InDelta(t, 2.5, d.GetCS(), 1e-9)
	assert.InDelta(t, 4.5, d.GetAR(), 1e-9)

	d.SetMods(None)
	assert.InDelta(t, 5.0, d.GetCS(), 1e-9)
	assert.InDelta(t, 9.0, d.GetAR(), 1e-9)
}

func TestParseMods(t *testing.T) {
	mods, err := ParseMods("hddt")
	require.NoError(t, err)
	assert.Equal(t, Hidden|DoubleTime, mods)
	assert.Equal(t, "HDDT", mods.String())

	mods, err = ParseMods("NC")
	require.NoError(t, err)
	assert.True(t, mods.Active(DoubleTime))
	assert.Equal(t, "NC", mods.String())

	_, err = ParseMods("XX")
	assert.Error(t, err)

	_, err = ParseMods("DTHT")
	assert.Error(t, err)

	_, err = ParseMods("HDD")
	assert.Error(t, err)

	mods, err = ParseMods("")
	require.NoError(t, err)
	assert.Equal(t, None, mods)
}

func TestDiffMaskedMods(t *testing.T) {
	assert.Equal(t, DoubleTime|HardRock, GetDiffMaskedMods(Hidden|DoubleTime|HardRock|NoFail))
	assert.Equal(t, TouchDevice|Relax, GetDiffMaskedMods(Hidden|TouchDevice|Relax))
}
