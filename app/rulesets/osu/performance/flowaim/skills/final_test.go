package skills

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficultyValue(t *testing.T) {
	assert.InEpsilon(t, 1.9, DifficultyValue([]float64{1, 1}, 0.9), 1e-12)
	assert.InEpsilon(t, 3+0.9*2+0.81, DifficultyValue([]float64{1, 3, 2}, 0.9), 1e-12)
	assert.Zero(t, DifficultyValue(nil, 0.9))
	assert.Zero(t, DifficultyValue([]float64{0, 0, 0}, 0.9))
}

func TestDifficultyValueOrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	peaks := make([]float64, 500)
	for i := range peaks {
		peaks[i] = r.Float64() * 1000
	}

	expected := DifficultyValue(peaks, 0.9)

	for i := 0; i < 10; i++ {
		r.Shuffle(len(peaks), func(a, b int) { peaks[a], peaks[b] = peaks[b], peaks[a] })

		assert.Equal(t, expected, DifficultyValue(peaks, 0.9))
	}
}

func TestDifficultyValueKeepsInput(t *testing.T) {
	peaks := []float64{1, 3, 2}
	DifficultyValue(peaks, 0.9)

	assert.Equal(t, []float64{1, 3, 2}, peaks)
}

func TestConsistencyValue(t *testing.T) {
	p := DefaultConsistencyParameters()

	even := make([]float64, 300)
	for i := range even {
		even[i] = 100
	}

	spike := make([]float64, 300)
	spike[150] = 1000

	evenValue := ConsistencyValue(even, math.Sqrt(DifficultyValue(even, 0.9)), 0.9, p)
	spikeValue := ConsistencyValue(spike, math.Sqrt(DifficultyValue(spike, 0.9)), 0.9, p)

	assert.Greater(t, evenValue, 0.5)
	assert.LessOrEqual(t, evenValue, 1.0)
	assert.Zero(t, spikeValue)

	assert.Zero(t, ConsistencyValue(nil, 0, 0.9, p))
}

func TestConsistencyScaleInvariant(t *testing.T) {
	p := DefaultConsistencyParameters()

	peaks := make([]float64, 200)
	scaled := make([]float64, 200)

	for i := range peaks {
		peaks[i] = 50 + float64(i%7)*10
		scaled[i] = peaks[i] * 4
	}

	assert.InEpsilon(t,
		ConsistencyValue(peaks, math.Sqrt(DifficultyValue(peaks, 0.9)), 0.9, p),
		ConsistencyValue(scaled, math.Sqrt(DifficultyValue(scaled, 0.9)), 0.9, p),
		1e-9)
}

func TestLengthBonus(t *testing.T) {
	p := DefaultLengthParameters()

	assert.Zero(t, LengthBonus(0, p))
	assert.InEpsilon(t, 0.05, LengthBonus(1000, p), 1e-12)
	assert.InEpsilon(t, 0.1, LengthBonus(2000, p), 1e-12)
	assert.InEpsilon(t, 0.15, LengthBonus(20000, p), 1e-12)
}

func TestEffectiveLength(t *testing.T) {
	p := DefaultLengthParameters()

	assert.Zero(t, EffectiveLength(100, 1000, 0, 0.9, p))

	// baseline is 10, total strain equals 300 baseline objects
	assert.InEpsilon(t, 200.0, EffectiveLength(100, 3000, 100, 0.9, p), 1e-12)
}

func TestMergePeaks(t *testing.T) {
	merged := MergePeaks([]float64{100, 0, 50}, []float64{200, 10, 50}, 10000)

	assert.InDeltaSlice(t, []float64{202, 10, 50.25}, merged, 1e-12)
}

func TestCombinedBonusSymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	aim := make([]float64, 100)
	speed := make([]float64, 100)

	for i := range aim {
		aim[i] = r.Float64() * 500
		speed[i] = r.Float64() * 500
	}

	assert.Equal(t, CombinedBonus(aim, speed, 1800), CombinedBonus(speed, aim, 1800))
	assert.Equal(t, MergePeaks(aim, speed, 10000), MergePeaks(speed, aim, 10000))
}

func TestAddPeaks(t *testing.T) {
	assert.Equal(t, []float64{3, 5}, AddPeaks([]float64{1, 2}, []float64{2, 3}))
}

func TestSectionCountMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { MergePeaks([]float64{1}, []float64{1, 2}, 10000) })
	assert.Panics(t, func() { CombinedBonus([]float64{1, 2}, []float64{1}, 1800) })
	assert.Panics(t, func() { AddPeaks(nil, []float64{1}) })
}

func TestCountDifficultStrains(t *testing.T) {
	assert.Zero(t, CountDifficultStrains([]float64{1, 2}, 0))

	peaks := []float64{100, 100, 100, 1}
	difficulty := DifficultyValue(peaks, 0.9)

	count := CountDifficultStrains(peaks, difficulty)

	require.Greater(t, count, 3.0)
	assert.Less(t, count, 3.4)
}
