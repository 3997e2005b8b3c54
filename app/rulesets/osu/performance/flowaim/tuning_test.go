package flowaim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTuning(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestDefaultTuningIsValid(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())
}

func TestLoadTuningMissingFile(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), tuning)
}

func TestLoadTuningOverridesDefaults(t *testing.T) {
	path := writeTuning(t, `
aim:
  multiplier: 30
aggregation:
  combined_divisor: 2000
full_combo:
  max_iterations: 8
`)

	tuning, err := LoadTuning(path)
	require.NoError(t, err)

	defaults := DefaultTuning()

	assert.Equal(t, 30.0, tuning.Aim.Multiplier)
	assert.Equal(t, defaults.Aim.DecayBase, tuning.Aim.DecayBase)
	assert.Equal(t, 2000.0, tuning.Aggregation.CombinedDivisor)
	assert.Equal(t, defaults.Aggregation.MergeDivisor, tuning.Aggregation.MergeDivisor)
	assert.Equal(t, 8, tuning.FullCombo.MaxIterations)
	assert.Equal(t, defaults.FullCombo.Precision, tuning.FullCombo.Precision)
	assert.Equal(t, defaults.Speed, tuning.Speed)

	assert.NotEqual(t, defaults.Hash(), tuning.Hash())
}

func TestLoadTuningInvalid(t *testing.T) {
	cases := map[string]string{
		"syntax":       "aim: [",
		"decay weight": "engine:\n  decay_weight: 1.5\n",
		"decay base":   "speed:\n  decay_base: 0\n",
		"multiplier":   "stamina:\n  multiplier: -1\n",
		"divisor":      "aggregation:\n  merge_divisor: 0\n",
		"iterations":   "full_combo:\n  max_iterations: 0\n",
		"section":      "engine:\n  section_length: 0\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadTuning(writeTuning(t, content))
			assert.Error(t, err)
		})
	}
}

func TestTuningHashStable(t *testing.T) {
	assert.Equal(t, DefaultTuning().Hash(), DefaultTuning().Hash())
	assert.Len(t, DefaultTuning().Hash(), 16)
}

func TestCustomTuningChangesRatings(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Aim.Multiplier *= 2

	hitObjects := square(100, 80, 150)

	base := NewDifficultyCalculator().CalculateSingle(hitObjects, defaultDiff())
	custom := NewDifficultyCalculatorWithTuning(tuning).CalculateSingle(hitObjects, defaultDiff())

	assert.Greater(t, custom.Aim, base.Aim)
	assert.Equal(t, base.SnapAim, custom.SnapAim)
}
