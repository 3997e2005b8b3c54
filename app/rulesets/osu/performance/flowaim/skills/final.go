package skills

import (
	"fmt"
	"math"
	"slices"

	"github.com/Givikap120/flowaim-sr/framework/math/mutils"
)

type ConsistencyParameters struct {
	SigmoidScale      float64 `yaml:"sigmoid_scale"`
	StrainCutoff      float64 `yaml:"strain_cutoff"`
	ThresholdExponent float64 `yaml:"threshold_exponent"`
	MinConsistency    float64 `yaml:"min_consistency"`
	MaxConsistency    float64 `yaml:"max_consistency"`
}

func DefaultConsistencyParameters() ConsistencyParameters {
	return ConsistencyParameters{
		SigmoidScale:      6,
		StrainCutoff:      0.6,
		ThresholdExponent: 0.7,
		MinConsistency:    19,
		MaxConsistency:    38,
	}
}

type LengthParameters struct {
	ReferenceLength float64 `yaml:"reference_length"`
	LinearScale     float64 `yaml:"linear_scale"`
	LogScale        float64 `yaml:"log_scale"`
	// Blend between object count (0) and total strain ratio (1)
	Blend float64 `yaml:"blend"`
}

func DefaultLengthParameters() LengthParameters {
	return LengthParameters{
		ReferenceLength: 2000,
		LinearScale:     0.1,
		LogScale:        0.05,
		Blend:           0.5,
	}
}

// DifficultyValue is the weighted sum of peaks sorted from highest to lowest
func DifficultyValue(peaks []float64, decayWeight float64) float64 {
	strains := sortedDescending(peaks)

	difficulty := 0.0
	weight := 1.0
	lastDiff := -math.MaxFloat64

	for _, strain := range strains {
		difficulty += strain * weight
		weight *= decayWeight

		if math.Abs(difficulty-lastDiff) < math.SmallestNonzeroFloat64 { // escape when strain * weight calculates to 0
			break
		}

		lastDiff = difficulty
	}

	return difficulty
}

// ConsistencyValue measures how many sections come close to the hardest ones.
// baseRating is the square root of difficulty value. Result is roughly in [0, 1].
func ConsistencyValue(peaks []float64, baseRating, decayWeight float64, p ConsistencyParameters) float64 {
	seriesFactor := 1 / (1 - decayWeight)
	baseStrain := baseRating * baseRating / seriesFactor

	upperRange := baseStrain * (1 - p.StrainCutoff)
	bottomRange := baseStrain * p.StrainCutoff

	if upperRange <= 0 {
		return 0
	}

	difficulty := 0.0
	weight := 1.0

	for x, strain := range sortedDescending(peaks) {
		cutoffStrain := mutils.Clamp(strain-bottomRange, 0, upperRange)

		difficulty += math.Pow(cutoffStrain/upperRange, p.ThresholdExponent) * weight

		weight = 1 / (1 + math.Exp(float64(x)/p.SigmoidScale-6))
	}

	return max(0, difficulty-p.MinConsistency) / (p.MaxConsistency - p.MinConsistency)
}

// EffectiveLength blends object count with total strain expressed in units of baseline strain
func EffectiveLength(objectCount int, totalStrain, difficultyValue, decayWeight float64, p LengthParameters) float64 {
	baseline := difficultyValue * (1 - decayWeight)
	if baseline <= 0 {
		return 0
	}

	return mutils.Lerp(float64(objectCount), totalStrain/baseline, p.Blend)
}

// LengthBonus grows linearly up to reference length, logarithmically after it
func LengthBonus(effectiveLength float64, p LengthParameters) float64 {
	if effectiveLength <= 0 {
		return 0
	}

	ratio := effectiveLength / p.ReferenceLength

	bonus := p.LinearScale * min(1, ratio)
	if ratio > 1 {
		bonus += p.LogScale * math.Log10(ratio)
	}

	return bonus
}

// MergePeaks combines two correlated series, max of both plus a cross term when both spike together
func MergePeaks(a, b []float64, divisor float64) []float64 {
	checkSectionCount("merge", a, b)

	merged := make([]float64, len(a))
	for i := range a {
		merged[i] = max(a[i], b[i]) + a[i]*b[i]/divisor
	}

	return merged
}

// CombinedBonus returns per section bonus for simultaneous aim and speed demand
func CombinedBonus(aim, speed []float64, divisor float64) []float64 {
	checkSectionCount("combined bonus", aim, speed)

	bonus := make([]float64, len(aim))
	for i := range aim {
		bonus[i] = aim[i] * speed[i] / divisor
	}

	return bonus
}

func AddPeaks(a, b []float64) []float64 {
	checkSectionCount("add", a, b)

	sum := make([]float64, len(a))
	for i := range a {
		sum[i] = a[i] + b[i]
	}

	return sum
}

// CountDifficultStrains estimates number of sections close to the difficulty value
func CountDifficultStrains(peaks []float64, difficultyValue float64) float64 {
	if difficultyValue == 0 {
		return 0
	}

	consistentTopStrain := difficultyValue / 10

	count := 0.0
	for _, s := range peaks {
		count += 1.1 / (1 + math.Exp(-10*(s/consistentTopStrain-0.88)))
	}

	return count
}

func checkSectionCount(operation string, a, b []float64) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("%s: section count mismatch, %d != %d", operation, len(a), len(b)))
	}
}

func sortedDescending(peaks []float64) []float64 {
	strains := slices.Clone(peaks)
	slices.SortFunc(strains, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}

		return 0
	})

	return strains
}
