package evaluators

import (
	"math"

	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/preprocessing"
	"github.com/Givikap120/flowaim-sr/framework/math/mutils"
)

// CeilingParameters describe the closed-form strain a player can sustain at given strain time:
// (Scale1/st)^Exponent1 + (Scale2/st)^Exponent2
type CeilingParameters struct {
	Scale1    float64 `yaml:"scale1"`
	Exponent1 float64 `yaml:"exponent1"`
	Scale2    float64 `yaml:"scale2"`
	Exponent2 float64 `yaml:"exponent2"`
}

func (c CeilingParameters) EstimatedPeakStrain(strainTime float64) float64 {
	return math.Pow(c.Scale1/strainTime, c.Exponent1) + math.Pow(c.Scale2/strainTime, c.Exponent2)
}

type SpeedParameters struct {
	MinSpeedBonus        float64 `yaml:"min_speed_bonus"` // ~200BPM
	MaxSpeedBonus        float64 `yaml:"max_speed_bonus"` // ~300BPM
	SpeedBalancingFactor float64 `yaml:"speed_balancing_factor"`
	SpeedBonusMultiplier float64 `yaml:"speed_bonus_multiplier"`

	RhythmTolerance float64 `yaml:"rhythm_tolerance"`
	RhythmRange     float64 `yaml:"rhythm_range"`
	RhythmBonus     float64 `yaml:"rhythm_bonus"`

	BurstScale float64 `yaml:"burst_scale"`
}

func DefaultSpeedParameters() SpeedParameters {
	return SpeedParameters{
		MinSpeedBonus:        75,
		MaxSpeedBonus:        50,
		SpeedBalancingFactor: 40,
		SpeedBonusMultiplier: 0.75,

		RhythmTolerance: 5,
		RhythmRange:     10,
		RhythmBonus:     0.11,

		BurstScale: 5,
	}
}

func DefaultSpeedCeiling() CeilingParameters {
	return CeilingParameters{Scale1: 1360, Exponent1: 1.8, Scale2: 205, Exponent2: 3.8}
}

func DefaultStaminaCeiling() CeilingParameters {
	return CeilingParameters{Scale1: 1360, Exponent1: 1.8, Scale2: 270, Exponent2: 3.2}
}

// EvaluateSpeed computes tapping difficulty of current object.
// fatigueStrain is the running strain the burst bonus is measured against, ceiling is its estimated peak.
func EvaluateSpeed(current, previous *preprocessing.DifficultyObject, fatigueStrain float64, ceiling CeilingParameters, p SpeedParameters) float64 {
	if current.IsSpinner {
		return 0
	}

	deltaTime := max(p.MaxSpeedBonus, current.DeltaTime)

	speedBonus := 0.0
	if deltaTime < p.MinSpeedBonus {
		speedBonus = math.Pow((p.MinSpeedBonus-deltaTime)/p.SpeedBalancingFactor, 2) * p.SpeedBonusMultiplier
	}

	rhythmBonus := 0.0
	if previous != nil {
		timingDistance := math.Abs(current.DeltaTime - previous.DeltaTime)
		rhythmBonus = math.Pow(mutils.Clamp((timingDistance-p.RhythmTolerance)/p.RhythmRange, 0, 1), 2) * p.RhythmBonus
	}

	return (1 + speedBonus + rhythmBonus) / current.StrainTime * (1 + BurstBonus(current.StrainTime, fatigueStrain, ceiling, p))
}

// BurstBonus rewards objects played while strain is still far below the sustainable ceiling, e.g. right after a break
func BurstBonus(strainTime, fatigueStrain float64, ceiling CeilingParameters, p SpeedParameters) float64 {
	return (1 - min(1, fatigueStrain/ceiling.EstimatedPeakStrain(strainTime))) / strainTime * p.BurstScale
}
