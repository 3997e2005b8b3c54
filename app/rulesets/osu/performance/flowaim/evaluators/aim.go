package evaluators

import (
	"math"

	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/preprocessing"
	"github.com/Givikap120/flowaim-sr/framework/math/mutils"
)

type AimParameters struct {
	AngleBonusBegin      float64 `yaml:"angle_bonus_begin"`
	AngleBonusScale      float64 `yaml:"angle_bonus_scale"`
	AngleBonusMultiplier float64 `yaml:"angle_bonus_multiplier"`
	TimingThreshold      float64 `yaml:"timing_threshold"`
	DiminishingExponent  float64 `yaml:"diminishing_exponent"`

	ControlSpacingScale  float64 `yaml:"control_spacing_scale"`
	ControlRatioExponent float64 `yaml:"control_ratio_exponent"`
	ControlDivisor       float64 `yaml:"control_divisor"`

	FlowFactor           float64 `yaml:"flow_factor"`
	FlowAngleFactor      float64 `yaml:"flow_angle_factor"`
	FlowAngleBegin       float64 `yaml:"flow_angle_begin"`
	FlowAngleDistance    float64 `yaml:"flow_angle_distance"`
	FlowTimeMidpoint     float64 `yaml:"flow_time_midpoint"`
	FlowDistanceExponent float64 `yaml:"flow_distance_exponent"`
	FlowDistanceDivisor  float64 `yaml:"flow_distance_divisor"`
	FlowAngleOffset      float64 `yaml:"flow_angle_offset"`

	RepeatJumpMinSpacing    float64 `yaml:"repeat_jump_min_spacing"`
	RepeatJumpMaxSpacing    float64 `yaml:"repeat_jump_max_spacing"`
	RepeatJumpStartDistance float64 `yaml:"repeat_jump_start_distance"`
	RepeatJumpPenalty       float64 `yaml:"repeat_jump_penalty"`
}

func DefaultAimParameters() AimParameters {
	return AimParameters{
		AngleBonusBegin:      math.Pi / 3,
		AngleBonusScale:      90,
		AngleBonusMultiplier: 1.5,
		TimingThreshold:      107,
		DiminishingExponent:  0.99,

		ControlSpacingScale:  3.5,
		ControlRatioExponent: 2.5,
		ControlDivisor:       1500,

		FlowFactor:           0.195,
		FlowAngleFactor:      0.4,
		FlowAngleBegin:       5 * math.Pi / 6,
		FlowAngleDistance:    90,
		FlowTimeMidpoint:     126,
		FlowDistanceExponent: 1.7,
		FlowDistanceDivisor:  400,
		FlowAngleOffset:      20,

		RepeatJumpMinSpacing:    3 * preprocessing.NormalizedRadius,
		RepeatJumpMaxSpacing:    6 * preprocessing.NormalizedRadius,
		RepeatJumpStartDistance: 2.5 * preprocessing.NormalizedRadius,
		RepeatJumpPenalty:       0.1,
	}
}

// AimValues holds the per-object aim contribution before skill multiplier
type AimValues struct {
	// Snap is the ballistic part of the movement
	Snap float64
	// Flow is the tracing part of the movement, with flow angle bonus applied
	Flow float64
	// Merged is the plain aim value with flow bonus
	Merged float64

	FlowProbability float64
}

// EvaluateAim computes aim difficulty of current object. previous is nil for the first object.
func EvaluateAim(current, previous *preprocessing.DifficultyObject, p AimParameters) AimValues {
	if current.IsSpinner {
		return AimValues{}
	}

	angleBonus := 0.0
	controlBonus := 0.0
	flowAngleBonus := 1.0

	if previous != nil {
		if !math.IsNaN(current.Angle) && current.Angle > p.AngleBonusBegin {
			bonus := math.Sqrt(
				max(previous.JumpDistance-p.AngleBonusScale, 0) *
					math.Pow(math.Sin(current.Angle-p.AngleBonusBegin), 2) *
					max(current.JumpDistance-p.AngleBonusScale, 0))

			angleBonus = p.AngleBonusMultiplier * p.diminish(max(0, bonus)) / max(p.TimingThreshold, previous.StrainTime)

			flowAngleBonus = flowAngleBonusOf(current, previous, p)
		}

		controlBonus = controlBonusOf(current, previous, p)
	}

	jumpDistanceExp := p.diminish(current.JumpDistance)
	travelDistanceExp := p.diminish(current.TravelDistance)

	if !math.IsNaN(current.OverlapScaling) {
		jumpDistanceExp *= current.OverlapScaling
		travelDistanceExp *= current.OverlapScaling
	}

	distance := jumpDistanceExp + travelDistanceExp + math.Sqrt(jumpDistanceExp*travelDistanceExp)

	aimValue := max(
		angleBonus+distance/max(current.StrainTime, p.TimingThreshold),
		distance/current.StrainTime,
	) + controlBonus

	aimValue *= 1 - repeatJumpPenaltyOf(current, p)

	flowProbability := FlowProbability(current, p)

	// Large movements are played as snaps and get no flow bonus
	distanceOffset := math.Pow(jumpDistanceExp+travelDistanceExp, p.FlowDistanceExponent) / p.FlowDistanceDivisor

	flowBonus := p.FlowFactor * flowAngleBonus * mutils.Logistic(p.FlowTimeMidpoint-current.StrainTime-distanceOffset)

	return AimValues{
		Snap:            aimValue * (1 - flowProbability),
		Flow:            aimValue * flowProbability * (1 + p.FlowFactor*flowAngleBonus),
		Merged:          aimValue * (1 + flowBonus),
		FlowProbability: flowProbability,
	}
}

// FlowProbability estimates how likely the movement into current object is played as flow rather than snap.
// Short strain time, small distance and low angle favour flow.
func FlowProbability(current *preprocessing.DifficultyObject, p AimParameters) float64 {
	distance := p.diminish(current.JumpDistance) + p.diminish(current.TravelDistance)
	distanceOffset := math.Pow(distance, p.FlowDistanceExponent) / p.FlowDistanceDivisor

	angleOffset := 0.0
	if !math.IsNaN(current.Angle) {
		angleOffset = p.FlowAngleOffset * (1 + math.Cos(current.Angle)) / 2
	}

	return mutils.Logistic(p.FlowTimeMidpoint - current.StrainTime - distanceOffset - angleOffset)
}

func flowAngleBonusOf(current, previous *preprocessing.DifficultyObject, p AimParameters) float64 {
	distanceScaling := min(current.JumpDistance/p.FlowAngleDistance, 1) * min(previous.JumpDistance/p.FlowAngleDistance, 1)

	bonus := math.Sin(1.5 * (p.FlowAngleBegin - max(math.Pi/2, current.Angle)))

	return 1 + max(0, bonus)*distanceScaling*p.FlowAngleFactor
}

func controlBonusOf(current, previous *preprocessing.DifficultyObject, p AimParameters) float64 {
	previousSpeed := max(1, p.diminish(previous.JumpDistance)/previous.StrainTime*p.ControlSpacingScale)
	currentSpeed := max(1, p.diminish(current.JumpDistance)/current.StrainTime*p.ControlSpacingScale)

	speedRatio := max(previousSpeed/currentSpeed, currentSpeed/previousSpeed)

	speedChange := p.diminish(math.Pow(speedRatio, p.ControlRatioExponent)) / (current.StrainTime + previous.StrainTime)

	return speedChange * current.JumpDistance / p.ControlDivisor
}

func repeatJumpPenaltyOf(current *preprocessing.DifficultyObject, p AimParameters) float64 {
	if math.IsNaN(current.LastDistance) || current.JumpDistance < p.RepeatJumpMinSpacing {
		return 0
	}

	spacingRange := p.RepeatJumpMaxSpacing - p.RepeatJumpMinSpacing
	spacingScale := min(current.JumpDistance-p.RepeatJumpMinSpacing, spacingRange) / spacingRange

	startDistance := current.JumpDistance / p.RepeatJumpMaxSpacing * p.RepeatJumpStartDistance
	innerDistance := max(startDistance-current.LastDistance, 0) / startDistance

	return innerDistance * spacingScale * p.RepeatJumpPenalty
}

func (p AimParameters) diminish(value float64) float64 {
	return math.Pow(value, p.DiminishingExponent)
}
