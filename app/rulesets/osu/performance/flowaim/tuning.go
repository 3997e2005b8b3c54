package flowaim

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/evaluators"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/skills"
	"gopkg.in/yaml.v3"
)

type AggregationParameters struct {
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 `yaml:"star_scaling_factor"`
	MergeDivisor      float64 `yaml:"merge_divisor"`
	CombinedDivisor   float64 `yaml:"combined_divisor"`

	Consistency                skills.ConsistencyParameters `yaml:"consistency"`
	ConsistencyExponent        float64                      `yaml:"consistency_exponent"`
	AimConsistencyMultiplier   float64                      `yaml:"aim_consistency_multiplier"`
	SpeedConsistencyMultiplier float64                      `yaml:"speed_consistency_multiplier"`

	Length skills.LengthParameters `yaml:"length"`

	TouchDeviceExponent float64 `yaml:"touch_device_exponent"`
	RelaxAimMultiplier  float64 `yaml:"relax_aim_multiplier"`
}

type FullComboParameters struct {
	DifficultyExponent float64 `yaml:"difficulty_exponent"`
	// TargetTime in seconds for maps not longer than BaselineLength
	TargetTime     float64 `yaml:"target_time"`
	BaselineLength float64 `yaml:"baseline_length"`
	MaxIterations  int     `yaml:"max_iterations"`
	Precision      float64 `yaml:"precision"`
}

// Tuning holds every constant of the calculation, so alternative tunings can be compared side by side
type Tuning struct {
	Engine skills.EngineConfig `yaml:"engine"`

	Aim        skills.StrainConfig `yaml:"aim"`
	SnapAim    skills.StrainConfig `yaml:"snap_aim"`
	FlowAim    skills.StrainConfig `yaml:"flow_aim"`
	AimStamina skills.StrainConfig `yaml:"aim_stamina"`
	Stamina    skills.StrainConfig `yaml:"stamina"`
	Speed      skills.StrainConfig `yaml:"speed"`

	AimFormula     evaluators.AimParameters     `yaml:"aim_formula"`
	SpeedFormula   evaluators.SpeedParameters   `yaml:"speed_formula"`
	SpeedCeiling   evaluators.CeilingParameters `yaml:"speed_ceiling"`
	StaminaCeiling evaluators.CeilingParameters `yaml:"stamina_ceiling"`

	Aggregation AggregationParameters `yaml:"aggregation"`
	FullCombo   FullComboParameters   `yaml:"full_combo"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Engine: skills.DefaultEngineConfig(),

		Aim:        skills.DefaultAimConfig(),
		SnapAim:    skills.DefaultAimConfig(),
		FlowAim:    skills.DefaultAimConfig(),
		AimStamina: skills.DefaultAimStaminaConfig(),
		Stamina:    skills.DefaultStaminaConfig(),
		Speed:      skills.DefaultSpeedConfig(),

		AimFormula:     evaluators.DefaultAimParameters(),
		SpeedFormula:   evaluators.DefaultSpeedParameters(),
		SpeedCeiling:   evaluators.DefaultSpeedCeiling(),
		StaminaCeiling: evaluators.DefaultStaminaCeiling(),

		Aggregation: AggregationParameters{
			StarScalingFactor: 0.0675,
			MergeDivisor:      10000,
			CombinedDivisor:   1800,

			Consistency:                skills.DefaultConsistencyParameters(),
			ConsistencyExponent:        0.7,
			AimConsistencyMultiplier:   0.045,
			SpeedConsistencyMultiplier: 0.035,

			Length: skills.DefaultLengthParameters(),

			TouchDeviceExponent: 0.8,
			RelaxAimMultiplier:  0.9,
		},

		FullCombo: FullComboParameters{
			DifficultyExponent: 6,
			TargetTime:         3600,
			BaselineLength:     120,
			MaxIterations:      5,
			Precision:          0.01,
		},
	}
}

// LoadTuning reads YAML tuning file on top of DefaultTuning. Missing file yields defaults.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tuning, nil
		}

		return tuning, fmt.Errorf("failed to read tuning file: %w", err)
	}

	if err = yaml.Unmarshal(b, &tuning); err != nil {
		return DefaultTuning(), fmt.Errorf("failed to parse tuning file %s: %w", path, err)
	}

	if err = tuning.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("invalid tuning file %s: %w", path, err)
	}

	return tuning, nil
}

func (t Tuning) Validate() error {
	if t.Engine.SectionLength <= 0 {
		return fmt.Errorf("engine.section_length must be positive, got %v", t.Engine.SectionLength)
	}

	if t.Engine.DecayExcessThreshold <= 0 {
		return fmt.Errorf("engine.decay_excess_threshold must be positive, got %v", t.Engine.DecayExcessThreshold)
	}

	if t.Engine.DecayWeight <= 0 || t.Engine.DecayWeight >= 1 {
		return fmt.Errorf("engine.decay_weight must be in (0, 1), got %v", t.Engine.DecayWeight)
	}

	strains := []struct {
		name   string
		config skills.StrainConfig
	}{
		{"aim", t.Aim},
		{"snap_aim", t.SnapAim},
		{"flow_aim", t.FlowAim},
		{"aim_stamina", t.AimStamina},
		{"stamina", t.Stamina},
		{"speed", t.Speed},
	}

	for _, s := range strains {
		if s.config.Multiplier <= 0 {
			return fmt.Errorf("%s.multiplier must be positive, got %v", s.name, s.config.Multiplier)
		}

		if s.config.DecayBase <= 0 || s.config.DecayBase >= 1 {
			return fmt.Errorf("%s.decay_base must be in (0, 1), got %v", s.name, s.config.DecayBase)
		}
	}

	divisors := []struct {
		name  string
		value float64
	}{
		{"aim_formula.control_divisor", t.AimFormula.ControlDivisor},
		{"aim_formula.flow_distance_divisor", t.AimFormula.FlowDistanceDivisor},
		{"aim_formula.flow_angle_distance", t.AimFormula.FlowAngleDistance},
		{"speed_formula.speed_balancing_factor", t.SpeedFormula.SpeedBalancingFactor},
		{"speed_formula.rhythm_range", t.SpeedFormula.RhythmRange},
		{"aggregation.merge_divisor", t.Aggregation.MergeDivisor},
		{"aggregation.combined_divisor", t.Aggregation.CombinedDivisor},
		{"aggregation.consistency.sigmoid_scale", t.Aggregation.Consistency.SigmoidScale},
		{"aggregation.length.reference_length", t.Aggregation.Length.ReferenceLength},
		{"full_combo.difficulty_exponent", t.FullCombo.DifficultyExponent},
		{"full_combo.baseline_length", t.FullCombo.BaselineLength},
	}

	for _, d := range divisors {
		if d.value == 0 {
			return fmt.Errorf("%s must not be zero", d.name)
		}
	}

	for name, c := range map[string]evaluators.CeilingParameters{"speed_ceiling": t.SpeedCeiling, "stamina_ceiling": t.StaminaCeiling} {
		if c.Scale1 <= 0 || c.Scale2 <= 0 {
			return fmt.Errorf("%s scales must be positive", name)
		}
	}

	if t.AimFormula.RepeatJumpMaxSpacing <= t.AimFormula.RepeatJumpMinSpacing {
		return fmt.Errorf("aim_formula.repeat_jump_max_spacing must be greater than repeat_jump_min_spacing")
	}

	if t.Aggregation.Consistency.MaxConsistency <= t.Aggregation.Consistency.MinConsistency {
		return fmt.Errorf("aggregation.consistency.max_consistency must be greater than min_consistency")
	}

	if t.FullCombo.MaxIterations < 1 {
		return fmt.Errorf("full_combo.max_iterations must be at least 1, got %d", t.FullCombo.MaxIterations)
	}

	if t.FullCombo.TargetTime <= 0 {
		return fmt.Errorf("full_combo.target_time must be positive, got %v", t.FullCombo.TargetTime)
	}

	return nil
}

// Hash identifies the tuning, used as a cache key
func (t Tuning) Hash() string {
	b, err := yaml.Marshal(t)
	if err != nil {
		panic(err)
	}

	sum := sha256.Sum256(b)

	return hex.EncodeToString(sum[:8])
}
