package skills

import (
	"fmt"
	"math"

	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/preprocessing"
	"github.com/Givikap120/flowaim-sr/framework/math/mutils"
)

// StrainValueFunc computes raw (unscaled) strain contribution of the current object.
// skill.CurrentStrain is already decayed to current object's time when it's called.
type StrainValueFunc func(skill *Skill, current *preprocessing.DifficultyObject, ctx *StepContext) float64

// StrainConfig is the per-skill constant bundle
type StrainConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	DecayBase  float64 `yaml:"decay_base"`
}

// Scaled returns config with multiplier and decay base scaled, used for stamina variants
func (config StrainConfig) Scaled(multiplierScale, decayScale float64) StrainConfig {
	return StrainConfig{
		Multiplier: config.Multiplier * multiplierScale,
		DecayBase:  config.DecayBase * decayScale,
	}
}

// EngineConfig is shared by all skills of one calculation
type EngineConfig struct {
	SectionLength        float64 `yaml:"section_length"`
	DecayExcessThreshold float64 `yaml:"decay_excess_threshold"`
	DecayWeight          float64 `yaml:"decay_weight"`
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SectionLength:        400,
		DecayExcessThreshold: 500,
		DecayWeight:          0.9,
	}
}

// Skill accumulates time-decayed strain of one dimension and records per-section peaks
type Skill struct {
	Dimension api.Dimension

	StrainConfig
	EngineConfig

	StrainValueOf StrainValueFunc

	CurrentStrain float64
	TotalStrain   float64
	ObjectCount   int

	strainPeaks        []float64
	currentSectionPeak float64
	currentSectionEnd  float64

	// history holds at most two most recent objects, newest first
	history [2]*preprocessing.DifficultyObject

	processed int
	frozen    bool
}

func NewSkill(dimension api.Dimension, strainConfig StrainConfig, engineConfig EngineConfig, strainValueOf StrainValueFunc) *Skill {
	return &Skill{
		Dimension:     dimension,
		StrainConfig:  strainConfig,
		EngineConfig:  engineConfig,
		StrainValueOf: strainValueOf,
	}
}

// Previous returns object processed before the current one, up to 2 objects back
func (skill *Skill) Previous(backwardsIndex int) *preprocessing.DifficultyObject {
	if backwardsIndex < 0 || backwardsIndex >= len(skill.history) {
		return nil
	}

	return skill.history[backwardsIndex]
}

// StrainDecay returns multiplier applied to strain over ms. Past DecayExcessThreshold strain decays geometrically faster.
func (skill *Skill) StrainDecay(ms float64) float64 {
	if ms < skill.DecayExcessThreshold {
		return math.Pow(skill.DecayBase, ms/1000)
	}

	return math.Pow(math.Pow(skill.DecayBase, 1000/min(ms, skill.DecayExcessThreshold)), ms/1000)
}

func (skill *Skill) Process(current *preprocessing.DifficultyObject, ctx *StepContext) {
	if skill.frozen {
		panic(fmt.Sprintf("%s: object %d processed after the skill was frozen", skill.Dimension, current.Index))
	}

	if skill.processed == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/skill.SectionLength) * skill.SectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.saveCurrentPeak()
		skill.startNewSectionFrom(skill.currentSectionEnd)
		skill.currentSectionEnd += skill.SectionLength
	}

	skill.CurrentStrain *= skill.StrainDecay(current.DeltaTime)

	value := skill.StrainValueOf(skill, current, ctx) * skill.Multiplier
	if !mutils.IsFinite(value) {
		panic(fmt.Sprintf("%s: non-finite strain %v at object %d", skill.Dimension, value, current.Index))
	}

	skill.CurrentStrain += value
	skill.TotalStrain += skill.CurrentStrain

	if !current.IsSpinner {
		skill.ObjectCount++
	}

	skill.currentSectionPeak = max(skill.CurrentStrain, skill.currentSectionPeak)

	if ctx != nil {
		ctx.publish(skill.Dimension, skill.CurrentStrain)
	}

	skill.history[1] = skill.history[0]
	skill.history[0] = current
	skill.processed++
}

func (skill *Skill) saveCurrentPeak() {
	skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
}

func (skill *Skill) startNewSectionFrom(time float64) {
	// The maximum strain of the new section is not zero by default,
	// strain carried over from the previous section is decayed to section start
	previous := skill.Previous(0)
	skill.currentSectionPeak = skill.CurrentStrain * skill.StrainDecay(time-previous.StartTime)
}

// GetCurrentStrainPeaks returns a copy of stored peaks together with the peak of the section in progress
func (skill *Skill) GetCurrentStrainPeaks() []float64 {
	if skill.processed == 0 {
		return []float64{}
	}

	peaks := make([]float64, len(skill.strainPeaks), len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)

	return append(peaks, skill.currentSectionPeak)
}

func (skill *Skill) DifficultyValue() float64 {
	return DifficultyValue(skill.GetCurrentStrainPeaks(), skill.DecayWeight)
}

// Snapshot returns state of the skill without freezing it
func (skill *Skill) Snapshot() *api.StrainState {
	return &api.StrainState{
		Dimension:     skill.Dimension,
		Peaks:         skill.GetCurrentStrainPeaks(),
		CurrentStrain: skill.CurrentStrain,
		TotalStrain:   skill.TotalStrain,
		ObjectCount:   skill.ObjectCount,
	}
}

// Freeze closes the peak list, the skill can't process objects afterwards
func (skill *Skill) Freeze() *api.StrainState {
	skill.frozen = true
	return skill.Snapshot()
}

func (skill *Skill) IsFrozen() bool {
	return skill.frozen
}
