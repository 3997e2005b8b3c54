package flowaim

import (
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/preprocessing"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/skills"
)

// SkillsProcessor feeds every object to all dimensions in evaluation order
type SkillsProcessor struct {
	Skills [api.DimensionCount]*skills.Skill

	ctx skills.StepContext

	mergeDivisor float64

	// Per object peak of final aim and speed running strains and its strain time in seconds, used by full combo estimation
	objectStrains []float64
	objectTimes   []float64
}

func NewSkillsProcessor(tuning Tuning) *SkillsProcessor {
	params := tuning.AimFormula
	engine := tuning.Engine

	obj := &SkillsProcessor{mergeDivisor: tuning.Aggregation.MergeDivisor}

	obj.Skills[api.Aim] = skills.NewAimSkill(tuning.Aim, engine, params)
	obj.Skills[api.SnapAim] = skills.NewSnapAimSkill(tuning.SnapAim, engine, params)
	obj.Skills[api.FlowAim] = skills.NewFlowAimSkill(tuning.FlowAim, engine, params)
	obj.Skills[api.AimStamina] = skills.NewAimStaminaSkill(tuning.AimStamina, engine, params)
	obj.Skills[api.Stamina] = skills.NewStaminaSkill(tuning.Stamina, engine, tuning.SpeedFormula, tuning.StaminaCeiling)
	obj.Skills[api.Speed] = skills.NewSpeedSkill(tuning.Speed, engine, tuning.SpeedFormula, tuning.SpeedCeiling)

	return obj
}

func (processor *SkillsProcessor) Process(current *preprocessing.DifficultyObject) {
	processor.ctx.Begin(current.Index)

	for _, skill := range processor.Skills {
		skill.Process(current, &processor.ctx)
	}

	aimStrain := mergeStrains(processor.strain(api.Aim), processor.strain(api.AimStamina), processor.mergeDivisor)
	speedStrain := mergeStrains(processor.strain(api.Speed), processor.strain(api.Stamina), processor.mergeDivisor)

	processor.objectStrains = append(processor.objectStrains, max(aimStrain, speedStrain))
	processor.objectTimes = append(processor.objectTimes, current.StrainTime/1000)
}

func (processor *SkillsProcessor) strain(dimension api.Dimension) float64 {
	strain, _ := processor.ctx.Strain(dimension)
	return strain
}

// Snapshot returns current state of all dimensions, keeping them open for further processing
func (processor *SkillsProcessor) Snapshot() [api.DimensionCount]*api.StrainState {
	var states [api.DimensionCount]*api.StrainState
	for i, skill := range processor.Skills {
		states[i] = skill.Snapshot()
	}

	return states
}

// Freeze closes all dimensions
func (processor *SkillsProcessor) Freeze() [api.DimensionCount]*api.StrainState {
	var states [api.DimensionCount]*api.StrainState
	for i, skill := range processor.Skills {
		states[i] = skill.Freeze()
	}

	return states
}

func mergeStrains(a, b, divisor float64) float64 {
	return max(a, b) + a*b/divisor
}
