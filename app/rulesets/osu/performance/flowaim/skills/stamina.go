package skills

import (
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/evaluators"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/preprocessing"
)

func DefaultStaminaConfig() StrainConfig {
	return DefaultSpeedConfig().Scaled(0.78, 1.4)
}

// NewStaminaSkill is speed formula with reduced multiplier and slower decay, burst is measured against its own strain
func NewStaminaSkill(config StrainConfig, engine EngineConfig, params evaluators.SpeedParameters, ceiling evaluators.CeilingParameters) *Skill {
	return NewSkill(api.Stamina, config, engine, func(skill *Skill, current *preprocessing.DifficultyObject, _ *StepContext) float64 {
		return evaluators.EvaluateSpeed(current, skill.Previous(0), skill.CurrentStrain, ceiling, params)
	})
}
