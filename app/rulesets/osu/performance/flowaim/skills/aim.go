package skills

import (
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/evaluators"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/preprocessing"
)

func DefaultAimConfig() StrainConfig {
	return StrainConfig{Multiplier: 26.25, DecayBase: 0.15}
}

func DefaultAimStaminaConfig() StrainConfig {
	return DefaultAimConfig().Scaled(0.81, 1.575)
}

// NewAimSkill creates merged aim skill, the main aim dimension
func NewAimSkill(config StrainConfig, engine EngineConfig, params evaluators.AimParameters) *Skill {
	return newAimFamilySkill(api.Aim, config, engine, params, func(v evaluators.AimValues) float64 { return v.Merged })
}

func NewSnapAimSkill(config StrainConfig, engine EngineConfig, params evaluators.AimParameters) *Skill {
	return newAimFamilySkill(api.SnapAim, config, engine, params, func(v evaluators.AimValues) float64 { return v.Snap })
}

func NewFlowAimSkill(config StrainConfig, engine EngineConfig, params evaluators.AimParameters) *Skill {
	return newAimFamilySkill(api.FlowAim, config, engine, params, func(v evaluators.AimValues) float64 { return v.Flow })
}

// NewAimStaminaSkill accumulates merged aim value with lower multiplier and slower decay
func NewAimStaminaSkill(config StrainConfig, engine EngineConfig, params evaluators.AimParameters) *Skill {
	return newAimFamilySkill(api.AimStamina, config, engine, params, func(v evaluators.AimValues) float64 { return v.Merged })
}

func newAimFamilySkill(dimension api.Dimension, config StrainConfig, engine EngineConfig, params evaluators.AimParameters, pick func(evaluators.AimValues) float64) *Skill {
	return NewSkill(dimension, config, engine, func(skill *Skill, current *preprocessing.DifficultyObject, _ *StepContext) float64 {
		return pick(evaluators.EvaluateAim(current, skill.Previous(0), params))
	})
}
