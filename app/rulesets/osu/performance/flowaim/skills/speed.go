package skills

import (
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/evaluators"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/preprocessing"
)

func DefaultSpeedConfig() StrainConfig {
	return StrainConfig{Multiplier: 1360, DecayBase: 0.3}
}

// NewSpeedSkill creates speed skill. Its burst bonus is measured against Stamina strain of the same object,
// so Stamina has to be processed first. Without a published Stamina strain speed's own strain is used.
func NewSpeedSkill(config StrainConfig, engine EngineConfig, params evaluators.SpeedParameters, ceiling evaluators.CeilingParameters) *Skill {
	return NewSkill(api.Speed, config, engine, func(skill *Skill, current *preprocessing.DifficultyObject, ctx *StepContext) float64 {
		fatigue := skill.CurrentStrain

		if ctx != nil {
			if staminaStrain, ok := ctx.Strain(api.Stamina); ok {
				fatigue = staminaStrain
			}
		}

		return evaluators.EvaluateSpeed(current, skill.Previous(0), fatigue, ceiling, params)
	})
}
