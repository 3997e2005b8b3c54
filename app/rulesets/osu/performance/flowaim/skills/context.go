package skills

import (
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
)

// StepContext carries strains published by already evaluated skills for the object being processed.
// Skills only read it; each skill publishes its own strain after processing.
type StepContext struct {
	Index int

	strains   [api.DimensionCount]float64
	published [api.DimensionCount]bool
}

// Begin clears the context for the next object
func (ctx *StepContext) Begin(index int) {
	ctx.Index = index
	ctx.strains = [api.DimensionCount]float64{}
	ctx.published = [api.DimensionCount]bool{}
}

// Strain returns running strain of dimension for the current object, if it was already evaluated
func (ctx *StepContext) Strain(dimension api.Dimension) (float64, bool) {
	if dimension < 0 || dimension >= api.DimensionCount {
		return 0, false
	}

	return ctx.strains[dimension], ctx.published[dimension]
}

func (ctx *StepContext) publish(dimension api.Dimension, strain float64) {
	ctx.strains[dimension] = strain
	ctx.published[dimension] = true
}
