package flowaim

import (
	"fmt"
	"math"

	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	"github.com/Givikap120/flowaim-sr/framework/math/mutils"
)

// EstimateFullComboTime finds the skill level whose expected time to full combo the map matches the target time.
// Every object is an independent attempt succeeding with probability exp(-(strain/skill)^k);
// a failed attempt restarts the map. strains and times (seconds) are per object.
func EstimateFullComboTime(strains, times []float64, decayWeight, starScalingFactor float64, p FullComboParameters) *api.FullComboResult {
	if len(strains) != len(times) {
		panic(fmt.Sprintf("full combo: %d strains for %d objects", len(strains), len(times)))
	}

	mapLength := 0.0
	for _, t := range times {
		mapLength += t
	}

	result := &api.FullComboResult{
		MapLength:  mapLength,
		TargetTime: p.TargetTime * max(1, mapLength/p.BaselineLength),
	}

	k := p.DifficultyExponent

	strainSum := 0.0
	for _, s := range strains {
		strainSum += math.Pow(s, k)
	}

	if mapLength <= 0 || strainSum <= 0 {
		result.ExpectedTime = mapLength
		result.Converged = true

		return result
	}

	targetRatio := math.Log(result.TargetTime / mapLength)

	// Initial guess solves L*exp(sum((s/skill)^k)) = T
	skill := math.Pow(strainSum/targetRatio, 1/k)

	for result.Iterations < p.MaxIterations {
		result.Iterations++

		lnExpected := logExpectedTime(strains, times, skill, k)

		ratio := (lnExpected - math.Log(mapLength)) / targetRatio
		if ratio <= 0 {
			break
		}

		next := skill * math.Pow(ratio, 1/k)
		change := math.Abs(next-skill) / skill

		skill = next

		if change <= p.Precision {
			result.Converged = true
			break
		}
	}

	result.Skill = skill
	result.ExpectedTime = math.Exp(logExpectedTime(strains, times, skill, k))
	result.Rating = math.Sqrt(skill/(1-decayWeight)) * starScalingFactor

	if !mutils.IsFinite(result.Rating) || !mutils.IsFinite(result.Skill) {
		panic(fmt.Sprintf("full combo: non-finite skill %v", result.Skill))
	}

	return result
}

// logExpectedTime returns natural logarithm of expected full combo time at given skill
func logExpectedTime(strains, times []float64, skill, k float64) float64 {
	lnExpected := math.Inf(-1)

	for i, s := range strains {
		lnExpected = mutils.LogAddExp(lnExpected, math.Log(times[i])) + math.Pow(s/skill, k)
	}

	return lnExpected
}
