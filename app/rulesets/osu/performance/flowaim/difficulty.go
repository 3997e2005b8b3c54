package flowaim

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Givikap120/flowaim-sr/app/beatmap/difficulty"
	"github.com/Givikap120/flowaim-sr/app/beatmap/objects"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/preprocessing"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/skills"
	"github.com/Givikap120/flowaim-sr/framework/math/mutils"
)

const CurrentVersion int = 20261018

type DifficultyCalculator struct {
	tuning    Tuning
	fullCombo bool
}

func NewDifficultyCalculator() api.IDifficultyCalculator {
	return NewDifficultyCalculatorWithTuning(DefaultTuning())
}

func NewDifficultyCalculatorWithTuning(tuning Tuning) *DifficultyCalculator {
	return &DifficultyCalculator{tuning: tuning}
}

// SetFullComboEstimation enables full combo time solver in CalculateSingle
func (diffCalc *DifficultyCalculator) SetFullComboEstimation(enabled bool) {
	diffCalc.fullCombo = enabled
}

func (diffCalc *DifficultyCalculator) Tuning() Tuning {
	return diffCalc.tuning
}

// rating converts peaks of one dimension to stars, with consistency and length bonuses applied
func (diffCalc *DifficultyCalculator) rating(dimension string, peaks []float64, totalStrain float64, objectCount int, consistencyMultiplier float64) float64 {
	agg := diffCalc.tuning.Aggregation
	decayWeight := diffCalc.tuning.Engine.DecayWeight

	difficultyValue := skills.DifficultyValue(peaks, decayWeight)
	baseRating := math.Sqrt(difficultyValue)

	consistency := skills.ConsistencyValue(peaks, baseRating, decayWeight, agg.Consistency)
	consistencyBonus := math.Pow(consistency, agg.ConsistencyExponent) * consistencyMultiplier

	effectiveLength := skills.EffectiveLength(objectCount, totalStrain, difficultyValue, decayWeight, agg.Length)
	lengthBonus := skills.LengthBonus(effectiveLength, agg.Length)

	rating := baseRating * agg.StarScalingFactor * (1 + consistencyBonus + lengthBonus)

	if !mutils.IsFinite(rating) {
		panic(fmt.Sprintf("%s: non-finite rating %v", dimension, rating))
	}

	return rating
}

// finalPeaks merges stamina variants into aim and speed series and applies the combined bonus to both
func (diffCalc *DifficultyCalculator) finalPeaks(states [api.DimensionCount]*api.StrainState) (finalAim, finalSpeed []float64) {
	agg := diffCalc.tuning.Aggregation

	finalAim = skills.MergePeaks(states[api.Aim].Peaks, states[api.AimStamina].Peaks, agg.MergeDivisor)
	finalSpeed = skills.MergePeaks(states[api.Speed].Peaks, states[api.Stamina].Peaks, agg.MergeDivisor)

	combined := skills.CombinedBonus(finalAim, finalSpeed, agg.CombinedDivisor)

	return skills.AddPeaks(finalAim, combined), skills.AddPeaks(finalSpeed, combined)
}

// getStars converts strain states to Attributes
func (diffCalc *DifficultyCalculator) getStars(states [api.DimensionCount]*api.StrainState, diff *difficulty.Difficulty, attr api.Attributes) api.Attributes {
	checkSectionCounts(states)

	agg := diffCalc.tuning.Aggregation

	finalAim, finalSpeed := diffCalc.finalPeaks(states)

	ratings := [api.DimensionCount]float64{}
	for i, state := range states {
		multiplier := agg.SpeedConsistencyMultiplier
		if state.Dimension.IsAimType() {
			multiplier = agg.AimConsistencyMultiplier
		}

		ratings[i] = diffCalc.rating(state.Dimension.String(), state.Peaks, state.TotalStrain, state.ObjectCount, multiplier)
	}

	objectCount := states[api.Aim].ObjectCount

	aimTotal := max(states[api.Aim].TotalStrain, states[api.AimStamina].TotalStrain)
	speedTotal := max(states[api.Speed].TotalStrain, states[api.Stamina].TotalStrain)

	aimRating := diffCalc.rating("final aim", finalAim, aimTotal, objectCount, agg.AimConsistencyMultiplier)
	speedRating := diffCalc.rating("final speed", finalSpeed, speedTotal, objectCount, agg.SpeedConsistencyMultiplier)

	if diff.CheckModActive(difficulty.TouchDevice) {
		aimRating = math.Pow(aimRating, agg.TouchDeviceExponent)

		for _, d := range []api.Dimension{api.SnapAim, api.FlowAim, api.AimStamina} {
			ratings[d] = math.Pow(ratings[d], agg.TouchDeviceExponent)
		}
	}

	if diff.CheckModActive(difficulty.Relax) {
		aimRating *= agg.RelaxAimMultiplier
		speedRating = 0

		for _, d := range []api.Dimension{api.SnapAim, api.FlowAim, api.AimStamina} {
			ratings[d] *= agg.RelaxAimMultiplier
		}

		ratings[api.Stamina] = 0
	}

	attr.Total = (aimRating + speedRating + math.Abs(aimRating-speedRating)) / 2
	attr.Aim = aimRating
	attr.Speed = speedRating
	attr.SnapAim = ratings[api.SnapAim]
	attr.FlowAim = ratings[api.FlowAim]
	attr.AimStamina = ratings[api.AimStamina]
	attr.Stamina = ratings[api.Stamina]

	attr.AimDifficultStrainCount = skills.CountDifficultStrains(finalAim, skills.DifficultyValue(finalAim, diffCalc.tuning.Engine.DecayWeight))
	attr.SpeedDifficultStrainCount = skills.CountDifficultStrains(finalSpeed, skills.DifficultyValue(finalSpeed, diffCalc.tuning.Engine.DecayWeight))

	attr.Skills = make(map[api.Dimension]*api.StrainState, len(states))
	for _, state := range states {
		attr.Skills[state.Dimension] = state
	}

	return attr
}

func (diffCalc *DifficultyCalculator) addObjectToAttribs(o objects.IHitObject, attr *api.Attributes) {
	if s, ok := o.(*objects.Slider); ok {
		attr.Sliders++
		attr.MaxCombo += s.GetNestedCount() - 1
	} else if _, ok := o.(*objects.Circle); ok {
		attr.Circles++
	} else if _, ok := o.(*objects.Spinner); ok {
		attr.Spinners++
	}

	attr.MaxCombo++
	attr.ObjectCount++
}

func newAttributes(diff *difficulty.Difficulty) api.Attributes {
	return api.Attributes{
		ApproachRate:      diff.ARReal,
		OverallDifficulty: diff.ODReal,
	}
}

// CalculateSingle calculates the final api.Attributes of a map
func (diffCalc *DifficultyCalculator) CalculateSingle(objects []objects.IHitObject, diff *difficulty.Difficulty) api.Attributes {
	attr := newAttributes(diff)

	if len(objects) == 0 {
		return attr
	}

	diffObjects := preprocessing.CreateDifficultyObjects(objects, diff).Iterator()

	processor := NewSkillsProcessor(diffCalc.tuning)

	diffCalc.addObjectToAttribs(objects[0], &attr)

	for {
		o, ok := diffObjects.Next()
		if !ok {
			break
		}

		diffCalc.addObjectToAttribs(objects[o.Index+1], &attr)

		processor.Process(o)
	}

	attr = diffCalc.getStars(processor.Freeze(), diff, attr)

	if diffCalc.fullCombo {
		attr.FullCombo = EstimateFullComboTime(processor.objectStrains, processor.objectTimes, diffCalc.tuning.Engine.DecayWeight, diffCalc.tuning.Aggregation.StarScalingFactor, diffCalc.tuning.FullCombo)
	}

	return attr
}

// CalculateStep calculates successive star ratings for every part of a map
func (diffCalc *DifficultyCalculator) CalculateStep(objects []objects.IHitObject, diff *difficulty.Difficulty) []api.Attributes {
	if len(objects) == 0 {
		return []api.Attributes{}
	}

	modString := difficulty.GetDiffMaskedMods(diff.Mods).String()
	if modString == "" {
		modString = "NM"
	}

	log.Println("Calculating step SR for mods:", modString)

	startTime := time.Now()

	diffObjects := preprocessing.CreateDifficultyObjects(objects, diff).Collect()

	processor := NewSkillsProcessor(diffCalc.tuning)

	stars := make([]api.Attributes, 1, len(objects))

	stars[0] = newAttributes(diff)
	diffCalc.addObjectToAttribs(objects[0], &stars[0])

	for i, o := range diffObjects {
		attr := stars[i]
		attr.Skills = nil
		diffCalc.addObjectToAttribs(objects[i+1], &attr)

		processor.Process(o)

		stars = append(stars, diffCalc.getStars(processor.Snapshot(), diff, attr))
	}

	processor.Freeze()

	endTime := time.Now()

	log.Println("Calculations finished! Took ", endTime.Sub(startTime).Truncate(time.Millisecond).String())

	return stars
}

func (diffCalc *DifficultyCalculator) CalculateStrainPeaks(objects []objects.IHitObject, diff *difficulty.Difficulty) api.StrainPeaks {
	processor := NewSkillsProcessor(diffCalc.tuning)

	if len(objects) > 0 {
		for _, o := range preprocessing.CreateDifficultyObjects(objects, diff).Collect() {
			processor.Process(o)
		}
	}

	states := processor.Freeze()

	checkSectionCounts(states)

	peaks := api.StrainPeaks{
		Aim:        states[api.Aim].Peaks,
		SnapAim:    states[api.SnapAim].Peaks,
		FlowAim:    states[api.FlowAim].Peaks,
		AimStamina: states[api.AimStamina].Peaks,
		Speed:      states[api.Speed].Peaks,
		Stamina:    states[api.Stamina].Peaks,
	}

	peaks.FinalAim, peaks.FinalSpeed = diffCalc.finalPeaks(states)

	scale := diffCalc.tuning.Aggregation.StarScalingFactor

	peaks.Total = make([]float64, len(peaks.FinalAim))

	for i := range peaks.FinalAim {
		aim := math.Sqrt(peaks.FinalAim[i]) * scale
		speed := math.Sqrt(peaks.FinalSpeed[i]) * scale

		peaks.Total[i] = (aim + speed + math.Abs(aim-speed)) / 2
	}

	return peaks
}

func (diffCalc *DifficultyCalculator) GetVersion() int {
	return CurrentVersion
}

func (diffCalc *DifficultyCalculator) GetVersionMessage() string {
	return "2026-10-18: snap/flow aim split, consistency and length bonuses"
}

func checkSectionCounts(states [api.DimensionCount]*api.StrainState) {
	for _, state := range states {
		if len(state.Peaks) != len(states[0].Peaks) {
			panic(fmt.Sprintf("%s has %d sections, %s has %d", state.Dimension, len(state.Peaks), states[0].Dimension, len(states[0].Peaks)))
		}
	}
}
