package evaluators

import (
	"math"
	"testing"

	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim/preprocessing"
	"github.com/Givikap120/flowaim-sr/framework/math/mutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func object(jump, deltaTime, angle float64) *preprocessing.DifficultyObject {
	return &preprocessing.DifficultyObject{
		DeltaTime:      deltaTime,
		StrainTime:     max(deltaTime, preprocessing.MinDeltaTime),
		JumpDistance:   jump,
		Angle:          angle,
		OverlapScaling: math.NaN(),
		LastDistance:   math.NaN(),
	}
}

func TestAimSpinner(t *testing.T) {
	o := object(300, 100, math.NaN())
	o.IsSpinner = true

	assert.Equal(t, AimValues{}, EvaluateAim(o, object(300, 100, math.NaN()), DefaultAimParameters()))
}

func TestAimFirstObject(t *testing.T) {
	p := DefaultAimParameters()
	o := object(325, 100, math.NaN())

	values := EvaluateAim(o, nil, p)

	distance := math.Pow(325, 0.99)
	base := distance / 100

	flowBonus := 0.195 * mutils.Logistic(26-math.Pow(distance, 1.7)/400)

	assert.InEpsilon(t, base*(1+flowBonus), values.Merged, 1e-12)
	assert.InEpsilon(t, base, values.Snap+values.Flow/(1+p.FlowFactor), 1e-12)
}

func TestAimFlowBonusFollowsDistance(t *testing.T) {
	p := DefaultAimParameters()

	// Two circles 100ms and 400px apart at CS5 play as a snap
	far := object(400*52.0/32.0, 100, math.NaN())
	values := EvaluateAim(far, nil, p)

	assert.Less(t, values.FlowProbability, 1e-40)
	assert.InEpsilon(t, math.Pow(far.JumpDistance, 0.99)/100, values.Merged, 1e-12)

	// Short fast movements keep nearly the full bonus
	near := object(40, 100, math.NaN())
	base := math.Pow(near.JumpDistance, 0.99) / 100

	assert.Greater(t, EvaluateAim(near, nil, p).Merged, base*(1+0.9*p.FlowFactor))
}

func TestAimAngleBonus(t *testing.T) {
	p := DefaultAimParameters()
	previous := object(200, 150, math.NaN())

	sharp := EvaluateAim(object(200, 150, math.Pi), previous, p)
	wide := EvaluateAim(object(200, 150, p.AngleBonusBegin), previous, p)

	assert.Greater(t, sharp.Merged, wide.Merged)
}

func TestAimFlowAngleBonus(t *testing.T) {
	p := DefaultAimParameters()
	previous := object(100, 100, math.NaN())

	// 100 degrees is past angle bonus begin but before flow angle begin
	current := object(100, 100, 100*math.Pi/180)

	expected := 1 + math.Sin(1.5*(p.FlowAngleBegin-current.Angle))*p.FlowAngleFactor

	assert.InEpsilon(t, expected, flowAngleBonusOf(current, previous, p), 1e-12)
	assert.Equal(t, 1.0, flowAngleBonusOf(object(100, 100, math.Pi), previous, p))
}

func TestAimRepeatJumpPenalty(t *testing.T) {
	p := DefaultAimParameters()

	free := object(p.RepeatJumpMaxSpacing, 150, math.NaN())

	repeated := object(p.RepeatJumpMaxSpacing, 150, math.NaN())
	repeated.LastDistance = 0

	require.InDelta(t, p.RepeatJumpPenalty, repeatJumpPenaltyOf(repeated, p), 1e-12)
	assert.Zero(t, repeatJumpPenaltyOf(free, p))

	assert.InEpsilon(t, (1-p.RepeatJumpPenalty)*EvaluateAim(free, nil, p).Merged, EvaluateAim(repeated, nil, p).Merged, 1e-12)

	short := object(p.RepeatJumpMinSpacing-1, 150, math.NaN())
	short.LastDistance = 0
	assert.Zero(t, repeatJumpPenaltyOf(short, p))
}

func TestAimControlBonus(t *testing.T) {
	p := DefaultAimParameters()

	steady := controlBonusOf(object(300, 100, math.NaN()), object(300, 100, math.NaN()), p)
	change := controlBonusOf(object(300, 100, math.NaN()), object(60, 100, math.NaN()), p)

	assert.InEpsilon(t, 300/(200*p.ControlDivisor), steady, 1e-12)
	assert.Greater(t, change, steady)
}

func TestAimOverlapScaling(t *testing.T) {
	p := DefaultAimParameters()

	apart := object(80, 100, math.NaN())
	overlapping := object(80, 100, math.NaN())
	overlapping.OverlapScaling = 0.5 + 0.5*80/104

	// Flow bonus depends on scaled distance too, but is saturated at this distance
	assert.InEpsilon(t, overlapping.OverlapScaling*EvaluateAim(apart, nil, p).Merged, EvaluateAim(overlapping, nil, p).Merged, 1e-8)
}

func TestFlowProbability(t *testing.T) {
	p := DefaultAimParameters()

	closeFast := FlowProbability(object(50, 80, math.NaN()), p)
	farFast := FlowProbability(object(400, 80, math.NaN()), p)
	closeSlow := FlowProbability(object(50, 300, math.NaN()), p)

	assert.Greater(t, closeFast, farFast)
	assert.Greater(t, closeFast, closeSlow)

	for _, v := range []float64{closeFast, farFast, closeSlow} {
		assert.True(t, v >= 0 && v <= 1)
	}

	straight := FlowProbability(object(100, 100, math.Pi), p)
	back := FlowProbability(object(100, 100, 0), p)
	assert.Greater(t, straight, back)
}

func TestAimSnapFlowSplit(t *testing.T) {
	p := DefaultAimParameters()
	o := object(150, 120, math.NaN())

	values := EvaluateAim(o, nil, p)

	assert.InEpsilon(t, values.FlowProbability, FlowProbability(o, p), 1e-12)
	assert.InEpsilon(t, values.Snap/(1-values.FlowProbability), values.Flow/(values.FlowProbability*(1+p.FlowFactor)), 1e-12)
}

func TestEstimatedPeakStrain(t *testing.T) {
	c := DefaultSpeedCeiling()

	assert.InEpsilon(t, math.Pow(13.6, 1.8)+math.Pow(2.05, 3.8), c.EstimatedPeakStrain(100), 1e-12)
	assert.Greater(t, c.EstimatedPeakStrain(80), c.EstimatedPeakStrain(100))
}

func TestSpeedBase(t *testing.T) {
	p := DefaultSpeedParameters()

	assert.InEpsilon(t, 0.01, EvaluateSpeed(object(0, 100, math.NaN()), nil, math.MaxFloat64, DefaultSpeedCeiling(), p), 1e-12)
}

func TestSpeedBonus(t *testing.T) {
	p := DefaultSpeedParameters()

	value := EvaluateSpeed(object(0, 40, math.NaN()), nil, math.MaxFloat64, DefaultSpeedCeiling(), p)

	// delta time is capped at 50ms
	assert.InEpsilon(t, (1+math.Pow(25.0/40, 2)*0.75)/50, value, 1e-12)
}

func TestSpeedRhythmBonus(t *testing.T) {
	p := DefaultSpeedParameters()
	ceiling := DefaultSpeedCeiling()

	even := EvaluateSpeed(object(0, 120, math.NaN()), object(0, 120, math.NaN()), math.MaxFloat64, ceiling, p)
	uneven := EvaluateSpeed(object(0, 120, math.NaN()), object(0, 100, math.NaN()), math.MaxFloat64, ceiling, p)
	slight := EvaluateSpeed(object(0, 120, math.NaN()), object(0, 110, math.NaN()), math.MaxFloat64, ceiling, p)

	assert.InEpsilon(t, 1.0/120, even, 1e-12)
	assert.InEpsilon(t, 1.11/120, uneven, 1e-12)
	assert.InEpsilon(t, (1+0.25*0.11)/120, slight, 1e-12)
}

func TestSpeedBurst(t *testing.T) {
	p := DefaultSpeedParameters()
	ceiling := DefaultSpeedCeiling()
	o := object(0, 100, math.NaN())

	rested := EvaluateSpeed(o, nil, 0, ceiling, p)
	assert.InEpsilon(t, 0.01*1.05, rested, 1e-12)

	half := ceiling.EstimatedPeakStrain(100) / 2
	assert.InEpsilon(t, 0.025, BurstBonus(100, half, ceiling, p), 1e-12)
	assert.Zero(t, BurstBonus(100, 2*half, ceiling, p))
}

func TestSpeedSpinner(t *testing.T) {
	o := object(0, 100, math.NaN())
	o.IsSpinner = true

	assert.Zero(t, EvaluateSpeed(o, nil, 0, DefaultSpeedCeiling(), DefaultSpeedParameters()))
}
