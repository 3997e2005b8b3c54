package preprocessing

import (
	"math"

	"github.com/Givikap120/flowaim-sr/app/beatmap/difficulty"
	"github.com/Givikap120/flowaim-sr/app/beatmap/objects"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	NormalizedRadius        = 52.0
	CircleSizeBuffThreshold = 30.0
	MinDeltaTime            = 50

	// Objects closer than this (in normalized units) overlap visually
	maximumOverlapDistance = NormalizedRadius * 2
)

type DifficultyObject struct {
	Index int

	Diff *difficulty.Difficulty

	BaseObject objects.IHitObject

	IsSlider  bool
	IsSpinner bool

	lastObject objects.IHitObject

	lastLastObject objects.IHitObject

	DeltaTime float64

	StartTime float64

	EndTime float64

	JumpDistance float64

	TravelDistance float64

	TravelTime float64

	// Angle is NaN for the first two objects or after a spinner
	Angle float64

	// OverlapScaling is NaN when current object doesn't overlap the previous one
	OverlapScaling float64

	// LastDistance is the distance from two objects back, NaN when absent
	LastDistance float64

	StrainTime float64

	ClockRate float64

	Preempt float64
}

func NewDifficultyObject(hitObject, lastLastObject, lastObject objects.IHitObject, d *difficulty.Difficulty, index int) *DifficultyObject {
	obj := &DifficultyObject{
		Index:          index,
		Diff:           d,
		BaseObject:     hitObject,
		lastObject:     lastObject,
		lastLastObject: lastLastObject,
		DeltaTime:      (hitObject.GetStartTime() - lastObject.GetStartTime()) / d.Speed,
		StartTime:      hitObject.GetStartTime() / d.Speed,
		EndTime:        hitObject.GetEndTime() / d.Speed,
		Angle:          math.NaN(),
		OverlapScaling: math.NaN(),
		LastDistance:   math.NaN(),
		ClockRate:      d.Speed,
		Preempt:        d.PreemptU / d.Speed,
	}

	obj.IsSpinner = hitObject.GetType() == objects.SPINNER

	if _, ok := hitObject.(*LazySlider); ok {
		obj.IsSlider = true
	}

	obj.StrainTime = max(obj.DeltaTime, MinDeltaTime)

	obj.setDistances()

	return obj
}

// LastObject returns the raw object preceding this one
func (o *DifficultyObject) LastObject() objects.IHitObject {
	return o.lastObject
}

func (o *DifficultyObject) setDistances() {
	scalingFactor := NormalizedRadius / o.Diff.CircleRadiusU

	if o.Diff.CircleRadiusU < CircleSizeBuffThreshold {
		smallCircleBonus := min(CircleSizeBuffThreshold-o.Diff.CircleRadiusU, 5.0) / 50.0
		scalingFactor *= 1.0 + smallCircleBonus
	}

	if currentSlider, ok := o.BaseObject.(*LazySlider); ok {
		o.TravelDistance = currentSlider.LazyTravelDistance * scalingFactor
		o.TravelTime = max(currentSlider.LazyTravelTime/o.ClockRate, MinDeltaTime)
	}

	if o.IsSpinner || o.lastObject.GetType() == objects.SPINNER {
		return
	}

	lastCursorPosition := getEndCursorPosition(o.lastObject)
	currentPosition := o.BaseObject.GetStackedStartPosition()

	o.JumpDistance = currentPosition.Mul(scalingFactor).Sub(lastCursorPosition.Mul(scalingFactor)).Len()

	if o.JumpDistance < maximumOverlapDistance && o.DeltaTime < o.Preempt {
		o.OverlapScaling = 0.5 + 0.5*o.JumpDistance/maximumOverlapDistance
	}

	if o.lastLastObject == nil || o.lastLastObject.GetType() == objects.SPINNER {
		return
	}

	lastLastCursorPosition := getEndCursorPosition(o.lastLastObject)

	o.LastDistance = currentPosition.Sub(lastLastCursorPosition).Len() * scalingFactor

	v1 := lastLastCursorPosition.Sub(o.lastObject.GetStackedStartPosition())
	v2 := currentPosition.Sub(lastCursorPosition)
	dot := v1.Dot(v2)
	det := v1.X()*v2.Y() - v1.Y()*v2.X()
	o.Angle = math.Abs(math.Atan2(det, dot))
}

func getEndCursorPosition(obj objects.IHitObject) (pos mgl64.Vec2) {
	pos = obj.GetStackedStartPosition()

	if s, ok := obj.(*LazySlider); ok {
		pos = s.LazyEndPosition
	}

	return
}
