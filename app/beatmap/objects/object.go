package objects

import (
	"github.com/go-gl/mathgl/mgl64"
)

type Type int

const (
	CIRCLE Type = iota
	SLIDER
	SPINNER
)

func (t Type) String() string {
	switch t {
	case CIRCLE:
		return "circle"
	case SLIDER:
		return "slider"
	case SPINNER:
		return "spinner"
	}

	return "unknown"
}

type IHitObject interface {
	GetStartTime() float64
	GetEndTime() float64
	GetDuration() float64

	GetStackedStartPosition() mgl64.Vec2
	GetStackedEndPosition() mgl64.Vec2

	GetType() Type
	IsNewCombo() bool
}

type HitObject struct {
	StartTime float64
	EndTime   float64

	StartPos mgl64.Vec2
	EndPos   mgl64.Vec2

	NewCombo bool
}

func (hitObject *HitObject) GetStartTime() float64 {
	return hitObject.StartTime
}

func (hitObject *HitObject) GetEndTime() float64 {
	return hitObject.EndTime
}

func (hitObject *HitObject) GetDuration() float64 {
	return hitObject.EndTime - hitObject.StartTime
}

func (hitObject *HitObject) GetStackedStartPosition() mgl64.Vec2 {
	return hitObject.StartPos
}

func (hitObject *HitObject) GetStackedEndPosition() mgl64.Vec2 {
	return hitObject.EndPos
}

func (hitObject *HitObject) IsNewCombo() bool {
	return hitObject.NewCombo
}
