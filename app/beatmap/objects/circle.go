package objects

import "github.com/go-gl/mathgl/mgl64"

type Circle struct {
	*HitObject
}

func NewCircle(time float64, position mgl64.Vec2, newCombo bool) *Circle {
	return &Circle{
		HitObject: &HitObject{
			StartTime: time,
			EndTime:   time,
			StartPos:  position,
			EndPos:    position,
			NewCombo:  newCombo,
		},
	}
}

func (circle *Circle) GetType() Type {
	return CIRCLE
}
