package objects

import "github.com/go-gl/mathgl/mgl64"

// PlayfieldCenter is where spinners are placed
var PlayfieldCenter = mgl64.Vec2{256, 192}

type Spinner struct {
	*HitObject
}

func NewSpinner(startTime, endTime float64) *Spinner {
	return &Spinner{
		HitObject: &HitObject{
			StartTime: startTime,
			EndTime:   max(startTime, endTime),
			StartPos:  PlayfieldCenter,
			EndPos:    PlayfieldCenter,
			NewCombo:  true,
		},
	}
}

func (spinner *Spinner) GetType() Type {
	return SPINNER
}
