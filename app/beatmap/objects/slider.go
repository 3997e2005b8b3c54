package objects

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Slider is a path-type object. Path holds the already-approximated polyline, Path[0] being the head.
type Slider struct {
	*HitObject

	Path []mgl64.Vec2

	// RepeatCount is the number of spans, so a slider without repeats has RepeatCount 1
	RepeatCount int

	// nestedCount is the number of nested objects (head, ticks, repeats, tail)
	nestedCount int
}

func NewSlider(startTime, endTime float64, path []mgl64.Vec2, repeatCount, nestedCount int, newCombo bool) *Slider {
	if len(path) == 0 {
		panic("slider path can't be empty")
	}

	repeatCount = max(1, repeatCount)

	slider := &Slider{
		HitObject: &HitObject{
			StartTime: startTime,
			EndTime:   max(startTime, endTime),
			StartPos:  path[0],
			NewCombo:  newCombo,
		},
		Path:        path,
		RepeatCount: repeatCount,
		nestedCount: nestedCount,
	}

	slider.EndPos = slider.GetPositionAtSpanEnd(repeatCount - 1)

	return slider
}

func (slider *Slider) GetType() Type {
	return SLIDER
}

// GetNestedCount returns the number of nested objects. When not provided, only head, repeats and tail are assumed.
func (slider *Slider) GetNestedCount() int {
	if slider.nestedCount > 0 {
		return slider.nestedCount
	}

	return slider.RepeatCount + 1
}

// GetLength returns length of a single span
func (slider *Slider) GetLength() float64 {
	length := 0.0

	for i := 1; i < len(slider.Path); i++ {
		length += slider.Path[i].Sub(slider.Path[i-1]).Len()
	}

	return length
}

func (slider *Slider) GetPositionAtSpanEnd(span int) mgl64.Vec2 {
	if span%2 == 0 {
		return slider.Path[len(slider.Path)-1]
	}

	return slider.Path[0]
}

// GetCheckpoints returns path vertices in the order the cursor passes them across all spans, excluding the head
func (slider *Slider) GetCheckpoints() []mgl64.Vec2 {
	if len(slider.Path) < 2 {
		return nil
	}

	points := make([]mgl64.Vec2, 0, (len(slider.Path)-1)*slider.RepeatCount)

	for span := 0; span < slider.RepeatCount; span++ {
		if span%2 == 0 {
			points = append(points, slider.Path[1:]...)
			continue
		}

		for i := len(slider.Path) - 2; i >= 0; i-- {
			points = append(points, slider.Path[i])
		}
	}

	return points
}
