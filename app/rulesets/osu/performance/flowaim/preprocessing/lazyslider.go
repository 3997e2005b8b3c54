package preprocessing

import (
	"github.com/Givikap120/flowaim-sr/app/beatmap/difficulty"
	"github.com/Givikap120/flowaim-sr/app/beatmap/objects"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	followRadiusMultiplier = 3.0
	tailLeniency           = 36.0
)

// LazySlider is a slider with the path a lazy player's cursor takes to hold it
type LazySlider struct {
	*objects.Slider

	LazyEndPosition mgl64.Vec2

	// LazyTravelDistance is in osu!pixels, not normalized
	LazyTravelDistance float64

	// LazyTravelTime is in map time
	LazyTravelTime float64
}

func NewLazySlider(slider *objects.Slider, d *difficulty.Difficulty) *LazySlider {
	lazy := &LazySlider{Slider: slider}

	followRadius := d.CircleRadiusU * followRadiusMultiplier

	cursor := slider.GetStackedStartPosition()

	for _, checkpoint := range slider.GetCheckpoints() {
		diff := checkpoint.Sub(cursor)
		dist := diff.Len()

		// Cursor only has to move when the checkpoint leaves the follow circle
		if dist > followRadius {
			moved := dist - followRadius
			cursor = cursor.Add(diff.Mul(moved / dist))
			lazy.LazyTravelDistance += moved
		}
	}

	lazy.LazyEndPosition = cursor

	duration := slider.GetDuration()
	lazy.LazyTravelTime = max(duration-tailLeniency, duration/2)

	return lazy
}
