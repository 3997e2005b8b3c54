package api

import (
	"github.com/Givikap120/flowaim-sr/app/beatmap/difficulty"
	"github.com/Givikap120/flowaim-sr/app/beatmap/objects"
)

type IDifficultyCalculator interface {
	CalculateSingle(objects []objects.IHitObject, diff *difficulty.Difficulty) Attributes
	CalculateStep(objects []objects.IHitObject, diff *difficulty.Difficulty) []Attributes
	CalculateStrainPeaks(objects []objects.IHitObject, diff *difficulty.Difficulty) StrainPeaks
	GetVersion() int
	GetVersionMessage() string
}
