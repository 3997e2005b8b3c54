package mutils

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Integer | constraints.Float](x, minV, maxV T) T {
	return min(maxV, max(minV, x))
}

func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// Logistic is the standard sigmoid 1/(1+e^-x)
func Logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// LogAddExp returns ln(e^a + e^b) without overflowing for large arguments.
func LogAddExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}

	if math.IsInf(b, -1) {
		return a
	}

	if a < b {
		a, b = b, a
	}

	return a + math.Log1p(math.Exp(b-a))
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
