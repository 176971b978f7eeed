package model

import "math"

// maxRoundable is the magnitude above which float64 no longer resolves
// cents, so Round2 returns such values unchanged.
const maxRoundable = 1e15

// Round2 rounds v to two decimal places, ties toward positive infinity.
// Non-finite and very large values are returned as is.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.Abs(v) >= maxRoundable {
		return v
	}
	return math.Floor(v*100+0.5) / 100
}

// SaturatingInt truncates v toward zero and clamps it to the 32-bit integer
// range. NaN becomes 0.
func SaturatingInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	default:
		return int(v)
	}
}
