package vmath

import "math"

// Epsilon is the default tolerance for float comparisons in tests and snapping
const Epsilon = 1e-9

// --- Scalar helpers ---

func Abs(x float64) float64 { return math.Abs(x) }

// Sign returns -1, 0 or 1
func Sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxEqual reports whether a and b differ by at most eps
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// Lerp interpolates between a and b, t in [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
