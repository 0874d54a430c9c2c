package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Epsilon is the tolerance used when comparing collider coordinates.
	Epsilon = 1e-9
)

// NearlyZero reports whether v is within Epsilon of zero.
func NearlyZero(v float64) bool {
	return math.Abs(v) <= Epsilon
}
