package utils

import "math"

// Round2 rounds to cents. All money passing through the API goes through
// here exactly once per derived value.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
