package scoring

import "math"

// clamp constrains v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// logistic is the standard sigmoid 1/(1+e^-z).
func logistic(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
