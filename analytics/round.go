package analytics

import "math"

// round2 rounds to two decimal places. Exact halves go to the even
// neighbour, so 0.125 becomes 0.12 and 0.625 becomes 0.62.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// ratio returns num/den, or 0 when den is not positive.
func ratio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return 0
}
