package match

import "math"

// Aggregate combines factor results into an overall percentage.
//
// Earned points are divided by the weight of applicable factors only, so a
// query that omits an attribute is not penalized for it. When nothing is
// applicable the score is 0.
func Aggregate(results []FactorResult) int {
	var earned, possible float64
	for _, r := range results {
		earned += r.Score
		if r.Applicable {
			possible += r.Weight
		}
	}

	if possible <= 0 {
		return 0
	}

	score := int(math.Round(100 * earned / possible))
	return max(0, min(score, 100))
}
