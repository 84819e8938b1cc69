package match

import "slices"

// Rank filters results to those scoring strictly above opts.MinScore, sorts
// them by descending score and truncates to opts.TopK.
//
// Equal scores keep their input order (stable sort), so the order of the
// candidate corpus decides ties.
func Rank(results []MatchResult, opts Options) []MatchResult {
	ranked := make([]MatchResult, 0, len(results))
	for _, r := range results {
		if r.Score > opts.MinScore {
			ranked = append(ranked, r)
		}
	}

	slices.SortStableFunc(ranked, func(a, b MatchResult) int {
		return b.Score - a.Score
	})

	if opts.TopK > 0 && len(ranked) > opts.TopK {
		ranked = ranked[:opts.TopK]
	}

	return ranked
}
