package match

import "fmt"

// Confidence buckets an overall score for display
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceFor returns the display bucket of an overall score
func ConfidenceFor(score int) Confidence {
	switch {
	case score >= 70:
		return ConfidenceHigh
	case score >= 40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Explain returns one human-readable line per factor describing how the
// score was reached
func Explain(r MatchResult) []string {
	lines := make([]string, 0, len(r.Factors))
	for _, f := range r.Factors {
		if !f.Applicable {
			lines = append(lines, fmt.Sprintf("%s: not compared", f.Factor))
			continue
		}

		line := fmt.Sprintf("%s: %g/%g", f.Factor, f.Score, f.Weight)
		if f.Detail != "" {
			line += " (" + f.Detail + ")"
		}
		lines = append(lines, line)
	}
	return lines
}
