package match

import (
	"fmt"
	"strings"
)

// Factor weights. They sum to 100.
const (
	LocationWeight    = 30
	CategoryWeight    = 25
	ColorWeight       = 20
	BrandWeight       = 15
	DescriptionWeight = 10
)

// keywordPoints is awarded per shared description keyword
const keywordPoints = 2

// FactorResult is the outcome of one factor for one query/candidate pair.
// Score is always within [0, Weight].
type FactorResult struct {
	Factor     string  `json:"factor"`
	Score      float64 `json:"score"`
	Weight     float64 `json:"weight"`
	Applicable bool    `json:"applicable"`
	Detail     string  `json:"detail,omitempty"`
}

// Factor scores one attribute family of a query against a candidate
type Factor interface {
	Name() string
	Weight() float64
	Score(query, candidate Item) FactorResult
}

// attributeFactor is a binary factor over a single string attribute
type attributeFactor struct {
	name   string
	weight float64
	value  func(Item) string
	equal  func(a, b string) bool
}

func (f attributeFactor) Name() string    { return f.name }
func (f attributeFactor) Weight() float64 { return f.weight }

func (f attributeFactor) Score(query, candidate Item) FactorResult {
	res := FactorResult{Factor: f.name, Weight: f.weight}

	q, c := f.value(query), f.value(candidate)
	if q == "" || c == "" {
		return res
	}

	res.Applicable = true
	if f.equal(q, c) {
		res.Score = f.weight
		res.Detail = fmt.Sprintf("%s matches %s", q, c)
	} else {
		res.Detail = fmt.Sprintf("%s differs from %s", q, c)
	}
	return res
}

func exactEqual(a, b string) bool { return a == b }

func foldEqual(a, b string) bool { return strings.ToLower(a) == strings.ToLower(b) }

// LocationFactor compares location tags exactly
func LocationFactor() Factor {
	return attributeFactor{
		name:   "location",
		weight: LocationWeight,
		value:  func(i Item) string { return i.Location },
		equal:  exactEqual,
	}
}

// CategoryFactor compares category tags exactly
func CategoryFactor() Factor {
	return attributeFactor{
		name:   "category",
		weight: CategoryWeight,
		value:  func(i Item) string { return i.Category },
		equal:  exactEqual,
	}
}

// ColorFactor compares colors ignoring case
func ColorFactor() Factor {
	return attributeFactor{
		name:   "color",
		weight: ColorWeight,
		value:  func(i Item) string { return i.Color },
		equal:  foldEqual,
	}
}

// BrandFactor compares brands ignoring case
func BrandFactor() Factor {
	return attributeFactor{
		name:   "brand",
		weight: BrandWeight,
		value:  func(i Item) string { return i.Brand },
		equal:  foldEqual,
	}
}

// descriptionFactor rewards shared long keywords between descriptions
type descriptionFactor struct{}

// DescriptionFactor scores keyword overlap between descriptions: two points
// per shared keyword, capped at the factor weight
func DescriptionFactor() Factor {
	return descriptionFactor{}
}

func (descriptionFactor) Name() string    { return "description" }
func (descriptionFactor) Weight() float64 { return DescriptionWeight }

func (f descriptionFactor) Score(query, candidate Item) FactorResult {
	res := FactorResult{Factor: f.Name(), Weight: f.Weight()}

	if strings.TrimSpace(query.Description) == "" || strings.TrimSpace(candidate.Description) == "" {
		return res
	}

	res.Applicable = true
	shared := SharedKeywords(query.Description, candidate.Description)
	res.Score = min(float64(len(shared)*keywordPoints), f.Weight())
	if len(shared) > 0 {
		res.Detail = "shared keywords: " + strings.Join(shared, ", ")
	}
	return res
}

// DefaultFactors returns the five standard factors in evaluation order
func DefaultFactors() []Factor {
	return []Factor{
		LocationFactor(),
		CategoryFactor(),
		ColorFactor(),
		BrandFactor(),
		DescriptionFactor(),
	}
}
