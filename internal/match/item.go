package match

// Kind is the report kind of an item
type Kind string

const (
	KindLost  Kind = "lost"
	KindFound Kind = "found"
)

// Valid reports whether k is a known report kind
func (k Kind) Valid() bool {
	return k == KindLost || k == KindFound
}

// Opposite returns the report kind a query of kind k is matched against.
// Unknown kinds return the empty kind.
func (k Kind) Opposite() Kind {
	switch k {
	case KindLost:
		return KindFound
	case KindFound:
		return KindLost
	default:
		return ""
	}
}

// Item is a lost or found report as seen by the engine.
// Empty strings mean the attribute was not supplied.
type Item struct {
	ID          string `json:"id,omitempty"`
	Kind        Kind   `json:"kind,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Category    string `json:"category,omitempty"`
	Color       string `json:"color,omitempty"`
	Brand       string `json:"brand,omitempty"`
}

// MatchResult pairs a candidate with its overall score and the factor
// results that produced it
type MatchResult struct {
	Item    Item           `json:"item"`
	Score   int            `json:"score"`
	Factors []FactorResult `json:"factors"`
}

// Options controls filtering and truncation of ranked results
type Options struct {
	MinScore int `json:"min_score"` // Results must score strictly above this
	TopK     int `json:"top_k"`     // Maximum results; <= 0 keeps all
}
