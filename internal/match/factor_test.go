package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributeFactors(t *testing.T) {
	tests := []struct {
		name           string
		factor         Factor
		query          Item
		candidate      Item
		wantScore      float64
		wantApplicable bool
	}{
		{"location match", LocationFactor(), Item{Location: "Library"}, Item{Location: "Library"}, 30, true},
		{"location is case sensitive", LocationFactor(), Item{Location: "library"}, Item{Location: "Library"}, 0, true},
		{"location absent on query", LocationFactor(), Item{}, Item{Location: "Library"}, 0, false},
		{"location absent on candidate", LocationFactor(), Item{Location: "Library"}, Item{}, 0, false},
		{"category match", CategoryFactor(), Item{Category: "Bags"}, Item{Category: "Bags"}, 25, true},
		{"category mismatch", CategoryFactor(), Item{Category: "Bags"}, Item{Category: "Electronics"}, 0, true},
		{"color ignores case", ColorFactor(), Item{Color: "blue"}, Item{Color: "Blue"}, 20, true},
		{"color absent", ColorFactor(), Item{}, Item{Color: "Blue"}, 0, false},
		{"brand ignores case", BrandFactor(), Item{Brand: "APPLE"}, Item{Brand: "Apple"}, 15, true},
		{"brand mismatch", BrandFactor(), Item{Brand: "Apple"}, Item{Brand: "Fossil"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.factor.Score(tt.query, tt.candidate)
			assert.Equal(t, tt.wantScore, res.Score)
			assert.Equal(t, tt.wantApplicable, res.Applicable)
			assert.Equal(t, tt.factor.Weight(), res.Weight)
			assert.Equal(t, tt.factor.Name(), res.Factor)
		})
	}
}

func TestDescriptionFactor(t *testing.T) {
	f := DescriptionFactor()

	t.Run("two points per shared keyword", func(t *testing.T) {
		res := f.Score(Item{Description: "silver watch leather"}, Item{Description: "Analog silver watch with leather strap."})
		assert.True(t, res.Applicable)
		assert.Equal(t, 6.0, res.Score)
		assert.Equal(t, "shared keywords: silver, watch, leather", res.Detail)
	})

	t.Run("capped at weight", func(t *testing.T) {
		text := "alpha bravo charlie delta echo foxtrot"
		res := f.Score(Item{Description: text}, Item{Description: text})
		assert.Equal(t, 10.0, res.Score)
	})

	t.Run("duplicates counted once", func(t *testing.T) {
		res := f.Score(Item{Description: "blue blue blue"}, Item{Description: "blue bag"})
		assert.Equal(t, 2.0, res.Score)
	})

	t.Run("short words ignored", func(t *testing.T) {
		res := f.Score(Item{Description: "red pen"}, Item{Description: "red pen"})
		assert.True(t, res.Applicable)
		assert.Equal(t, 0.0, res.Score)
	})

	t.Run("blank description not applicable", func(t *testing.T) {
		res := f.Score(Item{Description: "  "}, Item{Description: "red pen"})
		assert.False(t, res.Applicable)
	})
}

func TestDefaultFactorWeightsSumTo100(t *testing.T) {
	var total float64
	for _, f := range DefaultFactors() {
		total += f.Weight()
	}
	assert.Equal(t, 100.0, total)
}
