package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		results []FactorResult
		want    int
	}{
		{
			name:    "no results",
			results: nil,
			want:    0,
		},
		{
			name: "nothing applicable",
			results: []FactorResult{
				{Factor: "location", Weight: 30},
				{Factor: "brand", Weight: 15},
			},
			want: 0,
		},
		{
			name: "normalized by applicable weight",
			results: []FactorResult{
				{Factor: "location", Score: 30, Weight: 30, Applicable: true},
				{Factor: "category", Score: 25, Weight: 25, Applicable: true},
				{Factor: "color", Score: 20, Weight: 20, Applicable: true},
				{Factor: "brand", Weight: 15},
				{Factor: "description", Score: 8, Weight: 10, Applicable: true},
			},
			want: 98,
		},
		{
			name: "rounds half up",
			results: []FactorResult{
				{Factor: "a", Score: 1, Weight: 8, Applicable: true},
			},
			want: 13, // 12.5
		},
		{
			name: "all applicable all wrong",
			results: []FactorResult{
				{Factor: "location", Weight: 30, Applicable: true},
				{Factor: "category", Weight: 25, Applicable: true},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.results))
		})
	}
}
