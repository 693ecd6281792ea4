package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"junkshop/internal/core/types"
)

func qty(f float64) types.Quantity { return types.NewQuantityFromFloat64(f) }

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		processed  float64
		goal       float64
		wantFilled int
		wantPct    float64
	}{
		{"no progress", 0, 100, 0, 0},
		{"minimal progress lights one segment", 1, 100, 1, 1},
		{"tiny fraction still lights one segment", 0.01, 1000, 1, 0.001},
		{"half", 50, 100, 6, 50},
		{"complete", 100, 100, 12, 100},
		{"zero goal", 50, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(qty(tt.processed), qty(tt.goal), DefaultSegments)
			assert.Equal(t, tt.wantFilled, got.FilledSegments)
			assert.InDelta(t, tt.wantPct, got.Percentage, 1e-9)
		})
	}
}

func TestCompute_OverDelivery(t *testing.T) {
	// Percentage is not capped, the segment count is.
	got := Compute(qty(150), qty(100), DefaultSegments)
	assert.Equal(t, DefaultSegments, got.FilledSegments)
	assert.InDelta(t, 150, got.Percentage, 1e-9)
}

func TestCompute_DefaultsSegments(t *testing.T) {
	got := Compute(qty(50), qty(100), 0)
	assert.Equal(t, 6, got.FilledSegments)
}

func TestCompute_RoundingBoundaries(t *testing.T) {
	// 50% of 12 segments = 6.0 exactly; 46% rounds to 6; 45% rounds down to 5.
	assert.Equal(t, 6, Compute(qty(46), qty(100), 12).FilledSegments)
	assert.Equal(t, 5, Compute(qty(45), qty(100), 12).FilledSegments)
}
