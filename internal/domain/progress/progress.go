// Package progress maps processed-versus-goal ratios onto the segmented
// indicator shown on item cards.
package progress

import (
	"math"

	"junkshop/internal/core/types"
)

// DefaultSegments is the number of bars on the standard item card indicator.
const DefaultSegments = 12

// Indicator is the discrete progress display for one item goal.
type Indicator struct {
	// FilledSegments is how many of the indicator's segments light up.
	// Bounded to [0, segments].
	FilledSegments int `json:"filledSegments"`

	// Percentage is processed/goal as a percentage. Deliberately not capped
	// at 100: over-delivery is shown as >100%.
	Percentage float64 `json:"percentage"`
}

// Compute derives the indicator from a processed total and a goal.
//
// Any nonzero progress lights at least one segment. Without that floor,
// small progress rounds to zero segments and the card looks untouched
// despite logged data.
func Compute(processed, goal types.Quantity, segments int) Indicator {
	if segments <= 0 {
		segments = DefaultSegments
	}

	var pct float64
	if goal.IsPositive() {
		pct = processed.Float64() / goal.Float64() * 100
	}

	filled := 0
	if pct > 0 {
		filled = int(math.Round(pct / 100 * float64(segments)))
		if filled < 1 {
			filled = 1
		}
		if filled > segments {
			filled = segments
		}
	}

	return Indicator{
		FilledSegments: filled,
		Percentage:     pct,
	}
}
