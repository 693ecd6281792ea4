package shipment

import "junkshop/internal/core/types"

// Summary is the money view of one shipment. Capital is what the load was
// worth at departure, revenue what it fetched on arrival. Margin stays nil
// until at least one line has been weighed out, because a zero margin and an
// unknown margin must render differently.
type Summary struct {
	Capital types.Money  `json:"capital"`
	Revenue types.Money  `json:"revenue"`
	Margin  *types.Money `json:"margin,omitempty"`
}

// MarginPlaceholder is rendered in place of a margin that cannot be computed
// yet.
const MarginPlaceholder = "—"

// Summarize computes the summary from lines. Always derived, never stored;
// the header capital snapshot is ignored here.
func Summarize(lines []ShippedLine) Summary {
	capital := types.Zero()
	revenue := types.Zero()
	anyOut := false

	for _, l := range lines {
		capital = capital.Add(l.Price.Mul(l.InQuantity.Money()))
		if l.OutQuantity != nil {
			anyOut = true
			revenue = revenue.Add(l.Price.Mul(l.OutQuantity.Money()))
		}
	}

	summary := Summary{Capital: capital, Revenue: revenue}
	if anyOut {
		margin := revenue.Sub(capital)
		summary.Margin = &margin
	}
	return summary
}

// MarginDisplay formats the margin, or the placeholder when it is not
// computable yet.
func (s Summary) MarginDisplay() string {
	if s.Margin == nil {
		return MarginPlaceholder
	}
	return types.FormatAmount(*s.Margin)
}

// CapitalDisplay formats the capital figure.
func (s Summary) CapitalDisplay() string {
	return types.FormatAmount(s.Capital)
}

// RevenueDisplay formats the revenue figure.
func (s Summary) RevenueDisplay() string {
	return types.FormatAmount(s.Revenue)
}
