package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseComposite(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantAmount string
		wantUnit   Unit
	}{
		{"plain", "12.00/kg", "12.00", UnitKg},
		{"currency symbol", "₱12.50/kg", "12.50", UnitKg},
		{"thousands separators", "₱1,500,000.00/case", "1500000.00", UnitCase},
		{"spaces around separator", " 45.75 / piece ", "45.75", UnitPiece},
		{"no separator", "₱250", "250.00", ""},
		{"garbage amount", "abc/kg", "0.00", UnitKg},
		{"empty", "", "0.00", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseComposite(tt.raw)
			assert.Equal(t, tt.wantAmount, got.Amount.StringFixed(2))
			assert.Equal(t, tt.wantUnit, got.Unit)
		})
	}
}

func TestPriceTag_String(t *testing.T) {
	tag := PriceTag{Amount: MustMoney("12.5"), Unit: UnitKg}
	assert.Equal(t, "12.50/kg", tag.String())

	noUnit := PriceTag{Amount: MustMoney("250")}
	assert.Equal(t, "250.00", noUnit.String())
}

func TestParseCurrency_FailToZero(t *testing.T) {
	// Unparseable input always coerces to zero so aggregation totals stay safe.
	for _, raw := range []string{"", "abc", "   ", "₱", "--"} {
		assert.True(t, ParseCurrency(raw).IsZero(), "raw=%q", raw)
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"₱1,500,000", "1500000"},
		{"1,234.56", "1234.56"},
		{" 12.50 ", "12.5"},
		{"₱ 604,200", "604200"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCurrency(tt.raw).String(), "raw=%q", tt.raw)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,500,000.00", FormatAmount(MustMoney("1500000")))
	assert.Equal(t, "12.50", FormatAmount(MustMoney("12.5")))
	assert.Equal(t, "0.00", FormatAmount(Zero()))
}
