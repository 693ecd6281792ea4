package shipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"junkshop/internal/core/types"
)

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func qtyPtr(v float64) *types.Quantity {
	q := qty(v)
	return &q
}

func TestSummarize(t *testing.T) {
	t.Run("no weigh-outs: margin absent, not zero", func(t *testing.T) {
		sum := Summarize([]ShippedLine{
			{Price: types.MustMoney("320.00"), InQuantity: qty(100)},
			{Price: types.MustMoney("10.00"), InQuantity: qty(50)},
		})

		assert.Equal(t, "32500", sum.Capital.String())
		assert.True(t, sum.Revenue.IsZero())
		assert.Nil(t, sum.Margin)
		assert.Equal(t, MarginPlaceholder, sum.MarginDisplay())
	})

	t.Run("partial weigh-outs count toward revenue and unlock margin", func(t *testing.T) {
		sum := Summarize([]ShippedLine{
			{Price: types.MustMoney("320.00"), InQuantity: qty(100), OutQuantity: qtyPtr(98)},
			{Price: types.MustMoney("10.00"), InQuantity: qty(50)},
		})

		assert.Equal(t, "32500", sum.Capital.String())
		assert.Equal(t, "31360", sum.Revenue.String())
		require.NotNil(t, sum.Margin)
		assert.Equal(t, "-1140", sum.Margin.String())
	})

	t.Run("zero margin renders as a number, not the placeholder", func(t *testing.T) {
		sum := Summarize([]ShippedLine{
			{Price: types.MustMoney("320.00"), InQuantity: qty(100), OutQuantity: qtyPtr(100)},
		})

		assert.NotNil(t, sum.Margin)
		assert.True(t, sum.Margin.IsZero())
		assert.Equal(t, "0.00", sum.MarginDisplay())
	})

	t.Run("weight gain yields positive margin", func(t *testing.T) {
		sum := Summarize([]ShippedLine{
			{Price: types.MustMoney("100.00"), InQuantity: qty(10), OutQuantity: qtyPtr(12)},
		})

		assert.Equal(t, "200", sum.Margin.String())
	})

	t.Run("empty line set", func(t *testing.T) {
		sum := Summarize(nil)
		assert.True(t, sum.Capital.IsZero())
		assert.True(t, sum.Revenue.IsZero())
		assert.Nil(t, sum.Margin)
	})
}

func TestSummary_Displays(t *testing.T) {
	sum := Summarize([]ShippedLine{
		{Price: types.MustMoney("1000.00"), InQuantity: qty(1500), OutQuantity: qtyPtr(1499)},
	})

	assert.Equal(t, "1,500,000.00", sum.CapitalDisplay())
	assert.Equal(t, "1,499,000.00", sum.RevenueDisplay())
	assert.Equal(t, "-1,000.00", sum.MarginDisplay())
}
