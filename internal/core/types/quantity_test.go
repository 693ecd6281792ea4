package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantityLenient(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"10", 10},
		{"5.5", 5.5},
		{"  3.25 ", 3.25},
		{"-2", -2},
		{"", 0},
		{"abc", 0},
		{"1.2.3", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseQuantityLenient(tt.raw).Float64(), 1e-9, "raw=%q", tt.raw)
	}
}

func TestQuantity_String(t *testing.T) {
	assert.Equal(t, "15.5000", NewQuantityFromFloat64(15.5).String())
	assert.Equal(t, "-0.2500", NewQuantityFromFloat64(-0.25).String())
}

func TestQuantity_Display(t *testing.T) {
	assert.Equal(t, "15,234.50", NewQuantityFromFloat64(15234.5).Display())
	assert.Equal(t, "0.00", Quantity(0).Display())
}

func TestQuantity_JSONRoundtrip(t *testing.T) {
	q := NewQuantityFromFloat64(12.75)
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, "12.7500", string(data))

	var back Quantity
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, q, back)

	// String-encoded quantities from intake are accepted too.
	var fromStr Quantity
	require.NoError(t, json.Unmarshal([]byte(`"5.5"`), &fromStr))
	assert.Equal(t, NewQuantityFromFloat64(5.5), fromStr)
}
