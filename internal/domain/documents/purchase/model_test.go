package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/types"
)

func commissionRate(s string) *types.Money {
	m := types.MustMoney(s)
	return &m
}

func validInput() LineInput {
	return LineInput{
		Type:           "Metal",
		Item:           "Copper Wire",
		Price:          types.MustMoney("320.00"),
		Unit:           types.UnitKg,
		Quantity:       types.NewQuantityFromFloat64(12.5),
		CommissionRate: commissionRate("5.00"),
	}
}

func validDropoff(t *testing.T) *Dropoff {
	t.Helper()
	d := New("org-1", "Main Yard")
	d.Seller = "Juan Dela Cruz"
	d.Contact = "0917 000 0000"
	d.Address = "123 Rizal St"
	d.City = "Quezon City"
	return d
}

func TestDropoff_AddLine(t *testing.T) {
	t.Run("snapshots total and commission", func(t *testing.T) {
		d := validDropoff(t)

		line, err := d.AddLine(validInput())
		require.NoError(t, err)

		assert.Equal(t, 1, line.LineNo)
		assert.Equal(t, "4000", line.Total.String())
		require.NotNil(t, line.Commission)
		assert.Equal(t, "62.5", line.Commission.String())
	})

	t.Run("catalog edits after add do not change the line", func(t *testing.T) {
		d := validDropoff(t)
		in := validInput()

		line, err := d.AddLine(in)
		require.NoError(t, err)

		*in.CommissionRate = types.MustMoney("99.00")
		assert.Equal(t, "62.5", line.Commission.String())
	})

	t.Run("missing selection", func(t *testing.T) {
		for _, field := range []string{"type", "item"} {
			d := validDropoff(t)
			in := validInput()
			if field == "type" {
				in.Type = "  "
			} else {
				in.Item = ""
			}

			_, err := d.AddLine(in)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeMissingSelection))
			assert.Empty(t, d.Lines)
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		for _, qty := range []float64{0, -3} {
			d := validDropoff(t)
			in := validInput()
			in.Quantity = types.NewQuantityFromFloat64(qty)

			_, err := d.AddLine(in)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeNonPositiveQuantity))
		}
	})

	t.Run("nil commission rate leaves commission absent", func(t *testing.T) {
		d := validDropoff(t)
		in := validInput()
		in.CommissionRate = nil

		line, err := d.AddLine(in)
		require.NoError(t, err)
		assert.Nil(t, line.Commission)
	})

	t.Run("line numbers follow entry order", func(t *testing.T) {
		d := validDropoff(t)
		for i := 0; i < 3; i++ {
			_, err := d.AddLine(validInput())
			require.NoError(t, err)
		}

		assert.Equal(t, []int{1, 2, 3}, []int{d.Lines[0].LineNo, d.Lines[1].LineNo, d.Lines[2].LineNo})
	})
}

func TestDropoff_RemoveLine(t *testing.T) {
	d := validDropoff(t)
	_, err := d.AddLine(validInput())
	require.NoError(t, err)
	second, err := d.AddLine(validInput())
	require.NoError(t, err)
	_, err = d.AddLine(validInput())
	require.NoError(t, err)

	require.True(t, d.RemoveLine(second.LineID))

	require.Len(t, d.Lines, 2)
	assert.Equal(t, 1, d.Lines[0].LineNo)
	assert.Equal(t, 2, d.Lines[1].LineNo)

	assert.False(t, d.RemoveLine(second.LineID))
}

func TestDropoff_ValidateHeader(t *testing.T) {
	ctx := t.Context()

	t.Run("complete header passes", func(t *testing.T) {
		require.NoError(t, validDropoff(t).ValidateHeader(ctx))
	})

	blanks := []struct {
		name string
		mut  func(*Dropoff)
	}{
		{"organizationId", func(d *Dropoff) { d.OrganizationID = "" }},
		{"seller", func(d *Dropoff) { d.Seller = "" }},
		{"contact", func(d *Dropoff) { d.Contact = "   " }},
		{"address", func(d *Dropoff) { d.Address = "\t" }},
		{"city", func(d *Dropoff) { d.City = "" }},
	}
	for _, tc := range blanks {
		t.Run("blank "+tc.name, func(t *testing.T) {
			d := validDropoff(t)
			tc.mut(d)

			err := d.ValidateHeader(ctx)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeIncompleteHeader))
		})
	}
}

func TestDropoff_ValidateLines(t *testing.T) {
	ctx := t.Context()

	t.Run("no lines", func(t *testing.T) {
		err := validDropoff(t).ValidateLines(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeEmptyLineSet))
	})

	t.Run("complete lines pass", func(t *testing.T) {
		d := validDropoff(t)
		_, err := d.AddLine(validInput())
		require.NoError(t, err)
		require.NoError(t, d.ValidateLines(ctx))
	})

	t.Run("zero price is incomplete", func(t *testing.T) {
		d := validDropoff(t)
		in := validInput()
		in.Price = types.Zero()
		_, err := d.AddLine(in)
		require.NoError(t, err)

		err = d.ValidateLines(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeIncompleteLine, appErr.Code)
		assert.Equal(t, "price", appErr.Details["field"])
	})

	t.Run("tampered zero total is incomplete", func(t *testing.T) {
		d := validDropoff(t)
		_, err := d.AddLine(validInput())
		require.NoError(t, err)
		d.Lines[0].Total = types.Zero()

		err = d.ValidateLines(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeIncompleteLine, appErr.Code)
		assert.Equal(t, "total", appErr.Details["field"])
	})

	t.Run("zero commission is valid, absent is not", func(t *testing.T) {
		d := validDropoff(t)
		in := validInput()
		in.CommissionRate = commissionRate("0")
		_, err := d.AddLine(in)
		require.NoError(t, err)
		require.NoError(t, d.ValidateLines(ctx))

		in = validInput()
		in.CommissionRate = nil
		_, err = d.AddLine(in)
		require.NoError(t, err)

		err = d.ValidateLines(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeIncompleteLine))
	})
}

func TestDropoff_GrandTotal(t *testing.T) {
	d := validDropoff(t)
	_, err := d.AddLine(validInput())
	require.NoError(t, err)

	in := validInput()
	in.Price = types.MustMoney("10.00")
	in.Quantity = types.NewQuantityFromFloat64(3)
	_, err = d.AddLine(in)
	require.NoError(t, err)

	assert.Equal(t, "4030", d.GrandTotal().String())
}
