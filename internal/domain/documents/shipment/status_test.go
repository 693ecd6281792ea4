package shipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/types"
)

func deliverableShipment(t *testing.T) *Shipment {
	t.Helper()
	sh := New("org-1", "Main Yard")
	sh.Buyer = "Manila Smelting Corp"
	sh.Destination = "Manila"
	sh.Departure = time.Now().UTC()

	_, err := sh.AddLine(LineInput{
		Item:       "Copper Wire",
		Unit:       types.UnitKg,
		Price:      types.MustMoney("320.00"),
		InQuantity: qty(100),
	})
	require.NoError(t, err)

	arrival := time.Now().UTC()
	sh.Arrival = &arrival
	sh.Lines[0].OutQuantity = qtyPtr(98)
	return sh
}

func TestMachine_Authorize(t *testing.T) {
	m := NewMachine(DefaultConfig())

	t.Run("every directed edge allowed when deliverable", func(t *testing.T) {
		edges := []struct {
			from, to Status
		}{
			{StatusOngoing, StatusDone},
			{StatusOngoing, StatusCancelled},
			{StatusDone, StatusOngoing},
			{StatusDone, StatusCancelled},
			{StatusCancelled, StatusOngoing},
			{StatusCancelled, StatusDone},
		}
		for _, e := range edges {
			sh := deliverableShipment(t)
			sh.Status = e.from
			assert.NoError(t, m.Authorize(sh, e.to), "%s -> %s", e.from, e.to)
		}
	})

	t.Run("self transition rejected", func(t *testing.T) {
		sh := deliverableShipment(t)
		err := m.Authorize(sh, StatusOngoing)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeTransitionRejected))
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		sh := deliverableShipment(t)
		err := m.Authorize(sh, Status("SHIPPED"))
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeTransitionRejected))
	})

	t.Run("done requires arrival", func(t *testing.T) {
		sh := deliverableShipment(t)
		sh.Arrival = nil

		err := m.Authorize(sh, StatusDone)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeTransitionRejected))
		assert.Equal(t, StatusOngoing, sh.Status)
	})

	t.Run("done requires every line weighed out", func(t *testing.T) {
		sh := deliverableShipment(t)
		_, err := sh.AddLine(LineInput{
			Item:       "Aluminum Cans",
			Unit:       types.UnitKg,
			Price:      types.MustMoney("55.00"),
			InQuantity: qty(40),
		})
		require.NoError(t, err)

		err = m.Authorize(sh, StatusDone)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeIncompleteDelivery))

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, []string{sh.Lines[1].LineID.String()}, appErr.Details["missing_line_ids"])
	})

	t.Run("cancel never needs delivery data", func(t *testing.T) {
		sh := deliverableShipment(t)
		sh.Arrival = nil
		sh.Lines[0].OutQuantity = nil

		assert.NoError(t, m.Authorize(sh, StatusCancelled))
	})
}

func TestMachine_ReopenDisabled(t *testing.T) {
	m := NewMachine(Config{AllowReopen: false})

	t.Run("done and cancelled become terminal", func(t *testing.T) {
		for _, from := range []Status{StatusDone, StatusCancelled} {
			for _, to := range []Status{StatusOngoing, StatusDone, StatusCancelled} {
				if from == to {
					continue
				}
				sh := deliverableShipment(t)
				sh.Status = from

				err := m.Authorize(sh, to)
				require.Error(t, err, "%s -> %s", from, to)
				assert.True(t, apperror.IsCode(err, apperror.CodeTransitionRejected))
			}
		}
	})

	t.Run("ongoing edges still work", func(t *testing.T) {
		sh := deliverableShipment(t)
		assert.NoError(t, m.Authorize(sh, StatusDone))
		assert.NoError(t, m.Authorize(sh, StatusCancelled))
	})
}
