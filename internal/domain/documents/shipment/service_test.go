package shipment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/id"
	"junkshop/internal/core/types"
	"junkshop/internal/domain"
)

type fakeRepo struct {
	mu        sync.Mutex
	headers   map[id.ID]*Shipment
	lineOuts  map[id.ID]types.Quantity
	failLines map[id.ID]error
	outWrites int
}

func newShipmentRepo() *fakeRepo {
	return &fakeRepo{
		headers:   make(map[id.ID]*Shipment),
		lineOuts:  make(map[id.ID]types.Quantity),
		failLines: make(map[id.ID]error),
	}
}

func (r *fakeRepo) CreateHeader(_ context.Context, s *Shipment) error {
	r.headers[s.ID] = s
	return nil
}

func (r *fakeRepo) SaveLines(_ context.Context, _ id.ID, _ []ShippedLine) error {
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, shipmentID id.ID) (*Shipment, error) {
	s, ok := r.headers[shipmentID]
	if !ok {
		return nil, apperror.NewNotFound("shipment", shipmentID)
	}
	return s, nil
}

func (r *fakeRepo) List(_ context.Context, _ domain.ListFilter) (domain.ListResult[*Shipment], error) {
	return domain.ListResult[*Shipment]{}, nil
}

func (r *fakeRepo) UpdateHeader(_ context.Context, s *Shipment) error {
	r.headers[s.ID] = s
	return nil
}

func (r *fakeRepo) UpdateLineOut(_ context.Context, lineID id.ID, out types.Quantity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outWrites++
	if err := r.failLines[lineID]; err != nil {
		return err
	}
	r.lineOuts[lineID] = out
	return nil
}

type fakeRecorder struct {
	mu   sync.Mutex
	recs []TransitionRecord
	fail error
}

func (r *fakeRecorder) RecordTransition(_ context.Context, rec TransitionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.recs = append(r.recs, rec)
	return nil
}

type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newShipmentService(repo *fakeRepo, rec *fakeRecorder) *Service {
	return NewService(repo, rec, passTxManager{}, DefaultConfig())
}

func enRouteShipment(t *testing.T, lines int) *Shipment {
	t.Helper()
	sh := New("org-1", "Main Yard")
	sh.Buyer = "Manila Smelting Corp"
	sh.Destination = "Manila"
	sh.Departure = time.Now().UTC()
	for i := 0; i < lines; i++ {
		_, err := sh.AddLine(LineInput{
			Item:       "Copper Wire",
			Unit:       types.UnitKg,
			Price:      types.MustMoney("320.00"),
			InQuantity: qty(100),
		})
		require.NoError(t, err)
	}
	return sh
}

func completionFor(sh *Shipment, out float64) CompletionInput {
	outs := make(map[id.ID]types.Quantity, len(sh.Lines))
	for _, l := range sh.Lines {
		outs[l.LineID] = qty(out)
	}
	return CompletionInput{Arrival: time.Now().UTC(), OutQuantities: outs}
}

func TestService_Create_SnapshotsCapital(t *testing.T) {
	repo := newShipmentRepo()
	svc := newShipmentService(repo, &fakeRecorder{})

	sh := enRouteShipment(t, 2)
	require.NoError(t, svc.Create(t.Context(), sh))

	assert.Equal(t, "64000", sh.CapitalSnapshot.String())
	assert.Contains(t, repo.headers, sh.ID)
}

func TestService_Complete(t *testing.T) {
	ctx := t.Context()

	t.Run("writes arrival, weigh-outs and status", func(t *testing.T) {
		repo := newShipmentRepo()
		rec := &fakeRecorder{}
		svc := newShipmentService(repo, rec)

		sh := enRouteShipment(t, 3)
		require.NoError(t, svc.Create(ctx, sh))

		done, summary, err := svc.Complete(ctx, sh.ID, completionFor(sh, 98))
		require.NoError(t, err)

		assert.Equal(t, StatusDone, done.Status)
		require.NotNil(t, done.Arrival)
		assert.Len(t, repo.lineOuts, 3)

		assert.Equal(t, "96000", summary.Capital.String())
		assert.Equal(t, "94080", summary.Revenue.String())
		require.NotNil(t, summary.Margin)
		assert.Equal(t, "-1920", summary.Margin.String())

		require.Len(t, rec.recs, 1)
		assert.Equal(t, StatusOngoing, rec.recs[0].From)
		assert.Equal(t, StatusDone, rec.recs[0].To)
	})

	t.Run("missing arrival rejected before any write", func(t *testing.T) {
		repo := newShipmentRepo()
		svc := newShipmentService(repo, &fakeRecorder{})

		sh := enRouteShipment(t, 1)
		require.NoError(t, svc.Create(ctx, sh))

		in := completionFor(sh, 98)
		in.Arrival = time.Time{}

		_, _, err := svc.Complete(ctx, sh.ID, in)
		require.Error(t, err)
		assert.Zero(t, repo.outWrites)
		assert.Equal(t, StatusOngoing, repo.headers[sh.ID].Status)
	})

	t.Run("missing weigh-out rejected with line ids", func(t *testing.T) {
		repo := newShipmentRepo()
		svc := newShipmentService(repo, &fakeRecorder{})

		sh := enRouteShipment(t, 2)
		require.NoError(t, svc.Create(ctx, sh))

		in := completionFor(sh, 98)
		delete(in.OutQuantities, sh.Lines[1].LineID)

		_, _, err := svc.Complete(ctx, sh.ID, in)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeIncompleteDelivery))
		assert.Zero(t, repo.outWrites)
	})

	t.Run("partial line failure reports every failed line", func(t *testing.T) {
		repo := newShipmentRepo()
		svc := newShipmentService(repo, &fakeRecorder{})

		sh := enRouteShipment(t, 4)
		require.NoError(t, svc.Create(ctx, sh))

		repo.failLines[sh.Lines[1].LineID] = errors.New("deadlock detected")
		repo.failLines[sh.Lines[3].LineID] = errors.New("connection reset")

		_, _, err := svc.Complete(ctx, sh.ID, completionFor(sh, 98))
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodePartialWrite))

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		failed, ok := appErr.Details["failed_line_ids"].([]string)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{
			sh.Lines[1].LineID.String(),
			sh.Lines[3].LineID.String(),
		}, failed)

		// successful writes stay in place
		assert.Len(t, repo.lineOuts, 2)
	})

	t.Run("retry after partial failure repairs the rest", func(t *testing.T) {
		repo := newShipmentRepo()
		svc := newShipmentService(repo, &fakeRecorder{})

		sh := enRouteShipment(t, 2)
		require.NoError(t, svc.Create(ctx, sh))

		repo.failLines[sh.Lines[0].LineID] = errors.New("deadlock detected")
		in := completionFor(sh, 98)

		_, _, err := svc.Complete(ctx, sh.ID, in)
		require.Error(t, err)

		delete(repo.failLines, sh.Lines[0].LineID)

		_, summary, err := svc.Complete(ctx, sh.ID, in)
		require.NoError(t, err)
		assert.Len(t, repo.lineOuts, 2)
		require.NotNil(t, summary.Margin)
	})
}

func TestService_Transition(t *testing.T) {
	ctx := t.Context()

	t.Run("cancel and reopen", func(t *testing.T) {
		repo := newShipmentRepo()
		rec := &fakeRecorder{}
		svc := newShipmentService(repo, rec)

		sh := enRouteShipment(t, 1)
		require.NoError(t, svc.Create(ctx, sh))

		cancelled, err := svc.Transition(ctx, sh.ID, StatusCancelled, "truck breakdown")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)

		reopened, err := svc.Transition(ctx, sh.ID, StatusOngoing, "")
		require.NoError(t, err)
		assert.Equal(t, StatusOngoing, reopened.Status)

		require.Len(t, rec.recs, 2)
		assert.Equal(t, "truck breakdown", rec.recs[0].Note)
	})

	t.Run("rejected transition leaves status untouched", func(t *testing.T) {
		repo := newShipmentRepo()
		svc := newShipmentService(repo, &fakeRecorder{})

		sh := enRouteShipment(t, 1)
		require.NoError(t, svc.Create(ctx, sh))

		_, err := svc.Transition(ctx, sh.ID, StatusDone, "")
		require.Error(t, err)
		assert.Equal(t, StatusOngoing, repo.headers[sh.ID].Status)
	})

	t.Run("audit failure does not undo the transition", func(t *testing.T) {
		repo := newShipmentRepo()
		rec := &fakeRecorder{fail: errors.New("audit store down")}
		svc := newShipmentService(repo, rec)

		sh := enRouteShipment(t, 1)
		require.NoError(t, svc.Create(ctx, sh))

		got, err := svc.Transition(ctx, sh.ID, StatusCancelled, "")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
	})
}
