package itemgoal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/id"
	"junkshop/internal/core/types"
	"junkshop/internal/domain"
	"junkshop/internal/domain/registers/processed"
)

type fakeRepo struct {
	goals map[id.ID]*ItemGoal
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{goals: make(map[id.ID]*ItemGoal)}
}

func (r *fakeRepo) Create(_ context.Context, g *ItemGoal) error {
	// Store a copy so later mutations of the caller's pointer don't leak
	// into the "persisted" state, mirroring a real repository.
	stored := *g
	r.goals[g.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, goalID id.ID) (*ItemGoal, error) {
	g, ok := r.goals[goalID]
	if !ok {
		return nil, apperror.NewNotFound("item goal", goalID)
	}
	return g, nil
}

func (r *fakeRepo) Update(_ context.Context, g *ItemGoal) error {
	stored := *g
	r.goals[g.ID] = &stored
	return nil
}

func (r *fakeRepo) SetDeletionMark(_ context.Context, goalID id.ID, marked bool) error {
	g, ok := r.goals[goalID]
	if !ok {
		return apperror.NewNotFound("item goal", goalID)
	}
	g.DeletionMark = marked
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ domain.ListFilter) (domain.ListResult[*ItemGoal], error) {
	var items []*ItemGoal
	for _, g := range r.goals {
		items = append(items, g)
	}
	return domain.ListResult[*ItemGoal]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeRepo) Exists(_ context.Context, goalID id.ID) (bool, error) {
	_, ok := r.goals[goalID]
	return ok, nil
}

func (r *fakeRepo) GetByKey(_ context.Context, item, branch, organizationID string) (*ItemGoal, error) {
	for _, g := range r.goals {
		if strings.EqualFold(g.Item(), item) && g.Branch == branch && g.OrganizationID == organizationID {
			return g, nil
		}
	}
	return nil, apperror.NewNotFound("item goal", item)
}

func (r *fakeRepo) UnitForItem(_ context.Context, item, organizationID string) (string, error) {
	for _, g := range r.goals {
		if strings.EqualFold(g.Item(), item) && g.OrganizationID == organizationID {
			return string(g.Unit), nil
		}
	}
	return "", nil
}

type fakeRegisterRepo struct {
	logs []processed.Log
}

func (r *fakeRegisterRepo) Insert(_ context.Context, logs []processed.Log) error {
	r.logs = append(r.logs, logs...)
	return nil
}

func (r *fakeRegisterRepo) ListByOrganization(_ context.Context, _ string) ([]processed.Log, error) {
	return r.logs, nil
}

func (r *fakeRegisterRepo) ListByKey(_ context.Context, key processed.Key) ([]processed.Log, error) {
	var out []processed.Log
	for _, l := range r.logs {
		if key.Matches(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeRegisterRepo) ListSince(_ context.Context, _ string, _ time.Time) ([]processed.Log, error) {
	return r.logs, nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *fakeRepo, *fakeRegisterRepo) {
	repo := newFakeRepo()
	regRepo := &fakeRegisterRepo{}
	svc := NewService(repo, processed.NewService(regRepo), fakeTxManager{})
	return svc, repo, regRepo
}

func validGoal() *ItemGoal {
	g := New("Copper Wire", "Main Yard", "org-1", types.UnitKg)
	g.Type = "Metal"
	g.Price = types.MustMoney("320.00")
	g.Commission = types.MustMoney("5.00")
	g.GoalQuantity = types.NewQuantityFromFloat64(20000)
	return g
}

func TestService_Create(t *testing.T) {
	ctx := t.Context()

	t.Run("valid goal", func(t *testing.T) {
		svc, repo, _ := newTestService()
		g := validGoal()

		require.NoError(t, svc.Create(ctx, g))
		assert.Contains(t, repo.goals, g.ID)
	})

	t.Run("duplicate key rejected case-insensitively", func(t *testing.T) {
		svc, _, _ := newTestService()
		require.NoError(t, svc.Create(ctx, validGoal()))

		dup := validGoal()
		dup.Name = "COPPER WIRE"

		err := svc.Create(ctx, dup)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))
	})

	t.Run("same item allowed in another branch with same unit", func(t *testing.T) {
		svc, _, _ := newTestService()
		require.NoError(t, svc.Create(ctx, validGoal()))

		other := validGoal()
		other.Branch = "North Yard"

		require.NoError(t, svc.Create(ctx, other))
	})

	t.Run("unit immutable across branches", func(t *testing.T) {
		svc, _, _ := newTestService()
		require.NoError(t, svc.Create(ctx, validGoal()))

		other := validGoal()
		other.Branch = "North Yard"
		other.Unit = types.UnitPiece

		err := svc.Create(ctx, other)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeUnitImmutable))
	})

	t.Run("invalid goal rejected before hooks", func(t *testing.T) {
		svc, repo, _ := newTestService()
		g := validGoal()
		g.GoalQuantity = 0

		err := svc.Create(ctx, g)
		require.Error(t, err)
		assert.Empty(t, repo.goals)
	})
}

func TestService_Update_UnitImmutable(t *testing.T) {
	ctx := t.Context()
	svc, _, _ := newTestService()

	g := validGoal()
	require.NoError(t, svc.Create(ctx, g))

	g.Unit = types.UnitCase
	err := svc.Update(ctx, g)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnitImmutable))
}

func TestService_Delete_SoftDeletes(t *testing.T) {
	ctx := t.Context()
	svc, repo, _ := newTestService()

	g := validGoal()
	require.NoError(t, svc.Create(ctx, g))
	require.NoError(t, svc.Delete(ctx, g.ID))

	assert.True(t, repo.goals[g.ID].DeletionMark)
}

func TestService_Card(t *testing.T) {
	ctx := t.Context()
	svc, _, regRepo := newTestService()

	g := validGoal()
	require.NoError(t, svc.Create(ctx, g))

	regRepo.logs = []processed.Log{
		processed.NewLog("copper wire", "Main Yard", "org-1", "9000"),
		processed.NewLog("Copper Wire", "Main Yard", "org-1", "1000.5"),
		processed.NewLog("Copper Wire", "North Yard", "org-1", "500"),
	}

	card, err := svc.Card(ctx, g.ID)
	require.NoError(t, err)

	assert.InDelta(t, 10000.5, card.Processed.Quantity.Float64(), 1e-9)
	assert.Equal(t, 6, card.Indicator.FilledSegments)
	assert.InDelta(t, 50.0025, card.Indicator.Percentage, 1e-6)
	assert.Equal(t, "10,000.50", card.ProcessedDisplay)
	assert.Equal(t, "20,000.00", card.GoalDisplay)
}

func TestService_Card_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Card(t.Context(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
