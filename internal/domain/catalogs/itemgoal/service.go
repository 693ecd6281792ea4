package itemgoal

import (
	"context"
	"fmt"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/id"
	"junkshop/internal/core/tx"
	"junkshop/internal/domain"
	"junkshop/internal/domain/progress"
	"junkshop/internal/domain/registers/processed"
	"junkshop/pkg/logger"
)

// Service provides business logic for the item goal catalog.
type Service struct {
	repo      Repository
	register  *processed.Service
	txManager tx.Manager
	hooks     *domain.HookRegistry[*ItemGoal]
}

// NewService creates a new item goal service.
func NewService(repo Repository, register *processed.Service, txManager tx.Manager) *Service {
	s := &Service{
		repo:      repo,
		register:  register,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*ItemGoal](),
	}

	s.hooks.OnBeforeCreate(s.checkDuplicateKey)
	s.hooks.OnBeforeCreate(s.checkUnitConsistency)
	s.hooks.OnBeforeUpdate(s.checkUnitConsistency)

	return s
}

// checkDuplicateKey rejects a second goal for the same (item, branch,
// organization) triple. The item comparison is case-insensitive, matching
// the register aggregation.
func (s *Service) checkDuplicateKey(ctx context.Context, goal *ItemGoal) error {
	existing, err := s.repo.GetByKey(ctx, goal.Item(), goal.Branch, goal.OrganizationID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("check duplicate goal: %w", err)
	}
	if existing != nil && existing.ID != goal.ID {
		return apperror.NewDuplicate("item goal", "item", goal.Item())
	}
	return nil
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*ItemGoal] {
	return s.hooks
}

// checkUnitConsistency enforces unit immutability: once any goal exists for an
// item name, every goal for that name must carry the same unit. Processed logs
// are unit-less and interpreted through the goal, so a second unit would
// silently change the meaning of historical records.
func (s *Service) checkUnitConsistency(ctx context.Context, goal *ItemGoal) error {
	existing, err := s.repo.UnitForItem(ctx, goal.Item(), goal.OrganizationID)
	if err != nil {
		return fmt.Errorf("check unit for %q: %w", goal.Item(), err)
	}
	if existing != "" && existing != string(goal.Unit) {
		return apperror.NewBusinessRule(
			apperror.CodeUnitImmutable,
			fmt.Sprintf("item %q is already tracked in %q", goal.Item(), existing),
		).WithDetail("item", goal.Item()).WithDetail("unit", existing)
	}
	return nil
}

// Create creates a new item goal.
func (s *Service) Create(ctx context.Context, goal *ItemGoal) error {
	if err := goal.Validate(ctx); err != nil {
		return err
	}

	if err := s.hooks.RunBeforeCreate(ctx, goal); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, goal); err != nil {
			return fmt.Errorf("create item goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, goal); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "item goal created",
		"id", goal.ID,
		"item", goal.Item(),
		"branch", goal.Branch,
	)

	return nil
}

// GetByID retrieves a goal by ID.
func (s *Service) GetByID(ctx context.Context, goalID id.ID) (*ItemGoal, error) {
	return s.repo.GetByID(ctx, goalID)
}

// Update updates an existing goal.
func (s *Service) Update(ctx context.Context, goal *ItemGoal) error {
	if err := goal.Validate(ctx); err != nil {
		return err
	}

	if err := s.hooks.RunBeforeUpdate(ctx, goal); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, goal); err != nil {
			return fmt.Errorf("update item goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterUpdate(ctx, goal); err != nil {
		logger.Warn(ctx, "after-update hook failed", "error", err)
	}

	return nil
}

// Delete soft-deletes a goal. Goals are admin-removed only, never
// auto-deleted; processed history stays untouched.
func (s *Service) Delete(ctx context.Context, goalID id.ID) error {
	return s.repo.SetDeletionMark(ctx, goalID, true)
}

// List retrieves goals with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*ItemGoal], error) {
	return s.repo.List(ctx, filter)
}

// CardView is the read model behind one inventory card: the goal, the
// aggregated processed total, and the segmented indicator.
type CardView struct {
	Goal      *ItemGoal          `json:"goal"`
	Processed processed.Total    `json:"processed"`
	Indicator progress.Indicator `json:"indicator"`

	// ProcessedDisplay / GoalDisplay are the two-decimal formatted strings
	// shown side by side on the card ("15,234.50 kg / 20,000.00 kg").
	ProcessedDisplay string `json:"processedDisplay"`
	GoalDisplay      string `json:"goalDisplay"`
}

// Card assembles the card read model for one goal. Recomputed from register
// rows on every call; nothing is cached, so change notifications can simply
// re-invoke it.
func (s *Service) Card(ctx context.Context, goalID id.ID) (*CardView, error) {
	goal, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	total, err := s.register.TotalFor(ctx, processed.Key{
		Item:           goal.Item(),
		Branch:         goal.Branch,
		OrganizationID: goal.OrganizationID,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate processed total: %w", err)
	}

	return &CardView{
		Goal:             goal,
		Processed:        total,
		Indicator:        progress.Compute(total.Quantity, goal.GoalQuantity, progress.DefaultSegments),
		ProcessedDisplay: total.Display(),
		GoalDisplay:      goal.GoalQuantity.Display(),
	}, nil
}
