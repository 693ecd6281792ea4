package purchase

import (
	"context"
	"fmt"

	"junkshop/internal/core/id"
	"junkshop/internal/core/tx"
	"junkshop/internal/domain"
	"junkshop/pkg/logger"
)

// Service provides business logic for drop-off intake.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new purchase service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Commit validates and persists a drop-off: header first, then the line
// batch, in one transaction. A failure at either step leaves nothing behind.
//
// Buying material does not make it processed. The processed register is fed
// only by the processing intake; a committed drop-off contributes nothing to
// item goal progress until its material goes through that step.
func (s *Service) Commit(ctx context.Context, d *Dropoff) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateHeader(ctx, d); err != nil {
			return fmt.Errorf("create drop-off header: %w", err)
		}
		if err := s.repo.SaveLines(ctx, d.ID, d.Lines); err != nil {
			return fmt.Errorf("save drop-off lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "drop-off committed",
		"id", d.ID,
		"seller", d.Seller,
		"branch", d.Branch,
		"lines", len(d.Lines),
		"total", d.GrandTotal().String(),
	)

	return nil
}

// GetByID loads a drop-off with its lines.
func (s *Service) GetByID(ctx context.Context, dropoffID id.ID) (*Dropoff, error) {
	return s.repo.GetByID(ctx, dropoffID)
}

// List retrieves drop-off headers.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Dropoff], error) {
	return s.repo.List(ctx, filter)
}
