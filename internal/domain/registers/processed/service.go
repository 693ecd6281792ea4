package processed

import (
	"context"
	"fmt"

	"junkshop/pkg/logger"
)

// Service provides business operations for the processed-items register.
type Service struct {
	repo Repository
}

// NewService creates a new register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends processed-item records.
func (s *Service) Record(ctx context.Context, logs []Log) error {
	if len(logs) == 0 {
		return nil
	}

	for i := range logs {
		if err := logs[i].Validate(ctx); err != nil {
			return err
		}
	}

	if err := s.repo.Insert(ctx, logs); err != nil {
		return fmt.Errorf("insert processed logs: %w", err)
	}

	logger.Info(ctx, "recorded processed items",
		"count", len(logs),
		"organization_id", logs[0].OrganizationID,
	)

	return nil
}

// TotalFor computes the running processed total for a key.
//
// Carries no cached state: each call re-reads and re-sums, so it is safe to
// invoke on every change notification.
func (s *Service) TotalFor(ctx context.Context, key Key) (Total, error) {
	logs, err := s.repo.ListByKey(ctx, key)
	if err != nil {
		return Total{}, fmt.Errorf("list processed logs: %w", err)
	}
	return Aggregate(logs, key), nil
}

// ListByOrganization returns all records for an organization.
func (s *Service) ListByOrganization(ctx context.Context, organizationID string) ([]Log, error) {
	return s.repo.ListByOrganization(ctx, organizationID)
}
