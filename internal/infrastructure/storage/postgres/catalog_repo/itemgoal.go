package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"junkshop/internal/core/apperror"
	"junkshop/internal/domain/catalogs/itemgoal"
	"junkshop/internal/infrastructure/storage/postgres"
)

const itemGoalTable = "item_goals"

// ItemGoalRepo is the PostgreSQL repository for the item goal catalog.
type ItemGoalRepo struct {
	*BaseCatalogRepo[*itemgoal.ItemGoal]
}

var _ itemgoal.Repository = (*ItemGoalRepo)(nil)

// NewItemGoalRepo creates the repository.
func NewItemGoalRepo(txManager *postgres.TxManager) *ItemGoalRepo {
	return &ItemGoalRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			itemGoalTable,
			postgres.ExtractDBColumns[itemgoal.ItemGoal](),
			func() *itemgoal.ItemGoal { return &itemgoal.ItemGoal{} },
		),
	}
}

// GetByKey retrieves the goal for (item, branch, organization). The item
// match is case-insensitive, mirroring register aggregation.
func (r *ItemGoalRepo) GetByKey(ctx context.Context, item, branch, organizationID string) (*itemgoal.ItemGoal, error) {
	goal := &itemgoal.ItemGoal{}

	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[itemgoal.ItemGoal]()...).
		From(itemGoalTable).
		Where(squirrel.Expr("LOWER(name) = LOWER(?)", item)).
		Where(squirrel.Eq{"branch": branch}).
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), goal, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(itemGoalTable, item)
		}
		return nil, fmt.Errorf("get by key: %w", err)
	}
	return goal, nil
}

// UnitForItem returns the unit already in use for an item name within an
// organization, or "" when the item is not tracked anywhere yet.
func (r *ItemGoalRepo) UnitForItem(ctx context.Context, item, organizationID string) (string, error) {
	sql, args, err := r.Builder().
		Select("unit").
		From(itemGoalTable).
		Where(squirrel.Expr("LOWER(name) = LOWER(?)", item)).
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	var unit string
	if err := pgxscan.Get(ctx, r.querier(ctx), &unit, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("unit for item: %w", err)
	}
	return unit, nil
}
