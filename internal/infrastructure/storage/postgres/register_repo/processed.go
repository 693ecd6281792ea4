// Package register_repo provides PostgreSQL implementations for register
// repositories.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"junkshop/internal/domain/registers/processed"
	"junkshop/internal/infrastructure/storage/postgres"
)

const processedTable = "reg_processed_items"

var processedColumns = []string{
	"line_id", "item", "branch", "organization_id", "quantity", "recorded_at",
}

// ProcessedRepo implements processed.Repository.
type ProcessedRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ processed.Repository = (*ProcessedRepo)(nil)

// NewProcessedRepo creates the register repository.
func NewProcessedRepo(txManager *postgres.TxManager) *ProcessedRepo {
	return &ProcessedRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert appends records. Inside a transaction the COPY protocol is used;
// outside, a plain batch insert.
func (r *ProcessedRepo) Insert(ctx context.Context, logs []processed.Log) error {
	if len(logs) == 0 {
		return nil
	}

	if r.txManager.InTransaction(ctx) {
		inserter := postgres.NewBatchInserter(r.txManager)
		rows := make([][]any, 0, len(logs))
		for _, l := range logs {
			rows = append(rows, []any{
				l.LineID, l.Item, l.Branch, l.OrganizationID, l.Quantity, l.RecordedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, processedTable, processedColumns, rows); err != nil {
			return fmt.Errorf("copy processed records: %w", err)
		}
		return nil
	}
	q := r.builder.Insert(processedTable).Columns(processedColumns...)
	for _, l := range logs {
		q = q.Values(l.LineID, l.Item, l.Branch, l.OrganizationID, l.Quantity, l.RecordedAt)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert processed records: %w", err)
	}
	return nil
}

// ListByOrganization returns all records for an organization, newest first.
func (r *ProcessedRepo) ListByOrganization(ctx context.Context, organizationID string) ([]processed.Log, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"organization_id": organizationID})
	return r.selectLogs(ctx, q)
}

// ListByKey returns records matching an aggregation key. The item filter is
// case-insensitive; branch and organization are exact.
func (r *ProcessedRepo) ListByKey(ctx context.Context, key processed.Key) ([]processed.Log, error) {
	q := r.baseSelect().
		Where(squirrel.Expr("LOWER(item) = LOWER(?)", key.Item)).
		Where(squirrel.Eq{"branch": key.Branch}).
		Where(squirrel.Eq{"organization_id": key.OrganizationID})
	return r.selectLogs(ctx, q)
}

// ListSince returns records at or after the given time, oldest first.
func (r *ProcessedRepo) ListSince(ctx context.Context, organizationID string, since time.Time) ([]processed.Log, error) {
	q := r.builder.
		Select(processedColumns...).
		From(processedTable).
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.GtOrEq{"recorded_at": since}).
		OrderBy("recorded_at ASC")
	return r.selectLogs(ctx, q)
}

func (r *ProcessedRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.
		Select(processedColumns...).
		From(processedTable).
		OrderBy("recorded_at DESC")
}

func (r *ProcessedRepo) selectLogs(ctx context.Context, q squirrel.SelectBuilder) ([]processed.Log, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var logs []processed.Log
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &logs, sql, args...); err != nil {
		return nil, fmt.Errorf("select processed records: %w", err)
	}
	return logs, nil
}
