package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"junkshop/internal/core/id"
	"junkshop/internal/domain"
	"junkshop/internal/domain/documents/purchase"
	"junkshop/internal/infrastructure/storage/postgres"
)

const (
	dropoffTable     = "doc_dropoffs"
	dropoffLineTable = "doc_dropoff_lines"
)

// PurchaseRepo is the PostgreSQL repository for drop-off documents.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.Dropoff]
	txManager *postgres.TxManager
}

var _ purchase.Repository = (*PurchaseRepo)(nil)

// NewPurchaseRepo creates the repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			dropoffTable,
			postgres.ExtractDBColumns[purchase.Dropoff](),
			func() *purchase.Dropoff { return &purchase.Dropoff{} },
		),
		txManager: txManager,
	}
}

// SaveLines inserts the document's lines; COPY inside a transaction.
func (r *PurchaseRepo) SaveLines(ctx context.Context, dropoffID id.ID, lines []purchase.Line) error {
	if len(lines) == 0 {
		return nil
	}

	columns := postgres.ExtractDBColumns[purchase.Line]()

	if r.txManager.InTransaction(ctx) {
		rows := make([][]any, 0, len(lines))
		for _, l := range lines {
			row := make([]any, 0, len(columns))
			data := postgres.StructToMap(l)
			for _, col := range columns {
				row = append(row, data[col])
			}
			rows = append(rows, row)
		}
		inserter := postgres.NewBatchInserter(r.txManager)
		if _, err := inserter.CopyFromSlice(ctx, dropoffLineTable, columns, rows); err != nil {
			return fmt.Errorf("copy drop-off lines: %w", err)
		}
		return nil
	}

	q := r.Builder().Insert(dropoffLineTable).Columns(columns...)
	for _, l := range lines {
		data := postgres.StructToMap(l)
		vals := make([]any, 0, len(columns))
		for _, col := range columns {
			vals = append(vals, data[col])
		}
		q = q.Values(vals...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert drop-off lines: %w", err)
	}
	return nil
}

// GetByID loads a header with its lines.
func (r *PurchaseRepo) GetByID(ctx context.Context, dropoffID id.ID) (*purchase.Dropoff, error) {
	doc, err := r.GetHeader(ctx, dropoffID)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[purchase.Line]()...).
		From(dropoffLineTable).
		Where(squirrel.Eq{"dropoff_id": dropoffID}).
		OrderBy("line_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.querier(ctx), &doc.Lines, sql, args...); err != nil {
		return nil, fmt.Errorf("select drop-off lines: %w", err)
	}
	return doc, nil
}

// List loads a page of headers and attaches their lines. Drop-off totals are
// derived from lines, so listings need them.
func (r *PurchaseRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*purchase.Dropoff], error) {
	result, err := r.BaseDocumentRepo.List(ctx, filter)
	if err != nil || len(result.Items) == 0 {
		return result, err
	}

	ids := make([]id.ID, 0, len(result.Items))
	byID := make(map[id.ID]*purchase.Dropoff, len(result.Items))
	for _, d := range result.Items {
		ids = append(ids, d.ID)
		byID[d.ID] = d
	}

	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[purchase.Line]()...).
		From(dropoffLineTable).
		Where(squirrel.Eq{"dropoff_id": ids}).
		OrderBy("dropoff_id", "line_no ASC").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	var lines []purchase.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return result, fmt.Errorf("select drop-off lines: %w", err)
	}
	for _, l := range lines {
		if d, ok := byID[l.DropoffID]; ok {
			d.Lines = append(d.Lines, l)
		}
	}
	return result, nil
}
