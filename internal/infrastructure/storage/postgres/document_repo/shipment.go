package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/id"
	"junkshop/internal/core/types"
	"junkshop/internal/domain"
	"junkshop/internal/domain/documents/shipment"
	"junkshop/internal/infrastructure/storage/postgres"
)

const (
	shipmentTable     = "doc_shipments"
	shipmentLineTable = "doc_shipment_lines"
)

// ShipmentRepo is the PostgreSQL repository for shipment documents.
type ShipmentRepo struct {
	*BaseDocumentRepo[*shipment.Shipment]
	txManager *postgres.TxManager
}

var _ shipment.Repository = (*ShipmentRepo)(nil)

// NewShipmentRepo creates the repository.
func NewShipmentRepo(txManager *postgres.TxManager) *ShipmentRepo {
	return &ShipmentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			shipmentTable,
			postgres.ExtractDBColumns[shipment.Shipment](),
			func() *shipment.Shipment { return &shipment.Shipment{} },
		),
		txManager: txManager,
	}
}

// SaveLines inserts the document's lines; COPY inside a transaction.
func (r *ShipmentRepo) SaveLines(ctx context.Context, shipmentID id.ID, lines []shipment.ShippedLine) error {
	if len(lines) == 0 {
		return nil
	}

	columns := postgres.ExtractDBColumns[shipment.ShippedLine]()

	if r.txManager.InTransaction(ctx) {
		rows := make([][]any, 0, len(lines))
		for _, l := range lines {
			data := postgres.StructToMap(l)
			row := make([]any, 0, len(columns))
			for _, col := range columns {
				row = append(row, data[col])
			}
			rows = append(rows, row)
		}
		inserter := postgres.NewBatchInserter(r.txManager)
		if _, err := inserter.CopyFromSlice(ctx, shipmentLineTable, columns, rows); err != nil {
			return fmt.Errorf("copy shipment lines: %w", err)
		}
		return nil
	}

	q := r.Builder().Insert(shipmentLineTable).Columns(columns...)
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
		return fmt.Errorf("insert shipment lines: %w", err)
	}
	return nil
}

// GetByID loads a header with its lines.
func (r *ShipmentRepo) GetByID(ctx context.Context, shipmentID id.ID) (*shipment.Shipment, error) {
	doc, err := r.GetHeader(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[shipment.ShippedLine]()...).
		From(shipmentLineTable).
		Where(squirrel.Eq{"shipment_id": shipmentID}).
		OrderBy("line_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.querier(ctx), &doc.Lines, sql, args...); err != nil {
		return nil, fmt.Errorf("select shipment lines: %w", err)
	}
	return doc, nil
}

// List loads a page of headers and attaches their lines, so listings can
// show capital and per-line profit without a round trip per document.
func (r *ShipmentRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*shipment.Shipment], error) {
	result, err := r.BaseDocumentRepo.List(ctx, filter)
	if err != nil || len(result.Items) == 0 {
		return result, err
	}

	ids := make([]id.ID, 0, len(result.Items))
	byID := make(map[id.ID]*shipment.Shipment, len(result.Items))
	for _, sh := range result.Items {
		ids = append(ids, sh.ID)
		byID[sh.ID] = sh
	}

	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[shipment.ShippedLine]()...).
		From(shipmentLineTable).
		Where(squirrel.Eq{"shipment_id": ids}).
		OrderBy("shipment_id", "line_no ASC").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	var lines []shipment.ShippedLine
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return result, fmt.Errorf("select shipment lines: %w", err)
	}
	for _, l := range lines {
		if sh, ok := byID[l.ShipmentID]; ok {
			sh.Lines = append(sh.Lines, l)
		}
	}
	return result, nil
}

// UpdateLineOut writes one line's weigh-out quantity.
func (r *ShipmentRepo) UpdateLineOut(ctx context.Context, lineID id.ID, out types.Quantity) error {
	sql, args, err := r.Builder().
		Update(shipmentLineTable).
		Set("out_quantity", out).
		Where(squirrel.Eq{"id": lineID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update line out: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(shipmentLineTable, lineID.String())
	}
	return nil
}
