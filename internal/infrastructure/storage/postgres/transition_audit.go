package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appcontext "junkshop/internal/core/context"
	"junkshop/internal/core/id"
	"junkshop/internal/domain/documents/shipment"
)

// CompressionAlgo names the payload compression used for an audit row.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// TransitionAudit persists the shipment status audit trail. Each row keeps
// the raw transition columns for querying plus a JSON payload with the full
// document snapshot; large payloads are zstd-compressed.
type TransitionAudit struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var _ shipment.TransitionRecorder = (*TransitionAudit)(nil)

// NewTransitionAudit creates the audit trail writer.
func NewTransitionAudit(txManager *TxManager) (*TransitionAudit, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &TransitionAudit{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// RecordTransition implements shipment.TransitionRecorder.
func (a *TransitionAudit) RecordTransition(ctx context.Context, rec shipment.TransitionRecord) error {
	if rec.OperatorID == "" {
		rec.OperatorID = appcontext.GetOperatorID(ctx)
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal transition: %w", err)
	}

	var compressed []byte
	algo := CompressionNone
	if len(payload) > a.compressThreshold {
		compressed = a.encoder.EncodeAll(payload, nil)
		payload = nil
		algo = CompressionZstd
	}

	sql := `
		INSERT INTO shipment_transitions (
			id, shipment_id, from_status, to_status, operator_id, note,
			payload, payload_compressed, compression_algo, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = a.txManager.GetQuerier(ctx).Exec(ctx, sql,
		id.New(), rec.ShipmentID, rec.From, rec.To, rec.OperatorID, rec.Note,
		payload, compressed, algo, rec.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert transition: %w", err)
	}
	return nil
}

// History returns the audit trail for one shipment, newest first.
func (a *TransitionAudit) History(ctx context.Context, shipmentID id.ID, limit int) ([]shipment.TransitionRecord, error) {
	sql := `
		SELECT payload, payload_compressed, compression_algo
		FROM shipment_transitions
		WHERE shipment_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`

	rows, err := a.txManager.GetQuerier(ctx).Query(ctx, sql, shipmentID, limit)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var recs []shipment.TransitionRecord
	for rows.Next() {
		var (
			payload    []byte
			compressed []byte
			algo       CompressionAlgo
		)
		if err := rows.Scan(&payload, &compressed, &algo); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}

		if algo == CompressionZstd && len(compressed) > 0 {
			payload, err = a.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress transition: %w", err)
			}
		}

		var rec shipment.TransitionRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal transition: %w", err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// Close releases the compressor resources.
func (a *TransitionAudit) Close() {
	a.encoder.Close()
	a.decoder.Close()
}
