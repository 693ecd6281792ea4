package dto

import (
	"junkshop/internal/domain/registers/processed"
)

// RecordProcessedRequest is the intake body for processed-item logs. The
// quantity is kept as the raw wire string; decoding happens at aggregation
// time.
type RecordProcessedRequest struct {
	Records []ProcessedRecordInput `json:"records" binding:"required,min=1,dive"`
}

// ProcessedRecordInput is one intake row.
type ProcessedRecordInput struct {
	Item     string `json:"item" binding:"required"`
	Branch   string `json:"branch" binding:"required"`
	Quantity string `json:"quantity"`
}

// ToLogs converts the request to register records.
func (r *RecordProcessedRequest) ToLogs(organizationID string) []processed.Log {
	logs := make([]processed.Log, 0, len(r.Records))
	for _, rec := range r.Records {
		logs = append(logs, processed.NewLog(rec.Item, rec.Branch, organizationID, rec.Quantity))
	}
	return logs
}

// ProcessedLogResponse is one register record.
type ProcessedLogResponse struct {
	LineID     string `json:"lineId"`
	Item       string `json:"item"`
	Branch     string `json:"branch"`
	Quantity   string `json:"quantity"`
	RecordedAt string `json:"recordedAt"`
}

// FromProcessedLog converts a register record to its response form.
func FromProcessedLog(l processed.Log) ProcessedLogResponse {
	return ProcessedLogResponse{
		LineID:     l.LineID.String(),
		Item:       l.Item,
		Branch:     l.Branch,
		Quantity:   l.Quantity,
		RecordedAt: l.RecordedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ProcessedTotalResponse is an aggregated total for one key.
type ProcessedTotalResponse struct {
	Item    string `json:"item"`
	Branch  string `json:"branch"`
	Total   string `json:"total"`
	Display string `json:"display"`
}

// FromProcessedTotal converts an aggregation result to its response form.
func FromProcessedTotal(t processed.Total) ProcessedTotalResponse {
	return ProcessedTotalResponse{
		Item:    t.Key.Item,
		Branch:  t.Key.Branch,
		Total:   t.Quantity.String(),
		Display: t.Display(),
	}
}
