package shipment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"junkshop/internal/core/apperror"
	appcontext "junkshop/internal/core/context"
	"junkshop/internal/core/id"
	"junkshop/internal/core/tx"
	"junkshop/internal/core/types"
	"junkshop/internal/domain"
	"junkshop/pkg/logger"
)

// Service provides business logic for the shipment lifecycle.
type Service struct {
	repo      Repository
	recorder  TransitionRecorder
	machine   Machine
	txManager tx.Manager
}

// NewService creates a new shipment service.
func NewService(repo Repository, recorder TransitionRecorder, txManager tx.Manager, cfg Config) *Service {
	return &Service{
		repo:      repo,
		recorder:  recorder,
		machine:   NewMachine(cfg),
		txManager: txManager,
	}
}

// Create validates and persists a new shipment, snapshotting the departure
// capital on the header.
func (s *Service) Create(ctx context.Context, sh *Shipment) error {
	if err := sh.Validate(ctx); err != nil {
		return err
	}

	sh.CapitalSnapshot = Summarize(sh.Lines).Capital

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateHeader(ctx, sh); err != nil {
			return fmt.Errorf("create shipment header: %w", err)
		}
		if err := s.repo.SaveLines(ctx, sh.ID, sh.Lines); err != nil {
			return fmt.Errorf("save shipment lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "shipment created",
		"id", sh.ID,
		"buyer", sh.Buyer,
		"destination", sh.Destination,
		"lines", len(sh.Lines),
		"capital", sh.CapitalSnapshot.String(),
	)

	return nil
}

// GetByID loads a shipment with its lines.
func (s *Service) GetByID(ctx context.Context, shipmentID id.ID) (*Shipment, error) {
	return s.repo.GetByID(ctx, shipmentID)
}

// List retrieves shipment headers.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Shipment], error) {
	return s.repo.List(ctx, filter)
}

// Summary recomputes the money view from current lines.
func (s *Service) Summary(ctx context.Context, shipmentID id.ID) (Summary, error) {
	sh, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(sh.Lines), nil
}

// Transition moves a shipment to target after the machine authorizes the
// edge. Moving into DONE goes through Complete instead, because it also has
// arrival and weigh-out data to persist.
func (s *Service) Transition(ctx context.Context, shipmentID id.ID, target Status, note string) (*Shipment, error) {
	sh, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := s.machine.Authorize(sh, target); err != nil {
		return nil, err
	}

	from := sh.Status
	sh.Status = target
	sh.Touch()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.UpdateHeader(ctx, sh)
	})
	if err != nil {
		return nil, fmt.Errorf("update shipment status: %w", err)
	}

	s.recordTransition(ctx, sh, from, target, note)

	logger.Info(ctx, "shipment status changed",
		"id", sh.ID,
		"from", from,
		"to", target,
	)

	return sh, nil
}

// CompletionInput carries the arrival data for Complete.
type CompletionInput struct {
	// Arrival at the buyer
	Arrival time.Time

	// OutQuantities maps line id to the weigh-out reading. Lines already
	// carrying a weigh-out may be omitted.
	OutQuantities map[id.ID]types.Quantity
}

// Complete moves a shipment to DONE: it records the arrival, writes every
// line's weigh-out, flips the status and recomputes the summary.
//
// The header is written first, then the line weigh-outs fan out
// concurrently. Line failures are collected, not short-circuited, and
// successful writes stay in place; the caller retries with the same input
// and only the failed lines do real work again. On any line failure the
// returned error carries the failed line ids.
func (s *Service) Complete(ctx context.Context, shipmentID id.ID, in CompletionInput) (*Shipment, Summary, error) {
	sh, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, Summary{}, err
	}

	if in.Arrival.IsZero() {
		return nil, Summary{}, apperror.NewValidationCode(
			apperror.CodeIncompleteDelivery,
			"arrival time is required",
		)
	}
	arrival := in.Arrival.UTC()
	sh.Arrival = &arrival

	for i := range sh.Lines {
		if out, ok := in.OutQuantities[sh.Lines[i].LineID]; ok {
			sh.Lines[i].OutQuantity = &out
		}
	}

	if missing := sh.MissingOutLines(); len(missing) > 0 {
		return nil, Summary{}, apperror.NewIncompleteDelivery(missing)
	}

	// a retry after a partial line failure arrives with the header already
	// DONE; that is a repair, not a transition
	from := sh.Status
	if from != StatusDone {
		if err := s.machine.Authorize(sh, StatusDone); err != nil {
			return nil, Summary{}, err
		}
		sh.Status = StatusDone
	}
	sh.Touch()

	if err := s.repo.UpdateHeader(ctx, sh); err != nil {
		return nil, Summary{}, fmt.Errorf("update shipment header: %w", err)
	}

	if err := s.writeOutQuantities(ctx, sh); err != nil {
		return nil, Summary{}, err
	}

	if from != StatusDone {
		s.recordTransition(ctx, sh, from, StatusDone, "")
	}

	summary := Summarize(sh.Lines)

	logger.Info(ctx, "shipment completed",
		"id", sh.ID,
		"capital", summary.Capital.String(),
		"revenue", summary.Revenue.String(),
		"margin", summary.MarginDisplay(),
	)

	return sh, summary, nil
}

// writeOutQuantities persists every line's weigh-out concurrently and
// aggregates all failures into one PARTIAL_WRITE_FAILURE error.
func (s *Service) writeOutQuantities(ctx context.Context, sh *Shipment) error {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		failedID []string
		causes   error
	)

	for _, l := range sh.Lines {
		wg.Add(1)
		go func(l ShippedLine) {
			defer wg.Done()
			if err := s.repo.UpdateLineOut(ctx, l.LineID, *l.OutQuantity); err != nil {
				mu.Lock()
				failedID = append(failedID, l.LineID.String())
				causes = multierr.Append(causes, fmt.Errorf("line %s: %w", l.LineID, err))
				mu.Unlock()
			}
		}(l)
	}
	wg.Wait()

	if len(failedID) > 0 {
		logger.Error(ctx, "shipment line weigh-outs partially failed",
			"id", sh.ID,
			"failed", len(failedID),
			"total", len(sh.Lines),
		)
		return apperror.NewPartialWrite(failedID, causes)
	}
	return nil
}

func (s *Service) recordTransition(ctx context.Context, sh *Shipment, from, to Status, note string) {
	if s.recorder == nil {
		return
	}
	rec := TransitionRecord{
		ShipmentID: sh.ID,
		From:       from,
		To:         to,
		OperatorID: appcontext.GetOperatorID(ctx),
		Note:       note,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.recorder.RecordTransition(ctx, rec); err != nil {
		logger.Warn(ctx, "transition audit append failed",
			"id", sh.ID,
			"error", err,
		)
	}
}
