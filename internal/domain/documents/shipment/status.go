package shipment

import (
	"junkshop/internal/core/apperror"
)

// Status is the lifecycle state of a shipment.
type Status string

const (
	// StatusOngoing — the load is en route. Initial state.
	StatusOngoing Status = "ONGOING"

	// StatusDone — arrived and fully weighed out.
	StatusDone Status = "DONE"

	// StatusCancelled — called off; the reason lives in the comment.
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOngoing, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Config tunes the status machine.
type Config struct {
	// AllowReopen permits leaving the DONE and CANCELLED states
	// (DONE→ONGOING, CANCELLED→ONGOING, DONE↔CANCELLED). Back-office
	// operators routinely fix mis-clicked statuses, so it defaults on;
	// switch it off to make DONE and CANCELLED terminal.
	AllowReopen bool
}

// DefaultConfig returns the default machine configuration.
func DefaultConfig() Config {
	return Config{AllowReopen: true}
}

// Machine evaluates status transitions against a shipment's state.
type Machine struct {
	cfg Config
}

// NewMachine creates a status machine.
func NewMachine(cfg Config) Machine {
	return Machine{cfg: cfg}
}

// Authorize checks whether sh may move to target. It never mutates the
// shipment; on rejection the caller's state is untouched.
func (m Machine) Authorize(sh *Shipment, target Status) error {
	if !target.Valid() {
		return apperror.NewTransitionRejected(string(sh.Status), string(target), "unknown status")
	}

	if sh.Status == target {
		return apperror.NewTransitionRejected(string(sh.Status), string(target), "already in this status")
	}

	if !m.cfg.AllowReopen && sh.Status != StatusOngoing {
		return apperror.NewTransitionRejected(string(sh.Status), string(target), "status is final")
	}

	if target == StatusDone && !sh.Deliverable() {
		if sh.Arrival == nil {
			return apperror.NewTransitionRejected(string(sh.Status), string(target), "arrival not recorded")
		}
		return apperror.NewIncompleteDelivery(sh.MissingOutLines())
	}

	return nil
}
