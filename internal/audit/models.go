// Package audit records driver lifecycle events. Services emit events
// through a Publisher; a background worker drains them into a Store.
// This is where the balance-adjustment reason is persisted instead of
// being dropped after a log line.
package audit

import (
	"context"
	"time"

	id "drivergate/pkg/domain"
)

// Action names a driver lifecycle event.
type Action string

const (
	ActionDriverRegistered Action = "driver_registered"
	ActionDriverApproved   Action = "driver_approved"
	ActionDriverRejected   Action = "driver_rejected"
	ActionBalanceAdjusted  Action = "balance_adjusted"
	ActionDriverDeleted    Action = "driver_deleted"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time   `json:"timestamp"`
	RecordID  id.RecordID `json:"record_id"`
	Action    Action      `json:"action"`
	// DriverID is the issued human-readable identifier, set on approval
	// events.
	DriverID string `json:"driver_id,omitempty"`
	// Amount is the signed adjustment, set on balance events.
	Amount float64 `json:"amount,omitempty"`
	// Reason is the operator-supplied note on balance adjustments.
	Reason string `json:"reason,omitempty"`
	// RequestID correlates the event with the HTTP request log line.
	RequestID string `json:"request_id,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	// ListByRecord returns events for one driver record, oldest first.
	ListByRecord(ctx context.Context, recordID id.RecordID) ([]Event, error)
}

// Publisher accepts events from domain logic. Implementations must not
// block request handling on persistence.
type Publisher interface {
	Emit(ctx context.Context, event Event)
}
