package models

import dErrors "drivergate/pkg/domain-errors"

// Status is the lifecycle state of a driver application.
type Status string

const (
	// StatusPending is the initial state, set only by registration intake.
	StatusPending Status = "Pending"
	// StatusActive is set by admin approval alongside driver id issuance.
	StatusActive Status = "Active"
	// StatusRejected is set by admin rejection.
	StatusRejected Status = "Rejected"
)

// allowedTransitions makes the state machine explicit. The product
// deliberately permits approve/reject from any state: re-approving an
// Active or Rejected driver issues a fresh driver id and resets the
// bonus. Tightening this table is a product decision, not a bug fix.
var allowedTransitions = map[Status][]Status{
	StatusPending:  {StatusActive, StatusRejected},
	StatusActive:   {StatusActive, StatusRejected},
	StatusRejected: {StatusActive, StatusRejected},
}

// Valid reports whether s is one of the three lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ParseStatus validates a wire status value (used for list filtering).
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", dErrors.Newf(dErrors.CodeBadRequest, "unknown status %q", s)
	}
	return st, nil
}
