package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and other
// infrastructure layers return these (optionally wrapped) so services
// can translate them into domain errors.
//
// These represent factual states about resources, not validation
// failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: write collided with an existing row
// - ErrUnavailable: backing service temporarily unreachable
//
// For validation errors (bad input, missing fields), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
