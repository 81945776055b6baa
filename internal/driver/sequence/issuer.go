// Package sequence issues the human-readable driver identifier assigned
// at approval. Every implementation delegates the increment to an
// atomic storage primitive (Postgres sequence, Redis INCR, or an atomic
// counter for tests) so two concurrent approvals can never race to the
// same value. Issued values are never reused; a failed approval after
// issuance burns the value and leaves a gap in the series.
package sequence

import (
	"context"
	"fmt"
)

// Issuer returns the next driver identifier, unique and strictly
// increasing across concurrent callers.
type Issuer interface {
	Next(ctx context.Context) (string, error)
}

// Format renders a sequence value as the wire driver identifier, e.g.
// DRV-00042. Uniqueness and ordering come from the sequence, not the
// format; the padding only keeps ids sortable as strings.
func Format(n int64) string {
	return fmt.Sprintf("DRV-%05d", n)
}
