package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "drivergate/pkg/domain-errors"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to active", StatusPending, StatusActive, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"active to rejected", StatusActive, StatusRejected, true},
		{"active to active reissues", StatusActive, StatusActive, true},
		{"rejected to active", StatusRejected, StatusActive, true},
		{"rejected to rejected", StatusRejected, StatusRejected, true},
		{"nothing moves back to pending", StatusActive, StatusPending, false},
		{"unknown status goes nowhere", Status("Banned"), StatusActive, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("accepts lifecycle states", func(t *testing.T) {
		for _, raw := range []string{"Pending", "Active", "Rejected"} {
			st, err := ParseStatus(raw)
			assert.NoError(t, err)
			assert.Equal(t, Status(raw), st)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParseStatus("pending")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
