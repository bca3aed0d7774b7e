// File: internal/submission/model_test.go
package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"approved is final", StatusApproved, StatusRejected, false},
		{"approved cannot re-approve", StatusApproved, StatusApproved, false},
		{"rejected is final", StatusRejected, StatusApproved, false},
		{"rejected cannot re-reject", StatusRejected, StatusRejected, false},
		{"pending cannot return to pending", StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestDecisionTargetStatus(t *testing.T) {
	status, ok := DecisionApprove.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, status)

	status, ok = DecisionReject.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, StatusRejected, status)

	_, ok = Decision("defer").TargetStatus()
	assert.False(t, ok)
}
