package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableTransitions(t *testing.T) {
	tests := []struct {
		from ApplicationStatus
		want []ApplicationStatus
	}{
		{ApplicationStatusPending, []ApplicationStatus{ApplicationStatusInterviewScheduled, ApplicationStatusAccepted, ApplicationStatusRejected}},
		{ApplicationStatusInterviewScheduled, []ApplicationStatus{ApplicationStatusAccepted, ApplicationStatusRejected}},
		{ApplicationStatusAccepted, []ApplicationStatus{}},
		{ApplicationStatusRejected, []ApplicationStatus{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			assert.Equal(t, tt.want, AvailableTransitions(tt.from))
		})
	}

	t.Run("result is a copy, the table cannot be mutated through it", func(t *testing.T) {
		got := AvailableTransitions(ApplicationStatusPending)
		require.NotEmpty(t, got)
		got[0] = "tampered"
		assert.Equal(t, ApplicationStatusInterviewScheduled, AvailableTransitions(ApplicationStatusPending)[0])
	})
}

func TestCanTransition(t *testing.T) {
	// CanTransition must agree with AvailableTransitions over every pair.
	for _, from := range ApplicationStatuses {
		for _, to := range ApplicationStatuses {
			inTable := false
			for _, s := range AvailableTransitions(from) {
				if s == to {
					inTable = true
				}
			}
			assert.Equal(t, inTable, CanTransition(from, to), "%s→%s", from, to)
		}
	}

	t.Run("no identity transitions", func(t *testing.T) {
		for _, s := range ApplicationStatuses {
			assert.False(t, CanTransition(s, s), "%s→%s", s, s)
		}
	})
}

func TestRevertTarget(t *testing.T) {
	tests := []struct {
		from ApplicationStatus
		to   ApplicationStatus
		ok   bool
	}{
		{ApplicationStatusInterviewScheduled, ApplicationStatusPending, true},
		// Terminal states step back: the revert table is deliberately more
		// permissive than the forward table.
		{ApplicationStatusAccepted, ApplicationStatusInterviewScheduled, true},
		{ApplicationStatusRejected, ApplicationStatusPending, true},
		{ApplicationStatusPending, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			to, ok := RevertTarget(tt.from)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.to, to)
			}
		})
	}
}

func TestStatusValidity(t *testing.T) {
	for _, s := range ApplicationStatuses {
		assert.True(t, s.Valid(), "%s", s)
	}
	assert.False(t, ApplicationStatus("archived").Valid())
	assert.False(t, ApplicationStatus("").Valid())

	assert.True(t, ApplicationStatusAccepted.Terminal())
	assert.True(t, ApplicationStatusRejected.Terminal())
	assert.False(t, ApplicationStatusPending.Terminal())
	assert.False(t, ApplicationStatusInterviewScheduled.Terminal())
}

func TestCitationStatusValid(t *testing.T) {
	for _, s := range []CitationStatus{
		CitationStatusPending, CitationStatusConfirmed, CitationStatusAttended,
		CitationStatusNotAttended, CitationStatusCancelled,
	} {
		assert.True(t, s.Valid(), "%s", s)
	}
	assert.False(t, CitationStatus("postponed").Valid())
}
