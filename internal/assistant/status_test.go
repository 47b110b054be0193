package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRunStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want RunStatus
	}{
		{"queued", StatusQueued},
		{"in_progress", StatusInProgress},
		{"completed", StatusCompleted},
		{"requires_action", StatusRequiresAction},
		{"failed", StatusFailed},
		{"expired", StatusExpired},
		{"cancelled", StatusCancelled},
		{"incomplete", StatusUnknown},
		{"cancelling", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ParseRunStatus(tc.raw))
		})
	}
}

func TestRunStatusClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusQueued.IsActive())
	assert.True(t, StatusInProgress.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusFailed.IsActive())

	assert.True(t, StatusFailed.IsRecoverable())
	assert.True(t, StatusExpired.IsRecoverable())
	assert.True(t, StatusCancelled.IsRecoverable())
	assert.False(t, StatusCompleted.IsRecoverable())
	assert.False(t, StatusRequiresAction.IsRecoverable())
	assert.False(t, StatusInProgress.IsRecoverable())

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusRequiresAction.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusQueued.IsTerminal())
	assert.False(t, StatusUnknown.IsTerminal())
}
