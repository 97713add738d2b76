package inspection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "checksheet-system/pkg/errors"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from    Status
		action  Action
		want    Status
		allowed bool
	}{
		{StatusPending, ActionApprove, StatusApproved, true},
		{StatusPending, ActionRequestRevision, StatusRevision, true},
		{StatusPending, ActionReject, StatusRejected, true},

		{StatusRevision, ActionApprove, StatusApproved, true},
		{StatusRevision, ActionReject, StatusRejected, true},
		{StatusRevision, ActionRequestRevision, "", false},

		{StatusApproved, ActionApprove, "", false},
		{StatusApproved, ActionRequestRevision, "", false},
		{StatusApproved, ActionReject, "", false},

		{StatusRejected, ActionApprove, "", false},
		{StatusRejected, ActionRequestRevision, "", false},
		{StatusRejected, ActionReject, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.action), func(t *testing.T) {
			got, err := Transition(tt.from, tt.action)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsTransitionError(err))
		})
	}
}

func TestTransitionUnknownAction(t *testing.T) {
	_, err := Transition(StatusPending, Action("escalate"))
	require.Error(t, err)
	assert.False(t, apperrors.IsTransitionError(err))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusRevision.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestReference(t *testing.T) {
	assert.True(t, DirRef(7).Valid())
	assert.True(t, FiRef(3).Valid())
	assert.False(t, DirRef(0).Valid())
	assert.False(t, Reference{Type: "order", ID: 1}.Valid())
}
