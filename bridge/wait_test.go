package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForProofReachesConfirmed(t *testing.T) {
	legacy := []byte(`{"proof":"p","merkle_root":"m","nullifier_hash":"n","verification_level":"orb"}`)
	sess, srv := newConfirmedSession(t, []string{"retrieved", "completed"}, legacy)
	defer srv.Close()

	status, err := sess.WaitForProof(context.Background(), 5*time.Millisecond, time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)
}

func TestWaitForProofTimesOutLocallyWithoutMutatingBridgeState(t *testing.T) {
	sess, srv := newConfirmedSession(t, []string{"initialized"}, nil)
	defer srv.Close()

	status, err := sess.WaitForProof(context.Background(), 5*time.Millisecond, 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, ReasonTimeout, sess.FailureReason())
}

func TestWaitForAnyReturnsFirstConfirmedSession(t *testing.T) {
	legacy := []byte(`{"proof":"p","merkle_root":"m","nullifier_hash":"n","verification_level":"orb"}`)
	slow, srvSlow := newConfirmedSession(t, []string{"initialized", "initialized", "retrieved", "completed"}, legacy)
	defer srvSlow.Close()
	fast, srvFast := newConfirmedSession(t, []string{"completed"}, legacy)
	defer srvFast.Close()

	winner, err := WaitForAny(context.Background(), []*Session{slow, fast}, 5*time.Millisecond, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, winner)
}
