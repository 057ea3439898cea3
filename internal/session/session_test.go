package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/trackflow/internal/cache"
	"github.com/jonathan/trackflow/internal/store"
	"github.com/jonathan/trackflow/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRemote struct {
	mu     sync.Mutex
	states map[uuid.UUID]*types.State
	puts   int
}

func newRecordingRemote() *recordingRemote {
	return &recordingRemote{states: make(map[uuid.UUID]*types.State)}
}

func (r *recordingRemote) GetState(_ context.Context, userID uuid.UUID) (*types.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[userID]
	if !ok {
		return nil, nil
	}
	return st.Clone(), nil
}

func (r *recordingRemote) PutState(_ context.Context, userID uuid.UUID, st *types.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = st.Clone()
	r.puts++
	return nil
}

func (r *recordingRemote) putCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.puts
}

func TestOpen_HydratesFromRemote(t *testing.T) {
	remote := newRecordingRemote()
	userID := uuid.New()
	seed := types.NewState()
	seed.TrackedJobs["42"] = types.StageApply
	remote.states[userID] = seed

	dual := store.NewDualTier(cache.NewMemory(), remote, 10*time.Millisecond, nil)
	sess, err := Open(context.Background(), userID, dual)
	require.NoError(t, err)
	defer sess.Close()

	assert.Equal(t, userID, sess.UserID())
	assert.Equal(t, types.StageApply, sess.Flow().State().TrackedJobs["42"])
}

func TestOpen_EmptyStateForNewUser(t *testing.T) {
	dual := store.NewDualTier(cache.NewMemory(), newRecordingRemote(), 10*time.Millisecond, nil)
	sess, err := Open(context.Background(), uuid.New(), dual)
	require.NoError(t, err)
	defer sess.Close()

	st := sess.Flow().State()
	assert.Empty(t, st.TrackedJobs)
	assert.Empty(t, st.JobContacts)
}

func TestClose_CancelsPendingRemoteWrite(t *testing.T) {
	remote := newRecordingRemote()
	dual := store.NewDualTier(cache.NewMemory(), remote, 50*time.Millisecond, nil)
	sess, err := Open(context.Background(), uuid.New(), dual)
	require.NoError(t, err)

	// Mutation schedules a debounced remote write; sign-out lands before
	// the settle window elapses.
	sess.Flow().Track(context.Background(), "42")
	sess.Close()

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 0, remote.putCount(), "sign-out must cancel the pending write")
	assert.Nil(t, sess.Flow())

	// Close is idempotent.
	sess.Close()
}

func TestMutationsFlowThroughToRemote(t *testing.T) {
	remote := newRecordingRemote()
	dual := store.NewDualTier(cache.NewMemory(), remote, 20*time.Millisecond, nil)
	userID := uuid.New()
	sess, err := Open(context.Background(), userID, dual)
	require.NoError(t, err)
	defer sess.Close()

	sess.Flow().Track(context.Background(), "42")
	sess.Flow().SetResume(context.Background(), "42", "tailored")

	deadline := time.Now().Add(2 * time.Second)
	for remote.putCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Greater(t, remote.putCount(), 0, "quiescence must trigger the remote write")

	remote.mu.Lock()
	persisted := remote.states[userID]
	remote.mu.Unlock()
	require.NotNil(t, persisted)
	assert.Equal(t, "tailored", persisted.CustomizedResumes["42"])
}
