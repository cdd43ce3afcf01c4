package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateIsRandom(t *testing.T) {
	a := NewState()
	b := NewState()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestMemoryStateStoreConsumeOnce(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	state := NewState()
	require.NoError(t, store.SaveState(ctx, state, "user-1"))

	userID, err := store.ConsumeState(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	// a state is single use; replaying it fails
	_, err = store.ConsumeState(ctx, state)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestMemoryStateStoreUnknownState(t *testing.T) {
	store := NewMemoryStateStore()
	_, err := store.ConsumeState(context.Background(), "never-saved")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestMemoryStateStoreSeparateStates(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	stateA := NewState()
	stateB := NewState()
	require.NoError(t, store.SaveState(ctx, stateA, "user-a"))
	require.NoError(t, store.SaveState(ctx, stateB, "user-b"))

	userID, err := store.ConsumeState(ctx, stateB)
	require.NoError(t, err)
	assert.Equal(t, "user-b", userID)

	userID, err = store.ConsumeState(ctx, stateA)
	require.NoError(t, err)
	assert.Equal(t, "user-a", userID)
}
