package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCounter() CounterState {
	return CounterState{TurnCount: 0}
}

type failingStore struct {
	readErr  error
	writeErr error
	inner    Store
}

func (s *failingStore) Read(ctx context.Context, id string) (PropertyBag, bool, error) {
	if s.readErr != nil {
		return nil, false, s.readErr
	}
	return s.inner.Read(ctx, id)
}

func (s *failingStore) Write(ctx context.Context, id string, bag PropertyBag) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	return s.inner.Write(ctx, id, bag)
}

func TestNewAccessor_Validation(t *testing.T) {
	_, err := NewAccessor[CounterState](nil, "counter")
	require.Error(t, err)

	_, err = NewAccessor[CounterState](NewMemoryStore(), "")
	require.Error(t, err)
}

func TestAccessor_GetOrCreateDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	acc, err := NewAccessor[CounterState](NewMemoryStore(), "counter")
	require.NoError(t, err)

	counter, err := acc.GetOrCreate(ctx, "conv-1", newCounter)
	require.NoError(t, err)
	assert.Equal(t, 0, counter.TurnCount)
}

func TestAccessor_SetIsNotDurableUntilSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	acc, err := NewAccessor[CounterState](store, "counter")
	require.NoError(t, err)

	require.NoError(t, acc.Set(ctx, "conv-1", CounterState{TurnCount: 7}))

	_, found, err := store.Read(ctx, "conv-1")
	require.NoError(t, err)
	assert.False(t, found, "set alone must not touch the store")

	require.NoError(t, acc.Save(ctx, "conv-1"))

	_, found, err = store.Read(ctx, "conv-1")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestAccessor_CounterSurvivesAcrossTurns(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for turn := 1; turn <= 5; turn++ {
		// A fresh accessor per turn mimics read-through after restart.
		acc, err := NewAccessor[CounterState](store, "counter")
		require.NoError(t, err)

		counter, err := acc.GetOrCreate(ctx, "conv-1", newCounter)
		require.NoError(t, err)
		assert.Equal(t, turn-1, counter.TurnCount)

		counter.TurnCount++
		require.NoError(t, acc.Set(ctx, "conv-1", counter))
		require.NoError(t, acc.Save(ctx, "conv-1"))
	}

	acc, err := NewAccessor[CounterState](store, "counter")
	require.NoError(t, err)
	counter, err := acc.GetOrCreate(ctx, "conv-1", newCounter)
	require.NoError(t, err)
	assert.Equal(t, 5, counter.TurnCount)
}

func TestAccessor_SaveWithoutAccessIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	acc, err := NewAccessor[CounterState](store, "counter")
	require.NoError(t, err)

	require.NoError(t, acc.Save(ctx, "conv-never-seen"))
	assert.Equal(t, 0, store.Len())
}

func TestAccessor_SaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	acc, err := NewAccessor[CounterState](store, "counter")
	require.NoError(t, err)

	require.NoError(t, acc.Set(ctx, "conv-1", CounterState{TurnCount: 1}))
	require.NoError(t, acc.Save(ctx, "conv-1"))
	require.NoError(t, acc.Save(ctx, "conv-1"))

	counter, err := acc.GetOrCreate(ctx, "conv-1", newCounter)
	require.NoError(t, err)
	assert.Equal(t, 1, counter.TurnCount)
}

func TestAccessor_StorageFailuresSurfaceAsUnavailable(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")

	acc, err := NewAccessor[CounterState](&failingStore{readErr: boom, inner: NewMemoryStore()}, "counter")
	require.NoError(t, err)
	_, err = acc.GetOrCreate(ctx, "conv-1", newCounter)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, boom)

	acc, err = NewAccessor[CounterState](&failingStore{writeErr: boom, inner: NewMemoryStore()}, "counter")
	require.NoError(t, err)
	require.NoError(t, acc.Set(ctx, "conv-1", CounterState{TurnCount: 1}))
	err = acc.Save(ctx, "conv-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestAccessor_FailedSaveDoesNotLeakIntoNextCommit(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	store := &failingStore{writeErr: errors.New("connection reset"), inner: inner}
	acc, err := NewAccessor[CounterState](store, "counter")
	require.NoError(t, err)

	// Aborted turn: the increment is staged but the commit fails.
	counter, err := acc.GetOrCreate(ctx, "conv-1", newCounter)
	require.NoError(t, err)
	counter.TurnCount++
	require.NoError(t, acc.Set(ctx, "conv-1", counter))
	require.ErrorIs(t, acc.Save(ctx, "conv-1"), ErrStorageUnavailable)

	// The store recovers. The next turn must read through to the store,
	// not reuse the aborted turn's staged bag.
	store.writeErr = nil
	counter, err = acc.GetOrCreate(ctx, "conv-1", newCounter)
	require.NoError(t, err)
	assert.Equal(t, 0, counter.TurnCount, "aborted increment must not survive")

	counter.TurnCount++
	require.NoError(t, acc.Set(ctx, "conv-1", counter))
	require.NoError(t, acc.Save(ctx, "conv-1"))

	fresh, err := NewAccessor[CounterState](inner, "counter")
	require.NoError(t, err)
	persisted, err := fresh.GetOrCreate(ctx, "conv-1", newCounter)
	require.NoError(t, err)
	assert.Equal(t, 1, persisted.TurnCount, "only the completed turn counts")
}

func TestAccessor_DistinctConversationsDoNotInteract(t *testing.T) {
	ctx := context.Background()
	acc, err := NewAccessor[CounterState](NewMemoryStore(), "counter")
	require.NoError(t, err)

	require.NoError(t, acc.Set(ctx, "conv-a", CounterState{TurnCount: 3}))
	require.NoError(t, acc.Save(ctx, "conv-a"))

	counter, err := acc.GetOrCreate(ctx, "conv-b", newCounter)
	require.NoError(t, err)
	assert.Equal(t, 0, counter.TurnCount)
}
