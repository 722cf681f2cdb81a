package state

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	RunStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_ReadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Write(ctx, "c1", PropertyBag{"counter": json.RawMessage(`{"turnCount":1}`)}))

	bag, found, err := store.Read(ctx, "c1")
	require.NoError(t, err)
	require.True(t, found)

	// Mutating the returned bag must not leak into the store.
	bag["counter"] = json.RawMessage(`{"turnCount":99}`)

	again, _, err := store.Read(ctx, "c1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"turnCount":1}`, string(again["counter"]))
}
