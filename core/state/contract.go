package state

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract verifies that a Store implementation adheres to the
// interface contract. Backend test files call it against their store.
func RunStoreContract(t *testing.T, store Store) {
	ctx := context.Background()
	conversationID := "contract-" + time.Now().Format("20060102150405.000")

	t.Run("read unknown conversation", func(t *testing.T) {
		bag, found, err := store.Read(ctx, "unknown-"+conversationID)
		require.NoError(t, err, "unknown conversation must not fail")
		assert.False(t, found)
		assert.Nil(t, bag)
	})

	t.Run("write and read", func(t *testing.T) {
		bag := PropertyBag{"counter": json.RawMessage(`{"turnCount":3}`)}
		require.NoError(t, store.Write(ctx, conversationID, bag))

		loaded, found, err := store.Read(ctx, conversationID)
		require.NoError(t, err)
		require.True(t, found)
		assert.JSONEq(t, `{"turnCount":3}`, string(loaded["counter"]))
	})

	t.Run("last write wins", func(t *testing.T) {
		first := PropertyBag{"counter": json.RawMessage(`{"turnCount":1}`)}
		second := PropertyBag{"counter": json.RawMessage(`{"turnCount":2}`)}
		require.NoError(t, store.Write(ctx, conversationID, first))
		require.NoError(t, store.Write(ctx, conversationID, second))

		loaded, found, err := store.Read(ctx, conversationID)
		require.NoError(t, err)
		require.True(t, found)
		assert.JSONEq(t, `{"turnCount":2}`, string(loaded["counter"]))
	})

	t.Run("conversations are isolated", func(t *testing.T) {
		other := conversationID + "-other"
		require.NoError(t, store.Write(ctx, conversationID, PropertyBag{"counter": json.RawMessage(`{"turnCount":5}`)}))
		require.NoError(t, store.Write(ctx, other, PropertyBag{"counter": json.RawMessage(`{"turnCount":9}`)}))

		loaded, found, err := store.Read(ctx, conversationID)
		require.NoError(t, err)
		require.True(t, found)
		assert.JSONEq(t, `{"turnCount":5}`, string(loaded["counter"]))
	})
}
