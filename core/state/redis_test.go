package state

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T, opts ...RedisOption) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := NewRedisStoreFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return mr, store
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := newMiniredisStore(t)
	RunStoreContract(t, store)
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	mr, store := newMiniredisStore(t, WithPrefix("test:conv:"))
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "42", PropertyBag{"counter": json.RawMessage(`{"turnCount":1}`)}))
	assert.True(t, mr.Exists("test:conv:42"))
}

func TestRedisStore_TTL(t *testing.T) {
	mr, store := newMiniredisStore(t, WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "42", PropertyBag{"counter": json.RawMessage(`{"turnCount":1}`)}))

	mr.FastForward(2 * time.Minute)

	_, found, err := store.Read(ctx, "42")
	require.NoError(t, err)
	assert.False(t, found, "state should expire after the TTL")
}
