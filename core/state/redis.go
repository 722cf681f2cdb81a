package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "shopbot:conversation:"

// RedisStore persists property bags as JSON values, one key per conversation.
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption customises a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL sets the expiration for conversation state; 0 disables expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for conversation state.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore connects a new client and wraps it in a store.
func NewRedisStore(addr, password string, db int, opts ...RedisOption) *RedisStore {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(client, opts...)
}

// NewRedisStoreFromClient wraps an existing client in a store.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	store := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *RedisStore) key(conversationID string) string {
	return s.prefix + conversationID
}

// Read loads the bag for a conversation.
func (s *RedisStore) Read(ctx context.Context, conversationID string) (PropertyBag, bool, error) {
	val, err := s.client.Get(ctx, s.key(conversationID)).Result()
	if errors.Is(err, backend.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("state: redis read %s: %w", conversationID, err)
	}

	var bag PropertyBag
	if err := json.Unmarshal([]byte(val), &bag); err != nil {
		return nil, false, fmt.Errorf("state: redis decode %s: %w", conversationID, err)
	}
	return bag, true, nil
}

// Write replaces the bag for a conversation, refreshing the TTL if one is set.
func (s *RedisStore) Write(ctx context.Context, conversationID string, bag PropertyBag) error {
	raw, err := json.Marshal(bag)
	if err != nil {
		return fmt.Errorf("state: redis encode %s: %w", conversationID, err)
	}
	if err := s.client.Set(ctx, s.key(conversationID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("state: redis write %s: %w", conversationID, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
