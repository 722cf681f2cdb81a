package state

import (
	"context"
	"sync"
)

// MemoryStore keeps property bags in process memory. Intended for tests and
// single-instance development runs; nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	bags map[string]PropertyBag
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bags: make(map[string]PropertyBag)}
}

// Read returns a copy of the stored bag so callers cannot alias store memory.
func (s *MemoryStore) Read(_ context.Context, conversationID string) (PropertyBag, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bag, ok := s.bags[conversationID]
	if !ok {
		return nil, false, nil
	}
	return bag.Clone(), true, nil
}

// Write replaces the stored bag for the conversation.
func (s *MemoryStore) Write(_ context.Context, conversationID string, bag PropertyBag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bags[conversationID] = bag.Clone()
	return nil
}

// Len reports the number of conversations with stored state.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bags)
}
