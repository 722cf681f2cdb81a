// Package state implements durable per-conversation state: a keyed store of
// property bags plus a typed accessor over one named property. Values are
// mutated in memory and survive process restarts only after an explicit Save.
package state

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrStorageUnavailable indicates the backing store could not be reached.
// A turn that hits it must be aborted by the caller before any reply is sent.
var ErrStorageUnavailable = errors.New("state: storage unavailable")

// CounterState tracks how many message turns a conversation has seen.
// The count is bumped on every message turn but not yet read for branching.
type CounterState struct {
	TurnCount int `json:"turnCount"`
}

// PropertyBag is the raw per-conversation property set as persisted.
type PropertyBag map[string]json.RawMessage

// Clone returns an independent copy of the bag.
func (b PropertyBag) Clone() PropertyBag {
	if b == nil {
		return nil
	}
	out := make(PropertyBag, len(b))
	for k, v := range b {
		raw := make(json.RawMessage, len(v))
		copy(raw, v)
		out[k] = raw
	}
	return out
}

// Store is a durable key-value backend holding one property bag per
// conversation. Implementations must provide per-key atomicity so that
// concurrent turns on different conversations never corrupt each other.
type Store interface {
	// Read returns the bag for a conversation and whether it exists.
	Read(ctx context.Context, conversationID string) (PropertyBag, bool, error)
	// Write durably replaces the bag for a conversation.
	Write(ctx context.Context, conversationID string, bag PropertyBag) error
}
