package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Niksavenkov/shopbot/core/logger"
	"log/slog"
)

// Accessor provides typed get-with-default / set / save operations over one
// named property of the per-conversation bag. GetOrCreate and Set only touch
// the in-memory bag; Save commits it to the durable store.
type Accessor[T any] struct {
	store    Store
	property string

	mu   sync.Mutex
	bags map[string]PropertyBag
}

// NewAccessor constructs an accessor bound to a store and a property name.
func NewAccessor[T any](store Store, property string) (*Accessor[T], error) {
	if store == nil {
		return nil, fmt.Errorf("state: nil store provided")
	}
	if property == "" {
		return nil, fmt.Errorf("state: empty property name")
	}
	return &Accessor[T]{
		store:    store,
		property: property,
		bags:     make(map[string]PropertyBag),
	}, nil
}

// GetOrCreate returns the stored value for the conversation, or associates
// and returns a fresh factory value when the conversation has never been
// seen. The fresh value is not persisted until Save.
func (a *Accessor[T]) GetOrCreate(ctx context.Context, conversationID string, factory func() T) (T, error) {
	var zero T
	a.mu.Lock()
	defer a.mu.Unlock()

	bag, err := a.bagLocked(ctx, conversationID)
	if err != nil {
		return zero, err
	}

	if raw, ok := bag[a.property]; ok {
		var value T
		if err := json.Unmarshal(raw, &value); err != nil {
			return zero, fmt.Errorf("state: decode property %q for %s: %w", a.property, conversationID, err)
		}
		return value, nil
	}

	value := factory()
	raw, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("state: encode property %q for %s: %w", a.property, conversationID, err)
	}
	bag[a.property] = raw
	logger.Debug(ctx, "state", "property.created",
		slog.String("conversation_id", conversationID),
		slog.String("status", "ok"),
	)
	return value, nil
}

// Set associates value as the in-memory current state for the conversation.
// It does not persist anything to the durable store.
func (a *Accessor[T]) Set(ctx context.Context, conversationID string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("state: encode property %q for %s: %w", a.property, conversationID, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	bag, err := a.bagLocked(ctx, conversationID)
	if err != nil {
		return err
	}
	bag[a.property] = raw
	return nil
}

// Save durably commits the property values currently associated with the
// conversation. Calling it repeatedly in a turn is safe; last write wins.
func (a *Accessor[T]) Save(ctx context.Context, conversationID string) error {
	a.mu.Lock()
	bag, ok := a.bags[conversationID]
	if ok {
		bag = bag.Clone()
	}
	a.mu.Unlock()

	if !ok {
		// Nothing was loaded or mutated for this conversation.
		return nil
	}

	// Drop the cached bag whatever Write returns: after a success the next
	// turn must read through to the store, and after a failure the cached
	// mutations belong to an aborted turn and must not leak into the next
	// commit.
	writeErr := a.store.Write(ctx, conversationID, bag)
	a.mu.Lock()
	delete(a.bags, conversationID)
	a.mu.Unlock()

	if writeErr != nil {
		logger.Error(ctx, "state", "state.save",
			slog.String("conversation_id", conversationID),
			slog.String("status", "fail"),
			slog.String("err", writeErr.Error()),
		)
		return fmt.Errorf("state: save %s: %w: %w", conversationID, ErrStorageUnavailable, writeErr)
	}
	return nil
}

// bagLocked returns the cached bag for the conversation, loading it from the
// store on first access. Callers must hold a.mu.
func (a *Accessor[T]) bagLocked(ctx context.Context, conversationID string) (PropertyBag, error) {
	if bag, ok := a.bags[conversationID]; ok {
		return bag, nil
	}

	bag, found, err := a.store.Read(ctx, conversationID)
	if err != nil {
		logger.Error(ctx, "state", "state.load",
			slog.String("conversation_id", conversationID),
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("state: load %s: %w: %w", conversationID, ErrStorageUnavailable, err)
	}
	if !found || bag == nil {
		bag = make(PropertyBag)
	}
	a.bags[conversationID] = bag
	return bag, nil
}
