package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore persists property bags in the conversation_state table,
// one jsonb row per conversation. Row-level upserts give the per-key
// atomicity the Store contract requires.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("state: nil database handle provided")
	}
	return &PostgresStore{db: db}, nil
}

// Read loads the bag for a conversation.
func (s *PostgresStore) Read(ctx context.Context, conversationID string) (PropertyBag, bool, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw,
		`SELECT properties FROM conversation_state WHERE conversation_id = $1`,
		conversationID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("state: postgres read %s: %w", conversationID, err)
	}

	var bag PropertyBag
	if err := json.Unmarshal(raw, &bag); err != nil {
		return nil, false, fmt.Errorf("state: postgres decode %s: %w", conversationID, err)
	}
	return bag, true, nil
}

// Write upserts the bag for a conversation.
func (s *PostgresStore) Write(ctx context.Context, conversationID string, bag PropertyBag) error {
	raw, err := json.Marshal(bag)
	if err != nil {
		return fmt.Errorf("state: postgres encode %s: %w", conversationID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversation_state (conversation_id, properties, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (conversation_id)
		 DO UPDATE SET properties = EXCLUDED.properties, updated_at = now()`,
		conversationID, raw,
	)
	if err != nil {
		return fmt.Errorf("state: postgres write %s: %w", conversationID, err)
	}
	return nil
}
