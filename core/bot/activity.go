// Package bot implements the single-turn conversation handler: it classifies
// one inbound activity, bumps the persisted turn counter exactly once per
// message turn, and maps text commands onto fixed reply sets.
package bot

import "context"

// ActivityType discriminates inbound events. Only messages drive state and
// command dispatch; everything else receives the greeting.
type ActivityType string

const (
	// ActivityMessage is a user text message.
	ActivityMessage ActivityType = "message"
	// ActivityEvent covers every non-message conversational signal
	// (membership updates, media the bot cannot interpret, and so on).
	ActivityEvent ActivityType = "event"
)

// Activity is one inbound event as seen by the turn handler. Label carries
// the optional selection identifier attached to structured replies.
type Activity struct {
	Type           ActivityType
	ConversationID string
	Text           string
	Label          string
}

// IsMessage reports whether the activity is a user message.
func (a Activity) IsMessage() bool {
	return a.Type == ActivityMessage
}

// TurnContext is the outbound send capability of the hosting transport.
// Send may be called zero or more times per turn; the transport guarantees
// ordering of sends within a turn.
type TurnContext interface {
	Send(ctx context.Context, text string) error
}
