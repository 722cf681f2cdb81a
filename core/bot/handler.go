package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Niksavenkov/shopbot/core/logger"
	"github.com/Niksavenkov/shopbot/core/state"
)

// ErrConfiguration indicates a required collaborator was not supplied at
// construction time.
var ErrConfiguration = errors.New("bot: invalid configuration")

const counterProperty = "counter"

// Handler processes one inbound activity per invocation. Turns for different
// conversations may run concurrently; the state layer provides the per-key
// atomicity, the handler itself holds no cross-turn locks.
type Handler struct {
	counter *state.Accessor[state.CounterState]
	log     *slog.Logger
	groups  [][]rule
}

// New constructs the turn handler. Both collaborators are required.
func New(counter *state.Accessor[state.CounterState], log *slog.Logger) (*Handler, error) {
	if counter == nil {
		return nil, fmt.Errorf("%w: nil counter accessor", ErrConfiguration)
	}
	if log == nil {
		return nil, fmt.Errorf("%w: nil logger", ErrConfiguration)
	}
	return &Handler{
		counter: counter,
		log:     log,
		groups:  ruleGroups(),
	}, nil
}

// NewCounterAccessor builds the accessor for the turn counter property.
func NewCounterAccessor(store state.Store) (*state.Accessor[state.CounterState], error) {
	return state.NewAccessor[state.CounterState](store, counterProperty)
}

// OnTurn runs one turn: classify, update state, dispatch replies. Any state
// load/save failure aborts the turn before a reply is sent and surfaces to
// the transport; unmatched text yields zero replies, which is not an error.
func (h *Handler) OnTurn(ctx context.Context, act Activity, tc TurnContext) error {
	start := time.Now()
	ctx = logger.WithConversationID(ctx, act.ConversationID)
	sends := &sendCounter{next: tc}

	turnCount, err := h.runTurn(ctx, act, sends)
	h.logTurn(ctx, act, turnCount, sends.count, start, err)
	return err
}

func (h *Handler) runTurn(ctx context.Context, act Activity, tc TurnContext) (int, error) {
	if !act.IsMessage() {
		return 0, tc.Send(ctx, replyGreeting)
	}

	turnCount, err := h.bumpCounter(ctx, act.ConversationID)
	if err != nil {
		return 0, err
	}

	text := strings.TrimSpace(act.Text)
	for _, group := range h.groups {
		for _, r := range group {
			if !r.match(text) {
				continue
			}
			if err := r.action(ctx, act, tc); err != nil {
				return turnCount, fmt.Errorf("bot: rule %s: %w", r.name, err)
			}
			break // chained within the group
		}
	}
	return turnCount, nil
}

// bumpCounter performs the one increment-and-commit sequence of a message
// turn. It runs before any reply is computed, whatever the text contains.
func (h *Handler) bumpCounter(ctx context.Context, conversationID string) (int, error) {
	counter, err := h.counter.GetOrCreate(ctx, conversationID, func() state.CounterState {
		return state.CounterState{TurnCount: 0}
	})
	if err != nil {
		return 0, err
	}

	counter.TurnCount++
	if err := h.counter.Set(ctx, conversationID, counter); err != nil {
		return 0, err
	}
	if err := h.counter.Save(ctx, conversationID); err != nil {
		return 0, err
	}
	return counter.TurnCount, nil
}

func (h *Handler) logTurn(ctx context.Context, act Activity, turnCount, replies int, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("activity_type", string(act.Type)),
		slog.Int("replies", replies),
		slog.Duration("duration", logger.Took(start)),
	}
	if turnCount > 0 {
		attrs = append(attrs, slog.Int("turn_count", turnCount))
	}
	level := slog.LevelInfo
	if err != nil {
		attrs[0] = slog.String("status", "fail")
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
		level = slog.LevelError
	}
	logger.LogEvent(ctx, h.log, level, "turn.handled", attrs...)
}

// sendCounter counts outbound replies for the turn summary line.
type sendCounter struct {
	next  TurnContext
	count int
}

func (s *sendCounter) Send(ctx context.Context, text string) error {
	err := s.next.Send(ctx, text)
	if err == nil {
		s.count++
	}
	return err
}
