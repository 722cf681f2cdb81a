// Package telegram hosts the bot on the Telegram transport. It maps
// incoming updates to activities, hands them to the turn handler and
// delivers replies through the outbound dispatcher.
package telegram

import (
	"context"
	"strconv"
	"strings"

	"github.com/Niksavenkov/shopbot/core/bot"
	"github.com/Niksavenkov/shopbot/core/logger"
	"github.com/Niksavenkov/shopbot/core/telegram/middleware"
	"github.com/Niksavenkov/shopbot/core/telegram/sender"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// TurnHandler consumes one activity per incoming update.
type TurnHandler interface {
	OnTurn(ctx context.Context, act bot.Activity, tc bot.TurnContext) error
}

// Adapter binds telebot endpoints to a TurnHandler.
type Adapter struct {
	handler    TurnHandler
	dispatcher *sender.Dispatcher
}

// NewAdapter wires the handler to the outbound dispatcher. A nil dispatcher
// makes replies go out synchronously on the handler goroutine.
func NewAdapter(handler TurnHandler, dispatcher *sender.Dispatcher) *Adapter {
	return &Adapter{handler: handler, dispatcher: dispatcher}
}

// OnText handles plain text messages.
func (a *Adapter) OnText(c tele.Context) error {
	act := bot.Activity{
		Type:           bot.ActivityMessage,
		ConversationID: conversationID(c),
		Text:           c.Text(),
	}
	return a.dispatch(c, act)
}

// OnCallback handles inline keyboard taps. The callback payload becomes the
// activity label so selection rules can resolve the tapped entry.
func (a *Adapter) OnCallback(c tele.Context) error {
	text, label := splitCallbackData(c.Callback())
	act := bot.Activity{
		Type:           bot.ActivityMessage,
		ConversationID: conversationID(c),
		Text:           text,
		Label:          label,
	}
	if err := c.Respond(); err != nil {
		logger.TG.Warn("callback ack failed",
			slog.String("event", "tg.callback_ack"),
			slog.String("err", err.Error()),
		)
	}
	return a.dispatch(c, act)
}

// OnEvent handles everything that is not text: joins, media, stickers.
// The handler greets on such activities instead of matching rules.
func (a *Adapter) OnEvent(c tele.Context) error {
	act := bot.Activity{
		Type:           bot.ActivityEvent,
		ConversationID: conversationID(c),
	}
	return a.dispatch(c, act)
}

func (a *Adapter) dispatch(c tele.Context, act bot.Activity) error {
	ctx := middleware.RequestContext(c)
	tc := &turnContext{c: c, dispatcher: a.dispatcher}
	return a.handler.OnTurn(ctx, act, tc)
}

// conversationID keys state by chat: one Telegram chat is one conversation.
func conversationID(c tele.Context) string {
	chat := c.Chat()
	if chat == nil {
		return ""
	}
	return strconv.FormatInt(chat.ID, 10)
}

// splitCallbackData unpacks "key|payload" callback data. Telebot prefixes
// raw data with "\f" and fills Unique for buttons built through its API.
func splitCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, strings.TrimSpace(cb.Data)
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	parts := strings.SplitN(raw, "|", 2)
	text := strings.TrimSpace(parts[0])
	label := ""
	if len(parts) == 2 {
		label = strings.TrimSpace(parts[1])
	}
	return text, label
}

// turnContext delivers handler replies back to the chat the update came
// from, in the order the handler produced them.
type turnContext struct {
	c          tele.Context
	dispatcher *sender.Dispatcher
}

func (t *turnContext) Send(ctx context.Context, text string) error {
	if t.dispatcher == nil {
		return t.c.Send(text)
	}
	return t.dispatcher.Do(ctx, "sendMessage", func() error {
		return t.c.Send(text)
	})
}
