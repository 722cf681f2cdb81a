package middleware

import (
	"context"
	"strconv"

	"log/slog"

	"github.com/Niksavenkov/shopbot/core/logger"

	tele "gopkg.in/telebot.v4"
)

const requestContextKey = "request_ctx"

// RequestContext returns the context prepared by Logging for this update,
// or context.Background when the middleware did not run.
func RequestContext(c tele.Context) context.Context {
	if ctx, ok := c.Get(requestContextKey).(context.Context); ok && ctx != nil {
		return ctx
	}
	return context.Background()
}

// Logging derives the per-update context (rid, update metadata,
// conversation id) and emits a sampled receipt line.
func Logging(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		user := c.Sender()
		chat := c.Chat()

		chatID, userID := int64(0), int64(0)
		if chat != nil {
			chatID = chat.ID
		}
		if user != nil {
			userID = user.ID
		}

		rid := logger.BuildRID(upd.ID, chatID, userID)
		ctx := logger.WithRID(logger.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		if chatID != 0 {
			ctx = logger.WithConversationID(ctx, strconv.FormatInt(chatID, 10))
		}
		ctx = logger.WithLogger(ctx, logger.Component("tg"))
		c.Set(requestContextKey, ctx)

		if logger.ShouldSampleDebug() {
			attrs := []slog.Attr{
				slog.String("status", "ok"),
				slog.Int("update_id", upd.ID),
			}
			if chat != nil {
				attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
			}
			if user != nil {
				if user.Username != "" {
					attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
				}
				if user.LanguageCode != "" {
					attrs = append(attrs, slog.String("lang", user.LanguageCode))
				}
			}
			switch {
			case upd.Callback != nil:
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(upd.Callback.Data, 256)))
			case upd.Message != nil:
				if t := c.Text(); t != "" {
					attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
				}
			}
			logger.Debug(ctx, "tg", "update.received", attrs...)
		}

		return next(c)
	}
}
