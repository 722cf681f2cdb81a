package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	coreconfig "github.com/Niksavenkov/shopbot/core/config"
	"github.com/Niksavenkov/shopbot/core/logger"
	tgmw "github.com/Niksavenkov/shopbot/core/telegram/middleware"
	tgsender "github.com/Niksavenkov/shopbot/core/telegram/sender"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// RunOptions controls RunTelegram.
type RunOptions struct {
	Config  *coreconfig.Config
	Handler TurnHandler

	DispatcherOptions tgsender.Options
	Dispatcher        *tgsender.Dispatcher

	DisableWebhookCleanup bool
}

// eventEndpoints lists non-text endpoints the bot greets on.
var eventEndpoints = []string{
	tele.OnUserJoined,
	tele.OnPhoto,
	tele.OnDocument,
	tele.OnSticker,
	tele.OnVoice,
	tele.OnVideo,
	tele.OnContact,
	tele.OnLocation,
}

// RunTelegram composes and runs the Telegram transport until the provided
// context is done.
func RunTelegram(ctx context.Context, opts RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Config == nil {
		return fmt.Errorf("telegram: nil config provided")
	}
	if opts.Handler == nil {
		return fmt.Errorf("telegram: nil turn handler provided")
	}

	cfg := opts.Config
	poller := BuildPoller(cfg)

	buildStart := time.Now()
	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: BuildHTTPClient(),
		OnError: func(err error, c tele.Context) {
			attrs := []slog.Attr{slog.String("err", err.Error())}
			if c != nil {
				attrs = append(attrs, slog.Int("update_id", c.Update().ID))
			}
			logger.Error(logger.Background(), "tg", "handler.error", attrs...)
		},
	})
	if err != nil {
		return fmt.Errorf("telegram: bot initialization failed: %w", err)
	}

	logMode(ctx, cfg, poller, time.Since(buildStart))

	if _, isWebhook := poller.(*tele.Webhook); !isWebhook && !opts.DisableWebhookCleanup {
		if err := deleteWebhook(cfg.Telegram.Token); err != nil {
			logger.TG.Warn("failed to delete webhook",
				slog.String("event", "delete_webhook"),
				slog.String("err", err.Error()),
			)
		}
	}

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = tgsender.NewDispatcher(opts.DispatcherOptions)
	}
	defer dispatcher.Close()

	b.Use(tgmw.Recover)
	b.Use(tgmw.Logging)
	if cfg.RateLimit.IntervalMS > 0 {
		exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, kind := range cfg.RateLimit.ExcludeUpdates {
			exclude[kind] = struct{}{}
		}
		b.Use(tgmw.RateLimit(tgmw.RateLimitOptions{
			Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
			Exclude:  exclude,
		}))
	}

	adapter := NewAdapter(opts.Handler, dispatcher)
	b.Handle(tele.OnText, adapter.OnText)
	b.Handle(tele.OnCallback, adapter.OnCallback)
	for _, endpoint := range eventEndpoints {
		b.Handle(endpoint, adapter.OnEvent)
	}

	runDone := make(chan struct{})
	go func() {
		b.Start()
		close(runDone)
	}()

	select {
	case <-ctx.Done():
		b.Stop()
		<-runDone
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return ctx.Err()
	case <-runDone:
		return nil
	}
}

func logMode(ctx context.Context, cfg *coreconfig.Config, poller tele.Poller, buildTook time.Duration) {
	switch p := poller.(type) {
	case *tele.Webhook:
		logger.TG.LogAttrs(ctx, slog.LevelInfo, "webhook mode",
			slog.String("event", "mode"),
			slog.String("mode", "webhook"),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
	default:
		timeoutSec := cfg.Telegram.LongPollTimeoutSeconds
		if timeoutSec <= 0 {
			timeoutSec = 10
		}
		logger.TG.Info("polling mode",
			slog.String("event", "mode"),
			slog.String("mode", "polling"),
			slog.Int("timeout_seconds", timeoutSec),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
	}
}

// deleteWebhook clears a stale webhook registration before long polling,
// otherwise getUpdates returns 409.
func deleteWebhook(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("empty token")
	}
	url := fmt.Sprintf("https://api.telegram.org/bot%s/deleteWebhook", token)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader("drop_pending_updates=false"))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deleteWebhook status: %s", resp.Status)
	}
	return nil
}
