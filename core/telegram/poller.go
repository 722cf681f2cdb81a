package telegram

import (
	"fmt"
	"time"

	coreconfig "github.com/Niksavenkov/shopbot/core/config"

	tele "gopkg.in/telebot.v4"
)

// BuildPoller selects the update source for the bot. Normalize has already
// validated the run mode, so anything but webhook falls back to long polling.
func BuildPoller(cfg *coreconfig.Config) tele.Poller {
	if cfg.Telegram.RunMode == coreconfig.RunModeWebhook {
		return &tele.Webhook{
			Listen:   fmt.Sprintf("%s:%d", cfg.Webhook.Listen, cfg.Webhook.Port),
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.Webhook.URL},
		}
	}

	timeoutSec := cfg.Telegram.LongPollTimeoutSeconds
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	return &tele.LongPoller{Timeout: time.Duration(timeoutSec) * time.Second}
}
