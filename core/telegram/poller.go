package telegram

import (
	"fmt"
	"time"

	coreconfig "starsbot/core/config"

	tele "gopkg.in/telebot.v4"
)

// BuildPoller returns a poller matching the configured run mode.
func BuildPoller(cfg *coreconfig.Config) (tele.Poller, error) {
	switch cfg.Telegram.RunMode {
	case coreconfig.RunModeWebhook:
		return &tele.Webhook{
			Listen: fmt.Sprintf("%s:%d", cfg.Webhook.Listen, cfg.Webhook.Port),
			Endpoint: &tele.WebhookEndpoint{
				PublicURL: cfg.Webhook.URL,
			},
		}, nil
	case coreconfig.RunModeLongpoll:
		timeout := time.Duration(cfg.Telegram.LongPollTimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		return &tele.LongPoller{Timeout: timeout}, nil
	default:
		return nil, fmt.Errorf("unknown run mode: %q", cfg.Telegram.RunMode)
	}
}
