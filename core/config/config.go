package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/govalues/decimal"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// MaxStars is the upper bound of a single order. It is deliberately not
// configurable: the storefront never sells more than this per order.
const MaxStars = 5000

// TelegramConfig holds Telegram bot transport settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// ShopConfig holds the storefront settings: payment details and the
// pricing bounds applied to incoming orders.
type ShopConfig struct {
	BankCard       string `yaml:"bank_card" envconfig:"BANK_CARD"`
	BankCardHolder string `yaml:"bank_card_holder" envconfig:"BANK_CARD_HOLDER"`
	StarPrice      string `yaml:"star_price" envconfig:"STAR_PRICE"`
	MinStars       int    `yaml:"min_stars" envconfig:"MIN_STARS"`
	SupportContact string `yaml:"support_contact" envconfig:"SUPPORT_CONTACT"`

	// Price is the parsed StarPrice, populated by Normalize.
	Price decimal.Decimal `yaml:"-" envconfig:"-"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
)

// RateLimitConfig holds settings for per-user rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Config aggregates the whole process configuration. It is built once at
// startup and passed down explicitly; nothing reads the environment later.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Shop      ShopConfig      `yaml:"shop"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Load reads configuration from an optional YAML file and the environment.
// An empty path means env-only configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and fills defaults. The process must
// refuse to start on any error returned from here.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required (set BOT_TOKEN)")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" || rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if err := normalizeShop(&cfg.Shop); err != nil {
		return err
	}

	allowed := map[string]struct{}{
		UpdateCallback: {},
		UpdateMessage:  {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}

func normalizeShop(shop *ShopConfig) error {
	if strings.TrimSpace(shop.BankCard) == "" {
		shop.BankCard = "2200 0000 0000 0000"
	}
	if strings.TrimSpace(shop.BankCardHolder) == "" {
		shop.BankCardHolder = "ИВАН ИВАНОВ"
	}
	if strings.TrimSpace(shop.SupportContact) == "" {
		shop.SupportContact = "@support"
	}

	raw := strings.TrimSpace(shop.StarPrice)
	if raw == "" {
		raw = "1.6"
	}
	price, err := decimal.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid shop.star_price %q: %w", shop.StarPrice, err)
	}
	if !price.IsPos() {
		return fmt.Errorf("shop.star_price must be > 0, got %q", raw)
	}
	shop.StarPrice = raw
	shop.Price = price

	if shop.MinStars == 0 {
		shop.MinStars = 50
	}
	if shop.MinStars < 1 {
		return fmt.Errorf("shop.min_stars must be >= 1, got %d", shop.MinStars)
	}
	if shop.MinStars > MaxStars {
		return fmt.Errorf("shop.min_stars must be <= %d, got %d", MaxStars, shop.MinStars)
	}
	return nil
}
