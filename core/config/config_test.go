package config

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))

	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, "2200 0000 0000 0000", cfg.Shop.BankCard)
	assert.Equal(t, "ИВАН ИВАНОВ", cfg.Shop.BankCardHolder)
	assert.Equal(t, "@support", cfg.Shop.SupportContact)
	assert.Equal(t, 50, cfg.Shop.MinStars)
	assert.True(t, cfg.Shop.Price.Equal(decimal.MustParse("1.6")))
}

func TestNormalizeMissingToken(t *testing.T) {
	cfg := &Config{}
	err := Normalize(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestNormalizeShopValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero price",
			mutate:  func(c *Config) { c.Shop.StarPrice = "0" },
			wantErr: "star_price",
		},
		{
			name:    "negative price",
			mutate:  func(c *Config) { c.Shop.StarPrice = "-1.6" },
			wantErr: "star_price",
		},
		{
			name:    "garbage price",
			mutate:  func(c *Config) { c.Shop.StarPrice = "cheap" },
			wantErr: "star_price",
		},
		{
			name:    "negative minimum",
			mutate:  func(c *Config) { c.Shop.MinStars = -5 },
			wantErr: "min_stars",
		},
		{
			name:    "minimum above fixed maximum",
			mutate:  func(c *Config) { c.Shop.MinStars = MaxStars + 1 },
			wantErr: "min_stars",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Normalize(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeRunModeAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeWebhookRequiresEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	require.Error(t, Normalize(cfg))

	cfg.Webhook = WebhookConfig{URL: "https://bot.example.com", Listen: "0.0.0.0", Port: 8443}
	require.NoError(t, Normalize(cfg))
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, []string{"callback", "message"}, cfg.RateLimit.ExcludeUpdates)

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	require.Error(t, Normalize(cfg))
}
