// Package bot wires the storefront flow to the Telegram transport:
// commands, callback actions and the quantity conversation.
package bot

import (
	"context"

	"log/slog"

	coreconfig "starsbot/core/config"
	"starsbot/core/logger"
	tg "starsbot/core/telegram"
	"starsbot/core/telegram/router"
	"starsbot/core/telegram/state"
	"starsbot/shop"
)

// Bot owns the storefront wiring: the flow, the per-user sessions and
// the command/callback registry.
type Bot struct {
	cfg      *coreconfig.Config
	flow     *shop.Flow
	sessions state.Manager
	registry *tg.Registry
}

// New builds a Bot from normalized configuration.
func New(cfg *coreconfig.Config) *Bot {
	sessions := state.NewMemoryManager()
	b := &Bot{
		cfg:      cfg,
		flow:     shop.NewFlow(cfg.Shop, sessions),
		sessions: sessions,
		registry: tg.NewRegistry(),
	}
	b.register()
	return b
}

func (b *Bot) register() {
	b.registry.RegisterCommand("/start", tg.Command{
		Handler:     b.onStart,
		Description: "Главное меню",
	})

	_ = b.registry.RegisterCallback(shop.ActionBuy, b.onBuy)
	_ = b.registry.RegisterCallback(shop.ActionCalculator, b.onCalculator)
	_ = b.registry.RegisterCallback(shop.ActionDetails, b.onDetails)
	_ = b.registry.RegisterCallback(shop.ActionSupport, b.onSupport)
	_ = b.registry.RegisterCallback(shop.ActionBack, b.onBack)
	_ = b.registry.RegisterCallback(shop.ActionPaid, b.onPaid)

	b.sessions.Bind(shop.StateAwaitingStars, b.onQuantity)
}

// RunOptions assembles everything the transport loop needs.
func (b *Bot) RunOptions() tg.RunOptions {
	routes := router.CommandRoutes(b.registry)
	routes = append(routes, router.CallbackRoute(b.registry, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(b.sessions, b.registry, router.TextOptions{})...)

	return tg.RunOptions{
		Config:      b.cfg,
		Registry:    b.registry,
		Middlewares: tg.DefaultMiddlewares(b.cfg, nil),
		Routes:      routes,
		OnStart:     b.logBanner,
	}
}

func (b *Bot) logBanner(ctx context.Context, _ tg.Runtime) error {
	p := b.flow.Pricing()
	logger.Shop.LogAttrs(ctx, slog.LevelInfo, "storefront ready",
		slog.String("event", "ready"),
		slog.String("price", p.PricePerStar.String()),
		slog.Int("min_stars", p.MinStars),
		slog.Int("max_stars", p.MaxStars),
	)
	return nil
}
