package shop

import (
	"context"
	"errors"
	"time"

	"log/slog"

	coreconfig "starsbot/core/config"
	"starsbot/core/logger"
	"starsbot/core/telegram/state"
)

// StateAwaitingStars marks a user who pressed "buy" and owes us a quantity.
const StateAwaitingStars state.State = "awaiting_stars"

// Flow is the order-intake state machine. It consumes decoded events,
// moves the per-user conversation state and returns the View to render.
// It performs no I/O besides logging; the transport renders the Views.
type Flow struct {
	pricing        Pricing
	bankCard       string
	bankCardHolder string
	supportContact string
	sessions       state.Manager
	now            func() time.Time
}

// NewFlow builds a Flow over the given session manager. The configuration
// is captured once; the flow never re-reads it.
func NewFlow(cfg coreconfig.ShopConfig, sessions state.Manager) *Flow {
	return &Flow{
		pricing:        NewPricing(cfg),
		bankCard:       cfg.BankCard,
		bankCardHolder: cfg.BankCardHolder,
		supportContact: cfg.SupportContact,
		sessions:       sessions,
		now:            time.Now,
	}
}

// Pricing exposes the flow's pricing rules, mainly for startup diagnostics.
func (f *Flow) Pricing() Pricing { return f.pricing }

// Start resets the user to the menu and returns the greeting view.
// Also serves as the /start fallback out of an unfinished purchase.
func (f *Flow) Start(userID int64) View {
	f.sessions.ClearState(userID)
	return f.startView()
}

// Menu returns the user to the main menu, abandoning any pending purchase.
func (f *Flow) Menu(userID int64) View {
	f.sessions.ClearState(userID)
	return f.menuView()
}

// Calculator renders the sample price table. No state change.
func (f *Flow) Calculator() View { return f.calculatorView() }

// Details renders the payment requisites. No state change.
func (f *Flow) Details() View { return f.detailsView() }

// Support renders the support contact card. No state change.
func (f *Flow) Support() View { return f.supportView() }

// Buy prompts for a quantity and moves the user into the awaiting state.
func (f *Flow) Buy(userID int64) View {
	f.sessions.SetState(userID, StateAwaitingStars)
	return f.buyPromptView()
}

// Submit consumes the quantity text of a user in the awaiting state.
// A rejected quantity keeps the user in the awaiting state and returns
// the re-prompt view together with the ValidationError; an accepted one
// issues the order, ends the conversation and returns the order summary.
func (f *Flow) Submit(ctx context.Context, userID int64, raw string) (View, *Order, error) {
	stars, err := f.pricing.ParseStars(raw)
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return View{}, nil, err
		}
		logger.LogEvent(ctx, logger.Shop, slog.LevelInfo, "quantity.rejected",
			slog.Int64("user_id", userID),
			slog.String("err_code", verr.Kind),
			slog.String("payload", logger.SanitizeLimit(raw, 32)),
		)
		return f.rejectionView(verr), nil, err
	}

	order, err := NewOrder(f.pricing, userID, stars, f.now())
	if err != nil {
		return View{}, nil, err
	}
	f.sessions.ClearState(userID)

	logger.LogEvent(ctx, logger.Shop, slog.LevelInfo, "order.issued",
		slog.Int64("user_id", userID),
		slog.String("order_id", order.ID),
		slog.Int("stars", order.Stars),
		slog.String("price", order.Price.String()),
	)
	return f.orderView(order), order, nil
}

// MarkPaid acknowledges a self-reported payment. The order ID comes from
// the button payload verbatim; nothing is verified and no state changes.
func (f *Flow) MarkPaid(ctx context.Context, userID int64, orderID string) View {
	logger.LogEvent(ctx, logger.Shop, slog.LevelInfo, "order.paid_reported",
		slog.Int64("user_id", userID),
		slog.String("order_id", orderID),
	)
	return f.paidView(orderID)
}
