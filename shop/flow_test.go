package shop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "starsbot/core/config"
	"starsbot/core/telegram/state"
)

func testFlow(t *testing.T) (*Flow, state.Manager) {
	t.Helper()
	cfg := coreconfig.Config{
		Telegram: coreconfig.TelegramConfig{Token: "test-token"},
		Shop: coreconfig.ShopConfig{
			BankCard:       "2200 0000 0000 0000",
			BankCardHolder: "ИВАН ИВАНОВ",
			StarPrice:      "1.6",
			MinStars:       50,
			SupportContact: "@support",
		},
	}
	require.NoError(t, coreconfig.Normalize(&cfg))

	sessions := state.NewMemoryManager()
	f := NewFlow(cfg.Shop, sessions)
	f.now = func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return f, sessions
}

func TestFlowBuyThenValidQuantity(t *testing.T) {
	f, sessions := testFlow(t)
	const userID int64 = 7

	view := f.Buy(userID)
	assert.Contains(t, view.Text, "Введите количество звезд")
	assert.Equal(t, StateAwaitingStars, sessions.StateOf(userID))

	view, order, err := f.Submit(context.Background(), userID, "100")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "ST01011200007", order.ID)
	assert.Equal(t, 100, order.Stars)
	assert.Equal(t, "160.0", order.Price.String())
	assert.Contains(t, view.Text, "ST01011200007")
	assert.Contains(t, view.Text, "2200 0000 0000 0000")

	// Conversation ends: back to idle.
	assert.Equal(t, state.StateIdle, sessions.StateOf(userID))
	assert.False(t, sessions.InProgress(userID))

	// Mark-paid button carries the order id as payload.
	var paid *Button
	for _, row := range view.Rows {
		for i := range row {
			if row[i].Action == ActionPaid {
				paid = &row[i]
			}
		}
	}
	require.NotNil(t, paid)
	assert.Equal(t, order.ID, paid.Payload)
}

func TestFlowRejectionsStayAwaiting(t *testing.T) {
	f, sessions := testFlow(t)
	const userID int64 = 7

	f.Buy(userID)

	tests := []struct {
		name     string
		raw      string
		wantKind string
		wantText string
	}{
		{name: "below minimum", raw: "10", wantKind: KindBelowMinimum, wantText: "Минимум 50"},
		{name: "above maximum", raw: "6000", wantKind: KindAboveMaximum, wantText: "Максимум 5000"},
		{name: "not a number", raw: "abc", wantKind: KindNotANumber, wantText: "Введите ЧИСЛО"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, order, err := f.Submit(context.Background(), userID, tt.raw)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantKind, verr.Kind)
			assert.Nil(t, order)
			assert.Contains(t, view.Text, tt.wantText)
			assert.Equal(t, StateAwaitingStars, sessions.StateOf(userID))
		})
	}
}

func TestFlowBackAndStartResetState(t *testing.T) {
	f, sessions := testFlow(t)
	const userID int64 = 7

	f.Buy(userID)
	require.True(t, sessions.InProgress(userID))

	view := f.Menu(userID)
	assert.Contains(t, view.Text, "Главное меню")
	assert.False(t, sessions.InProgress(userID))

	f.Buy(userID)
	view = f.Start(userID)
	assert.Contains(t, view.Text, "Telegram Stars Bot")
	assert.False(t, sessions.InProgress(userID))
}

func TestFlowMarkPaidIsStateless(t *testing.T) {
	f, sessions := testFlow(t)
	const userID int64 = 7

	// Works from the menu.
	view := f.MarkPaid(context.Background(), userID, "ST01011200007")
	assert.Contains(t, view.Text, "Заказ #ST01011200007 принят")
	assert.False(t, sessions.InProgress(userID))

	// And does not disturb an active purchase.
	f.Buy(userID)
	view = f.MarkPaid(context.Background(), userID, "ST99999999999")
	assert.Contains(t, view.Text, "ST99999999999")
	assert.Equal(t, StateAwaitingStars, sessions.StateOf(userID))
}

func TestFlowCalculatorFiltersSamples(t *testing.T) {
	f, _ := testFlow(t)

	view := f.Calculator()
	assert.Contains(t, view.Text, "• *50* звезд = *80.0₽*")
	assert.Contains(t, view.Text, "• *5000* звезд = *8000.0₽*")

	// Raising the minimum drops samples below it.
	f.pricing.MinStars = 500
	view = f.Calculator()
	assert.NotContains(t, view.Text, "• *50* звезд")
	assert.NotContains(t, view.Text, "• *100* звезд")
	assert.Contains(t, view.Text, "• *500* звезд")
}

func TestFlowStatelessViews(t *testing.T) {
	f, sessions := testFlow(t)
	const userID int64 = 7

	f.Buy(userID)
	f.Calculator()
	f.Details()
	f.Support()
	assert.Equal(t, StateAwaitingStars, sessions.StateOf(userID), "informational views must not move state")
}
