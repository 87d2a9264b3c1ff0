package bot

import (
	"errors"

	"starsbot/core/telegram/callbacks"
	tghelpers "starsbot/core/telegram/helpers"
	"starsbot/core/telegram/keyboard"
	"starsbot/shop"

	tele "gopkg.in/telebot.v4"
)

func markupFor(v shop.View) *tele.ReplyMarkup {
	if len(v.Rows) == 0 {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, len(v.Rows))
	for i, row := range v.Rows {
		r := make([]keyboard.InlineBtn, len(row))
		for j, btn := range row {
			r[j] = keyboard.InlineBtn{Text: btn.Label, Unique: btn.Action, Data: btn.Payload}
		}
		rows[i] = r
	}
	return keyboard.InlineButtonsRows(rows...)
}

func sendView(c tele.Context, v shop.View) error {
	if m := markupFor(v); m != nil {
		return tghelpers.SendMD(c, v.Text, m)
	}
	return tghelpers.SendMD(c, v.Text)
}

func editView(c tele.Context, v shop.View) error {
	if m := markupFor(v); m != nil {
		return tghelpers.EditOrSendMD(c, v.Text, m)
	}
	return tghelpers.EditOrSendMD(c, v.Text)
}

func (b *Bot) onStart(c tele.Context) error {
	return sendView(c, b.flow.Start(c.Sender().ID))
}

func (b *Bot) onBuy(c tele.Context) error {
	return editView(c, b.flow.Buy(c.Sender().ID))
}

func (b *Bot) onCalculator(c tele.Context) error {
	return editView(c, b.flow.Calculator())
}

func (b *Bot) onDetails(c tele.Context) error {
	return editView(c, b.flow.Details())
}

func (b *Bot) onSupport(c tele.Context) error {
	return editView(c, b.flow.Support())
}

func (b *Bot) onBack(c tele.Context) error {
	return editView(c, b.flow.Menu(c.Sender().ID))
}

// onQuantity handles text while the user owes a star quantity. Rejected
// input re-prompts and is not treated as a handler failure.
func (b *Bot) onQuantity(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	view, _, err := b.flow.Submit(ctx, c.Sender().ID, c.Text())
	if err != nil {
		var verr *shop.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
	}
	return sendView(c, view)
}

func (b *Bot) onPaid(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	orderID := callbacks.Payload(c)
	return editView(c, b.flow.MarkPaid(ctx, c.Sender().ID, orderID))
}
