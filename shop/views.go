package shop

import (
	"fmt"
	"strings"
)

// Button action keys round-tripped through callback data. The mark-paid
// action carries the order ID as payload; the rest are bare keys.
const (
	ActionBuy        = "buy"
	ActionCalculator = "calculator"
	ActionDetails    = "details"
	ActionSupport    = "support"
	ActionBack       = "back"
	ActionPaid       = "paid"
)

// Button is one inline action offered under a view.
type Button struct {
	Label   string
	Action  string
	Payload string
}

// View is a renderable response: Markdown text plus button rows. The
// transport layer decides whether to send it fresh or edit in place.
type View struct {
	Text string
	Rows [][]Button
}

// calculatorSamples are the quantities shown in the price table; entries
// outside the configured range are filtered out.
var calculatorSamples = []int{50, 100, 250, 500, 1000, 2000, 5000}

func menuRows() [][]Button {
	return [][]Button{
		{{Label: "⭐ Купить звёзды", Action: ActionBuy}},
		{{Label: "💰 Калькулятор", Action: ActionCalculator}},
		{{Label: "💳 Реквизиты", Action: ActionDetails}},
		{{Label: "📞 Поддержка", Action: ActionSupport}},
	}
}

func backRow() []Button {
	return []Button{{Label: "🔙 Назад", Action: ActionBack}}
}

func (f *Flow) startView() View {
	text := fmt.Sprintf(
		"🚀 *Telegram Stars Bot*\n\n"+
			"💎 *Цена:* %s₽ за 1 звезду\n"+
			"📦 *Диапазон:* от %d до %d звезд\n\n"+
			"💳 *Оплата картой РФ*\n"+
			"⚡ *Доставка:* мгновенно\n\n"+
			"Нажмите *'Купить звёзды'* для заказа",
		f.pricing.PricePerStar, f.pricing.MinStars, f.pricing.MaxStars,
	)
	return View{Text: text, Rows: menuRows()}
}

func (f *Flow) menuView() View {
	return View{
		Text: "🚀 *Главное меню*\n\nВыберите действие:",
		Rows: menuRows(),
	}
}

func (f *Flow) buyPromptView() View {
	example, _ := f.pricing.Price(100)
	text := fmt.Sprintf(
		"🎛 *Введите количество звезд*\n\n"+
			"💎 Цена: *%s₽* за 1 звезду\n"+
			"📦 От *%d* до *%d* звезд\n\n"+
			"*Пример:* 100 звезд = *%s₽*\n\n"+
			"Введите любое число:",
		f.pricing.PricePerStar, f.pricing.MinStars, f.pricing.MaxStars, example,
	)
	return View{Text: text}
}

func (f *Flow) calculatorView() View {
	var examples strings.Builder
	for _, stars := range calculatorSamples {
		if stars < f.pricing.MinStars || stars > f.pricing.MaxStars {
			continue
		}
		price, _ := f.pricing.Price(stars)
		fmt.Fprintf(&examples, "• *%d* звезд = *%s₽*\n", stars, price)
	}
	text := fmt.Sprintf(
		"🧮 *Калькулятор стоимости*\n\n"+
			"💎 Цена за 1 звезду: *%s₽*\n"+
			"📦 Диапазон: от *%d* до *%d*\n\n"+
			"*Примеры:*\n%s\n"+
			"📝 *Формула:* Количество × %s = Стоимость",
		f.pricing.PricePerStar, f.pricing.MinStars, f.pricing.MaxStars,
		examples.String(), f.pricing.PricePerStar,
	)
	return View{
		Text: text,
		Rows: [][]Button{
			{{Label: "🛒 Купить сейчас", Action: ActionBuy}},
			backRow(),
		},
	}
}

func (f *Flow) detailsView() View {
	text := fmt.Sprintf(
		"💳 *Реквизиты для оплаты*\n\n"+
			"🏦 *Карта:*\n`%s`\n"+
			"👤 *Получатель:* %s\n\n"+
			"📝 *Как оплатить:*\n"+
			"1. Сделайте заказ через бота\n"+
			"2. Получите код заказа\n"+
			"3. Переведите сумму на карту\n"+
			"4. Укажите код в комментарии\n"+
			"5. Нажмите 'Я оплатил'\n\n"+
			"⚠️ *Без кода платеж не будет зачислен!*",
		f.bankCard, f.bankCardHolder,
	)
	return View{
		Text: text,
		Rows: [][]Button{
			{{Label: "🛒 Сделать заказ", Action: ActionBuy}},
			backRow(),
		},
	}
}

func (f *Flow) supportView() View {
	text := fmt.Sprintf(
		"📞 *Поддержка*\n\n"+
			"👤 *Менеджер:* %s\n"+
			"⏱ *Время ответа:* 5-15 минут\n\n"+
			"*При обращении укажите:*\n"+
			"1. Код заказа\n"+
			"2. Сумма платежа\n"+
			"3. Дата и время\n"+
			"4. Скриншот перевода\n\n"+
			"*Работаем 24/7*",
		f.supportContact,
	)
	return View{Text: text, Rows: [][]Button{backRow()}}
}

func (f *Flow) orderView(o *Order) View {
	text := fmt.Sprintf(
		"✅ *Заказ #%s*\n\n"+
			"⭐ Звёзд: *%d*\n"+
			"💰 Стоимость: *%s₽*\n\n"+
			"💳 *Переведите на карту:*\n"+
			"`%s`\n"+
			"👤 *Получатель:* %s\n\n"+
			"📝 *ИНСТРУКЦИЯ:*\n"+
			"1. Переведите *%s₽*\n"+
			"2. В комментарии укажите: *%s*\n"+
			"3. Сохраните скриншот\n"+
			"4. Нажмите *'Я оплатил'* ниже\n\n"+
			"⚠️ *Без комментария платеж не зачислится!*",
		o.ID, o.Stars, o.Price, f.bankCard, f.bankCardHolder, o.Price, o.ID,
	)
	return View{
		Text: text,
		Rows: [][]Button{
			{{Label: "✅ Я оплатил", Action: ActionPaid, Payload: o.ID}},
			{{Label: "📞 Поддержка", Action: ActionSupport}},
			{{Label: "🔄 Новый заказ", Action: ActionBuy}},
		},
	}
}

func (f *Flow) paidView(orderID string) View {
	text := fmt.Sprintf(
		"✅ *Заказ #%s принят!*\n\n"+
			"⏱ *Статус:* Ожидает проверки\n"+
			"🕐 *Время:* 1-10 минут\n\n"+
			"📞 *Поддержка:* %s\n"+
			"🔄 *Новый заказ:* /start",
		orderID, f.supportContact,
	)
	return View{Text: text}
}

func (f *Flow) rejectionView(verr *ValidationError) View {
	var text string
	switch verr.Kind {
	case KindBelowMinimum:
		text = fmt.Sprintf(
			"❌ *Минимум %d звезд*\n\nВведите число от %d:",
			verr.Min, verr.Min,
		)
	case KindAboveMaximum:
		text = fmt.Sprintf(
			"❌ *Максимум %d звезд*\n\nВведите число до %d:",
			verr.Max, verr.Max,
		)
	default:
		text = fmt.Sprintf(
			"❌ *Введите ЧИСЛО!*\n\n"+
				"Например: 100, 250, 500\n"+
				"Диапазон: от %d до %d",
			verr.Min, verr.Max,
		)
	}
	return View{Text: text}
}
