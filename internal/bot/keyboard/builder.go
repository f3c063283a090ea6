package keyboard

import (
	"fmt"
	"log/slog"
	"strconv"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/giftpanel-bot/internal/domain"
)

// Choice sets offered by the setting menus.
var (
	MaxPriceChoices = []int64{100, 500, 1000, 2500, 5000, 10000}
	MinPriceChoices = []int64{0, 50, 100, 500, 1000}
	CycleChoices    = []int{1, 2, 3, 5, 10}
)

// Builder creates the inline keyboards for every panel screen.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{log: log}
}

func (b *Builder) btn(text, action string, args ...string) InlineButton {
	data, err := EncodeCallback(action, args...)
	if err != nil {
		b.log.Error("callback data dropped", slog.String("action", action), slog.Any("error", err))
		data = action
	}
	return InlineButton{Text: text, Data: data}
}

// MainMenu builds the root panel keyboard.
func (b *Builder) MainMenu() *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(b.btn("⚙️ AutoBuy", ActionToggleAutobuy)).
		AddRow(b.btn("💰 Balance", ActionViewBalance), b.btn("🎁 Gifts", ActionViewGifts)).
		AddRow(b.btn("🔧 Filters", ActionFilterSettings)).
		Build()
}

// BackToMenu builds a single back button.
func (b *Builder) BackToMenu() *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(b.btn("Back", ActionBackToMenu)).
		Build()
}

// FilterSettings builds the filter submenu keyboard.
func (b *Builder) FilterSettings() *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(b.btn("🔒 Limited Only", ActionToggleFilter)).
		AddRow(b.btn("💰 Min Price", ActionMinPriceMenu), b.btn("💰 Max Price", ActionMaxPriceMenu)).
		AddRow(b.btn("🔄 Max Per Cycle", ActionMaxCycleMenu)).
		AddRow(b.btn("Back", ActionBackToMenu)).
		Build()
}

// GiftList builds one gift button per row for the current page, the
// pagination row and a back button. Gift buttons carry the origin page so the
// detail screen can return losslessly.
func (b *Builder) GiftList(gifts []domain.Gift, page, totalPages int) *telebot.ReplyMarkup {
	kb := NewInlineKeyboard()

	pageArg := strconv.Itoa(page)
	for _, gift := range gifts {
		label := fmt.Sprintf("Gift %s - %d★", gift.ShortID(), gift.Stars)
		kb.AddRow(b.btn(label, ActionViewGift, gift.ID, pageArg))
	}

	kb.AddRow(PaginationButtons(ActionGiftsPage, page, totalPages)...)
	kb.AddRow(b.btn("Back", ActionBackToMenu))

	return kb.Build()
}

// GiftDetail builds the confirm/back keyboard for a gift detail screen.
func (b *Builder) GiftDetail(giftID string, page int) *telebot.ReplyMarkup {
	pageArg := strconv.Itoa(page)
	return NewInlineKeyboard().
		AddRow(b.btn("✅ Confirm Purchase", ActionConfirm, giftID, pageArg)).
		AddRow(b.btn("Back", ActionGiftsPage, pageArg)).
		Build()
}

// MaxPriceMenu builds the fixed max price choices.
func (b *Builder) MaxPriceMenu() *telebot.ReplyMarkup {
	return b.choiceMenu(ActionSetPrice, MaxPriceChoices)
}

// MinPriceMenu builds the fixed min price choices.
func (b *Builder) MinPriceMenu() *telebot.ReplyMarkup {
	return b.choiceMenu(ActionSetMinPrice, MinPriceChoices)
}

// MaxCycleMenu builds the per-cycle limit choices.
func (b *Builder) MaxCycleMenu() *telebot.ReplyMarkup {
	kb := NewInlineKeyboard()
	row := make([]InlineButton, 0, len(CycleChoices))
	for _, n := range CycleChoices {
		row = append(row, b.btn(strconv.Itoa(n), ActionSetCycle, strconv.Itoa(n)))
	}
	kb.AddRow(row...)
	kb.AddRow(b.btn("Cancel", ActionCancel))
	return kb.Build()
}

func (b *Builder) choiceMenu(action string, amounts []int64) *telebot.ReplyMarkup {
	kb := NewInlineKeyboard()

	row := make([]InlineButton, 0, 3)
	for _, amount := range amounts {
		arg := strconv.FormatInt(amount, 10)
		row = append(row, b.btn(arg+"★", action, arg))
		if len(row) == 3 {
			kb.AddRow(row...)
			row = row[:0]
		}
	}
	kb.AddRow(row...)
	kb.AddRow(b.btn("Cancel", ActionCancel))

	return kb.Build()
}
