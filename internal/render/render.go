// Package render formats every screen shown by the panel. Methods are pure
// and take display-ready values; callers never concatenate user-facing text.
package render

import (
	"fmt"

	"github.com/Proton-105/giftpanel-bot/internal/domain"
)

// Renderer produces the text body of each panel screen.
type Renderer interface {
	MainMenu(balance int64, autobuyOn, filterOn bool) string
	BalanceView(us *domain.UserSettings) string
	FilterSettings(us *domain.UserSettings) string
	GiftList(total, page, totalPages int, filterOn bool, maxPrice, balance int64) string
	NoGiftsFound(filterOn bool, maxPrice, balance int64) string
	GiftDetail(gift domain.Gift, balance int64) string
	MaxPriceMenu(current int64) string
	MinPriceMenu(current int64) string
	MaxCycleMenu(current int) string
	AutobuyToggled(enabled bool) string
	FilterToggled(enabled bool) string
	PriceSet(amount int64) string
	CycleSet(n int) string
	InsufficientStars(required, balance int64) string
	PurchaseSuccess(gift domain.Gift, newBalance int64) string
	PurchaseFailed() string
	GiftNotFound() string
	GenericError() string
	AccessDenied(userID int64, username string) string
}

// Markdown renders screens as Telegram Markdown.
type Markdown struct{}

// NewMarkdown returns the Markdown screen renderer.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

func onOff(enabled bool) string {
	if enabled {
		return "On"
	}
	return "Off"
}

func (r *Markdown) MainMenu(balance int64, autobuyOn, filterOn bool) string {
	return fmt.Sprintf(
		"*🎁 Gift Panel*\n\n"+
			"*Balance:* `%d` ★\n"+
			"*AutoBuy:* %s\n"+
			"*Limited Filter:* %s\n\n"+
			"_Choose an action below:_",
		balance, onOff(autobuyOn), onOff(filterOn))
}

func (r *Markdown) BalanceView(us *domain.UserSettings) string {
	return fmt.Sprintf(
		"*💰 Balance*\n\n"+
			"*Stars:* `%d` ★\n\n"+
			"*AutoBuy:* %s\n"+
			"*Limited Filter:* %s\n"+
			"*Min Price:* `%d` ★\n"+
			"*Max Price:* `%d` ★\n"+
			"*Max Per Cycle:* `%d`",
		us.StarsBalance, onOff(us.AutobuyEnabled), onOff(us.FilterEnabled),
		us.MinPriceLimit, us.MaxPriceLimit, us.MaxBuyPerCycle)
}

func (r *Markdown) FilterSettings(us *domain.UserSettings) string {
	return fmt.Sprintf(
		"*⚙️ Filter Settings*\n\n"+
			"*Limited Only:* %s\n"+
			"*Min Price:* `%d` ★\n"+
			"*Max Price:* `%d` ★\n"+
			"*Max Per Cycle:* `%d`\n\n"+
			"_Adjust the filters below:_",
		onOff(us.FilterEnabled), us.MinPriceLimit, us.MaxPriceLimit, us.MaxBuyPerCycle)
}

func (r *Markdown) GiftList(total, page, totalPages int, filterOn bool, maxPrice, balance int64) string {
	return fmt.Sprintf(
		"*🎁 Available Gifts*\n\n"+
			"*Found:* `%d`\n"+
			"*Page:* `%d/%d`\n"+
			"*Limited Filter:* %s\n"+
			"*Max Price:* `%d` ★\n"+
			"*Balance:* `%d` ★",
		total, page+1, totalPages, onOff(filterOn), maxPrice, balance)
}

func (r *Markdown) NoGiftsFound(filterOn bool, maxPrice, balance int64) string {
	return fmt.Sprintf(
		"*🔍 No Gifts Found*\n\n"+
			"*Limited Filter:* %s\n"+
			"*Max Price:* `%d` ★\n"+
			"*Balance:* `%d` ★\n\n"+
			"_Try relaxing your filters._",
		onOff(filterOn), maxPrice, balance)
}

func (r *Markdown) GiftDetail(gift domain.Gift, balance int64) string {
	limited := "No"
	if gift.Limited {
		limited = "Yes"
	}

	return fmt.Sprintf(
		"*🎁 Gift %s*\n\n"+
			"*Price:* `%d` ★\n"+
			"*Available:* `%d`\n"+
			"*Limited:* %s\n\n"+
			"*Your Balance:* `%d` ★",
		gift.ShortID(), gift.Stars, gift.AvailableAmount, limited, balance)
}

func (r *Markdown) MaxPriceMenu(current int64) string {
	return fmt.Sprintf(
		"*💰 Select Max Price*\n\n"+
			"*Current Setting:* `%d` stars\n\n"+
			"_Choose your maximum price per gift:_", current)
}

func (r *Markdown) MinPriceMenu(current int64) string {
	return fmt.Sprintf(
		"*💰 Select Min Price*\n\n"+
			"*Current Setting:* `%d` stars\n\n"+
			"_Choose your minimum price per gift:_", current)
}

func (r *Markdown) MaxCycleMenu(current int) string {
	return fmt.Sprintf(
		"*🔄 Select Max Per Cycle*\n\n"+
			"*Current Setting:* `%d`\n\n"+
			"_Choose max gifts per AutoBuy cycle:_", current)
}

func (r *Markdown) AutobuyToggled(enabled bool) string {
	status := "Disabled"
	if enabled {
		status = "Enabled"
	}
	return fmt.Sprintf("*⚙️ AutoBuy %s*", status)
}

func (r *Markdown) FilterToggled(enabled bool) string {
	return fmt.Sprintf("*⚙️ Limited Filter: %s*", onOff(enabled))
}

func (r *Markdown) PriceSet(amount int64) string {
	return fmt.Sprintf("*✅ Price Set*\n\n*New Limit:* `%d` ★", amount)
}

func (r *Markdown) CycleSet(n int) string {
	return fmt.Sprintf("*✅ Cycle Limit Set*\n\n*Max Per Cycle:* `%d`", n)
}

func (r *Markdown) InsufficientStars(required, balance int64) string {
	return fmt.Sprintf(
		"*⚠️ Insufficient Stars*\n\n"+
			"*Required:* `%d` ★\n"+
			"*Balance:* `%d` ★",
		required, balance)
}

func (r *Markdown) PurchaseSuccess(gift domain.Gift, newBalance int64) string {
	return fmt.Sprintf(
		"*✅ Gift Purchased*\n\n"+
			"*Gift:* `%s`\n"+
			"*Spent:* `%d` ★\n"+
			"*New Balance:* `%d` ★",
		gift.ShortID(), gift.Stars, newBalance)
}

func (r *Markdown) PurchaseFailed() string {
	return "*⚠️ Gift Purchase Failed*\n\nUnable to send gift. Please try again later."
}

func (r *Markdown) GiftNotFound() string {
	return "*⚠️ Gift Not Found*\n\n_This gift is no longer available._"
}

func (r *Markdown) GenericError() string {
	return "*⚠️ Something went wrong*\n\nPlease try again later."
}

func (r *Markdown) AccessDenied(userID int64, username string) string {
	if username == "" {
		username = "No Username"
	}
	return fmt.Sprintf("*❌ Access Denied*\n\nUser ID: `%d`\nUsername: @%s", userID, username)
}
