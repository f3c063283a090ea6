// Package menu implements the panel's screen transitions and the purchase flow.
package menu

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/giftpanel-bot/internal/bot/keyboard"
	"github.com/Proton-105/giftpanel-bot/internal/catalog"
	"github.com/Proton-105/giftpanel-bot/internal/domain"
	apperrors "github.com/Proton-105/giftpanel-bot/internal/errors"
	"github.com/Proton-105/giftpanel-bot/internal/gift"
	"github.com/Proton-105/giftpanel-bot/internal/render"
	"github.com/Proton-105/giftpanel-bot/internal/session"
	"github.com/Proton-105/giftpanel-bot/internal/settings"
	"github.com/Proton-105/giftpanel-bot/internal/telegram"
	"github.com/Proton-105/giftpanel-bot/pkg/metrics"
)

// Request identifies the inbound interaction a screen is rendered for.
// Callback-initiated requests edit MessageID in place; command-initiated
// requests replace the tracked panel message with a fresh one.
type Request struct {
	UserID       int64
	ChatID       int64
	MessageID    int
	FromCallback bool
}

// Controller owns every screen of the panel. It renders through the messenger
// and never formats text or builds keyboards itself.
type Controller struct {
	store     settings.Store
	loader    catalog.Loader
	sender    gift.Sender
	renderer  render.Renderer
	keyboards *keyboard.Builder
	tracker   *session.Tracker
	messenger telegram.Messenger
	log       *slog.Logger
}

// NewController wires the panel controller with its collaborators.
func NewController(
	store settings.Store,
	loader catalog.Loader,
	sender gift.Sender,
	renderer render.Renderer,
	keyboards *keyboard.Builder,
	tracker *session.Tracker,
	messenger telegram.Messenger,
	log *slog.Logger,
) *Controller {
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		store:     store,
		loader:    loader,
		sender:    sender,
		renderer:  renderer,
		keyboards: keyboards,
		tracker:   tracker,
		messenger: messenger,
		log:       log,
	}
}

// render applies the single-panel-message rule. Callback requests edit the
// triggering message; command requests delete the tracked previous panel
// message (best effort), send a new one and record its id. Edits never touch
// the tracker.
func (c *Controller) render(ctx context.Context, req Request, text string, markup *telebot.ReplyMarkup) error {
	if req.FromCallback {
		outcome, err := c.messenger.Edit(ctx, req.ChatID, req.MessageID, text, markup)
		metrics.RecordRender("edit", outcome.String())
		if err != nil {
			return apperrors.NewCollaboratorError("messenger", err)
		}
		return nil
	}

	if prev, ok := c.tracker.TakeAndClear(req.ChatID); ok {
		if err := c.messenger.Delete(ctx, req.ChatID, prev); err != nil {
			c.log.Debug("could not delete previous panel message",
				slog.Int64("chat_id", req.ChatID), slog.Int("message_id", prev), slog.Any("error", err))
		}
	}

	messageID, err := c.messenger.Send(ctx, req.ChatID, text, markup)
	if err != nil {
		metrics.RecordRender("send", "failed")
		return apperrors.NewCollaboratorError("messenger", err)
	}

	metrics.RecordRender("send", "ok")
	c.tracker.Record(req.ChatID, messageID)
	return nil
}

// ShowMainMenu renders the root panel. Serves /start, .panel, back_to_menu
// and cancel.
func (c *Controller) ShowMainMenu(ctx context.Context, req Request) error {
	us, err := c.store.GetUserData(ctx, req.UserID)
	if err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	text := c.renderer.MainMenu(us.StarsBalance, us.AutobuyEnabled, us.FilterEnabled)
	return c.render(ctx, req, text, c.keyboards.MainMenu())
}

// ShowBalance renders the balance and current settings overview.
func (c *Controller) ShowBalance(ctx context.Context, req Request) error {
	us, err := c.store.GetUserData(ctx, req.UserID)
	if err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	return c.render(ctx, req, c.renderer.BalanceView(us), c.keyboards.BackToMenu())
}

// ToggleAutobuy flips the autobuy flag and reports the new state.
func (c *Controller) ToggleAutobuy(ctx context.Context, req Request) (bool, error) {
	enabled, err := c.store.ToggleAutobuy(ctx, req.UserID)
	if err != nil {
		return false, apperrors.NewCollaboratorError("settings store", err)
	}

	return enabled, c.render(ctx, req, c.renderer.AutobuyToggled(enabled), c.keyboards.BackToMenu())
}

// ShowFilterSettings renders the filter submenu.
func (c *Controller) ShowFilterSettings(ctx context.Context, req Request) error {
	us, err := c.store.GetUserData(ctx, req.UserID)
	if err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	return c.render(ctx, req, c.renderer.FilterSettings(us), c.keyboards.FilterSettings())
}

// ToggleFilter flips the limited-only filter and reports the new state.
func (c *Controller) ToggleFilter(ctx context.Context, req Request) (bool, error) {
	enabled, err := c.store.ToggleFilter(ctx, req.UserID)
	if err != nil {
		return false, apperrors.NewCollaboratorError("settings store", err)
	}

	return enabled, c.render(ctx, req, c.renderer.FilterToggled(enabled), c.keyboards.FilterSettings())
}

// ShowGifts renders the requested catalog page under the user's filters.
// Out-of-range pages are clamped rather than rejected.
func (c *Controller) ShowGifts(ctx context.Context, req Request, page int) error {
	us, err := c.store.GetUserData(ctx, req.UserID)
	if err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	gifts, err := c.loader.LoadGifts(ctx)
	if err != nil {
		return apperrors.NewCollaboratorError("catalog", err)
	}

	available := catalog.FilterAvailable(gifts, catalog.CriteriaFromSettings(us))
	if len(available) == 0 {
		text := c.renderer.NoGiftsFound(us.FilterEnabled, us.MaxPriceLimit, us.StarsBalance)
		return c.render(ctx, req, text, c.keyboards.MainMenu())
	}

	totalPages := catalog.TotalPages(len(available))
	page = catalog.ClampPage(page, totalPages)

	text := c.renderer.GiftList(len(available), page, totalPages, us.FilterEnabled, us.MaxPriceLimit, us.StarsBalance)
	markup := c.keyboards.GiftList(catalog.Page(available, page), page, totalPages)
	return c.render(ctx, req, text, markup)
}

// ShowGiftDetail renders a single gift with a purchase confirmation prompt.
// The origin page rides along so "Back" returns to the same list page.
func (c *Controller) ShowGiftDetail(ctx context.Context, req Request, giftID string, page int) error {
	us, err := c.store.GetUserData(ctx, req.UserID)
	if err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	gifts, err := c.loader.LoadGifts(ctx)
	if err != nil {
		return apperrors.NewCollaboratorError("catalog", err)
	}

	target, ok := catalog.FindByID(gifts, giftID)
	if !ok {
		c.log.Info("gift missing from catalog", slog.String("gift_id", giftID))
		return c.render(ctx, req, c.renderer.GiftNotFound(), c.keyboards.MainMenu())
	}

	return c.render(ctx, req, c.renderer.GiftDetail(target, us.StarsBalance), c.keyboards.GiftDetail(giftID, page))
}

// ConfirmPurchase executes the purchase flow against a freshly fetched
// catalog. The stars balance is deducted only after the executor confirms
// delivery, with exactly one settings write.
func (c *Controller) ConfirmPurchase(ctx context.Context, req Request, giftID string) error {
	us, err := c.store.GetUserData(ctx, req.UserID)
	if err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	gifts, err := c.loader.LoadGifts(ctx)
	if err != nil {
		return apperrors.NewCollaboratorError("catalog", err)
	}

	target, ok := catalog.FindByID(gifts, giftID)
	if !ok {
		metrics.RecordPurchase(metrics.PurchaseNotFound, 0)
		c.log.Info("purchase of missing gift refused",
			slog.Int64("user_id", req.UserID), slog.String("gift_id", giftID))
		return c.render(ctx, req, c.renderer.GiftNotFound(), c.keyboards.MainMenu())
	}

	if us.StarsBalance < target.Stars {
		metrics.RecordPurchase(metrics.PurchaseInsufficient, 0)
		text := c.renderer.InsufficientStars(target.Stars, us.StarsBalance)
		return c.render(ctx, req, text, c.keyboards.MainMenu())
	}

	sent, err := c.sender.SendGift(ctx, req.UserID, giftID)
	if err != nil {
		metrics.RecordPurchase(metrics.PurchaseFailed, 0)
		c.log.Error("gift delivery errored",
			slog.Int64("user_id", req.UserID), slog.String("gift_id", giftID), slog.Any("error", err))
		return c.render(ctx, req, c.renderer.PurchaseFailed(), c.keyboards.BackToMenu())
	}
	if !sent {
		metrics.RecordPurchase(metrics.PurchaseFailed, 0)
		return c.render(ctx, req, c.renderer.PurchaseFailed(), c.keyboards.BackToMenu())
	}

	newBalance, err := c.deduct(ctx, req.UserID, target.Stars, us.StarsBalance-target.Stars)
	if err != nil {
		return err
	}

	metrics.RecordPurchase(metrics.PurchaseDelivered, target.Stars)
	c.log.Info("gift purchased",
		slog.Int64("user_id", req.UserID), slog.String("gift_id", giftID),
		slog.Int64("stars", target.Stars), slog.Int64("new_balance", newBalance))

	// Terminal screen: no navigation buttons.
	return c.render(ctx, req, c.renderer.PurchaseSuccess(target, newBalance), nil)
}

// deduct prefers the store's atomic conditional deduction and falls back to a
// read-modify-write of the balance setting. It returns the balance to show on
// the success screen; when the atomic path reports a concurrent balance change
// the stored balance is re-read instead of trusting the local computation.
func (c *Controller) deduct(ctx context.Context, userID, stars, newBalance int64) (int64, error) {
	if deductor, ok := settings.AsBalanceDeductor(c.store); ok {
		deducted, err := deductor.DeductBalance(ctx, userID, stars)
		if err != nil {
			return 0, apperrors.NewCollaboratorError("settings store", err)
		}
		if deducted {
			return newBalance, nil
		}

		c.log.Warn("balance changed during purchase, deduction skipped",
			slog.Int64("user_id", userID), slog.Int64("stars", stars))

		us, err := c.store.GetUserData(ctx, userID)
		if err != nil {
			return 0, apperrors.NewCollaboratorError("settings store", err)
		}
		return us.StarsBalance, nil
	}

	if err := c.store.UpdateSetting(ctx, userID, domain.SettingStarsBalance, newBalance); err != nil {
		return 0, apperrors.NewCollaboratorError("settings store", err)
	}
	return newBalance, nil
}

// ShowMaxPriceMenu renders the max price choice screen.
func (c *Controller) ShowMaxPriceMenu(ctx context.Context, req Request) error {
	us, err := c.store.GetUserData(ctx, req.UserID)
	if err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	return c.render(ctx, req, c.renderer.MaxPriceMenu(us.MaxPriceLimit), c.keyboards.MaxPriceMenu())
}

// ShowMinPriceMenu renders the min price choice screen.
func (c *Controller) ShowMinPriceMenu(ctx context.Context, req Request) error {
	us, err := c.store.GetUserData(ctx, req.UserID)
	if err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	return c.render(ctx, req, c.renderer.MinPriceMenu(us.MinPriceLimit), c.keyboards.MinPriceMenu())
}

// ShowMaxCycleMenu renders the per-cycle limit choice screen.
func (c *Controller) ShowMaxCycleMenu(ctx context.Context, req Request) error {
	us, err := c.store.GetUserData(ctx, req.UserID)
	if err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	return c.render(ctx, req, c.renderer.MaxCycleMenu(us.MaxBuyPerCycle), c.keyboards.MaxCycleMenu())
}

// SetMaxPrice stores a new max price limit.
func (c *Controller) SetMaxPrice(ctx context.Context, req Request, amount int64) error {
	if amount < 0 {
		return apperrors.NewValidationError("max price must not be negative")
	}

	if err := c.store.UpdateSetting(ctx, req.UserID, domain.SettingMaxPriceLimit, amount); err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	return c.render(ctx, req, c.renderer.PriceSet(amount), c.keyboards.FilterSettings())
}

// SetMinPrice stores a new min price limit.
func (c *Controller) SetMinPrice(ctx context.Context, req Request, amount int64) error {
	if amount < 0 {
		return apperrors.NewValidationError("min price must not be negative")
	}

	if err := c.store.UpdateSetting(ctx, req.UserID, domain.SettingMinPriceLimit, amount); err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	return c.render(ctx, req, c.renderer.PriceSet(amount), c.keyboards.FilterSettings())
}

// SetCycle stores a new per-cycle purchase limit.
func (c *Controller) SetCycle(ctx context.Context, req Request, n int) error {
	if n < 1 {
		return apperrors.NewValidationError("cycle limit must be positive")
	}

	if err := c.store.UpdateSetting(ctx, req.UserID, domain.SettingMaxBuyPerCycle, int64(n)); err != nil {
		return apperrors.NewCollaboratorError("settings store", err)
	}

	return c.render(ctx, req, c.renderer.CycleSet(n), c.keyboards.FilterSettings())
}
