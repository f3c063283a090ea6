package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/giftpanel-bot/internal/access"
	"github.com/Proton-105/giftpanel-bot/internal/bot/keyboard"
	apperrors "github.com/Proton-105/giftpanel-bot/internal/errors"
	"github.com/Proton-105/giftpanel-bot/internal/menu"
)

// Callbacks holds the panel's callback handlers. Every handler checks the
// access policy before touching the controller and answers the callback with
// a short acknowledgment.
type Callbacks struct {
	policy access.Policy
	ctrl   *menu.Controller
	log    *slog.Logger
}

// NewCallbacks wires the callback handler set.
func NewCallbacks(policy access.Policy, ctrl *menu.Controller, log *slog.Logger) *Callbacks {
	if log == nil {
		log = slog.Default()
	}

	return &Callbacks{policy: policy, ctrl: ctrl, log: log}
}

// Handlers returns the action-to-handler registration map.
func (h *Callbacks) Handlers() map[string]CallbackHandler {
	return map[string]CallbackHandler{
		keyboard.ActionToggleAutobuy:  h.guard(h.toggleAutobuy),
		keyboard.ActionViewBalance:    h.guard(h.viewBalance),
		keyboard.ActionViewGifts:      h.guard(h.viewGifts),
		keyboard.ActionGiftsPage:      h.guard(h.giftsPage),
		keyboard.ActionViewGift:       h.guard(h.viewGift),
		keyboard.ActionConfirm:        h.guard(h.confirmPurchase),
		keyboard.ActionFilterSettings: h.guard(h.filterSettings),
		keyboard.ActionToggleFilter:   h.guard(h.toggleFilter),
		keyboard.ActionMaxPriceMenu:   h.guard(h.maxPriceMenu),
		keyboard.ActionSetPrice:       h.guard(h.setPrice),
		keyboard.ActionMinPriceMenu:   h.guard(h.minPriceMenu),
		keyboard.ActionSetMinPrice:    h.guard(h.setMinPrice),
		keyboard.ActionMaxCycleMenu:   h.guard(h.maxCycleMenu),
		keyboard.ActionSetCycle:       h.guard(h.setCycle),
		keyboard.ActionBackToMenu:     h.guard(h.backToMenu),
		keyboard.ActionCancel:         h.guard(h.cancel),
	}
}

func (h *Callbacks) guard(next CallbackHandler) CallbackHandler {
	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil || c.Callback() == nil {
			return nil
		}

		if !h.policy.Authorized(c.Sender().ID) {
			h.log.Info("unauthorized callback rejected", slog.Int64("user_id", c.Sender().ID))
			return c.Respond(&telebot.CallbackResponse{Text: AccessDeniedAlert, ShowAlert: true})
		}

		return next(c)
	}
}

func callbackRequest(c telebot.Context) menu.Request {
	cb := c.Callback()

	req := menu.Request{
		UserID:       c.Sender().ID,
		FromCallback: true,
	}
	if cb.Message != nil {
		req.MessageID = cb.Message.ID
		if cb.Message.Chat != nil {
			req.ChatID = cb.Message.Chat.ID
		}
	}

	return req
}

func callbackArgs(c telebot.Context) ([]string, error) {
	data := strings.TrimPrefix(c.Callback().Data, "\f")
	_, args, err := keyboard.DecodeCallback(data)
	if err != nil {
		return nil, apperrors.NewValidationError("undecodable callback data")
	}
	return args, nil
}

func ack(c telebot.Context, text string) error {
	return c.Respond(&telebot.CallbackResponse{Text: text})
}

func (h *Callbacks) toggleAutobuy(c telebot.Context) error {
	enabled, err := h.ctrl.ToggleAutobuy(context.Background(), callbackRequest(c))
	if err != nil {
		return err
	}

	status := "Disabled"
	if enabled {
		status = "Enabled"
	}
	return ack(c, "⚙️ AutoBuy "+status)
}

func (h *Callbacks) viewBalance(c telebot.Context) error {
	if err := h.ctrl.ShowBalance(context.Background(), callbackRequest(c)); err != nil {
		return err
	}
	return ack(c, "✅ Updated")
}

func (h *Callbacks) viewGifts(c telebot.Context) error {
	if err := h.ctrl.ShowGifts(context.Background(), callbackRequest(c), 0); err != nil {
		return err
	}
	return ack(c, "")
}

func (h *Callbacks) giftsPage(c telebot.Context) error {
	args, err := callbackArgs(c)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return apperrors.NewValidationError("gifts_page expects a page argument")
	}

	page, err := strconv.Atoi(args[0])
	if err != nil {
		return apperrors.NewValidationError("gifts_page argument is not a number")
	}

	if err := h.ctrl.ShowGifts(context.Background(), callbackRequest(c), page); err != nil {
		return err
	}
	return ack(c, "")
}

func (h *Callbacks) viewGift(c telebot.Context) error {
	giftID, page, err := giftArgs(c)
	if err != nil {
		return err
	}

	if err := h.ctrl.ShowGiftDetail(context.Background(), callbackRequest(c), giftID, page); err != nil {
		return err
	}
	return ack(c, "")
}

func (h *Callbacks) confirmPurchase(c telebot.Context) error {
	giftID, _, err := giftArgs(c)
	if err != nil {
		return err
	}

	if err := h.ctrl.ConfirmPurchase(context.Background(), callbackRequest(c), giftID); err != nil {
		return err
	}
	return ack(c, "")
}

func giftArgs(c telebot.Context) (giftID string, page int, err error) {
	args, err := callbackArgs(c)
	if err != nil {
		return "", 0, err
	}
	if len(args) != 2 {
		return "", 0, apperrors.NewValidationError("gift callback expects id and page arguments")
	}

	page, convErr := strconv.Atoi(args[1])
	if convErr != nil {
		return "", 0, apperrors.NewValidationError("gift callback page is not a number")
	}

	return args[0], page, nil
}

func (h *Callbacks) filterSettings(c telebot.Context) error {
	if err := h.ctrl.ShowFilterSettings(context.Background(), callbackRequest(c)); err != nil {
		return err
	}
	return ack(c, "⚙️ Settings")
}

func (h *Callbacks) toggleFilter(c telebot.Context) error {
	if _, err := h.ctrl.ToggleFilter(context.Background(), callbackRequest(c)); err != nil {
		return err
	}
	return ack(c, "")
}

func (h *Callbacks) maxPriceMenu(c telebot.Context) error {
	if err := h.ctrl.ShowMaxPriceMenu(context.Background(), callbackRequest(c)); err != nil {
		return err
	}
	return ack(c, "")
}

func (h *Callbacks) setPrice(c telebot.Context) error {
	amount, err := amountArg(c)
	if err != nil {
		return err
	}

	if err := h.ctrl.SetMaxPrice(context.Background(), callbackRequest(c), amount); err != nil {
		return err
	}
	return ack(c, "✅ Max price updated")
}

func (h *Callbacks) minPriceMenu(c telebot.Context) error {
	if err := h.ctrl.ShowMinPriceMenu(context.Background(), callbackRequest(c)); err != nil {
		return err
	}
	return ack(c, "")
}

func (h *Callbacks) setMinPrice(c telebot.Context) error {
	amount, err := amountArg(c)
	if err != nil {
		return err
	}

	if err := h.ctrl.SetMinPrice(context.Background(), callbackRequest(c), amount); err != nil {
		return err
	}
	return ack(c, "✅ Min price updated")
}

func amountArg(c telebot.Context) (int64, error) {
	args, err := callbackArgs(c)
	if err != nil {
		return 0, err
	}
	if len(args) != 1 {
		return 0, apperrors.NewValidationError("price callback expects an amount argument")
	}

	amount, convErr := strconv.ParseInt(args[0], 10, 64)
	if convErr != nil {
		return 0, apperrors.NewValidationError("price callback amount is not a number")
	}

	return amount, nil
}

func (h *Callbacks) maxCycleMenu(c telebot.Context) error {
	if err := h.ctrl.ShowMaxCycleMenu(context.Background(), callbackRequest(c)); err != nil {
		return err
	}
	return ack(c, "")
}

func (h *Callbacks) setCycle(c telebot.Context) error {
	args, err := callbackArgs(c)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return apperrors.NewValidationError("set_cycle expects a count argument")
	}

	n, convErr := strconv.Atoi(args[0])
	if convErr != nil {
		return apperrors.NewValidationError("set_cycle count is not a number")
	}

	if err := h.ctrl.SetCycle(context.Background(), callbackRequest(c), n); err != nil {
		return err
	}
	return ack(c, "")
}

func (h *Callbacks) backToMenu(c telebot.Context) error {
	if err := h.ctrl.ShowMainMenu(context.Background(), callbackRequest(c)); err != nil {
		return err
	}
	return ack(c, "Back")
}

func (h *Callbacks) cancel(c telebot.Context) error {
	if err := h.ctrl.ShowMainMenu(context.Background(), callbackRequest(c)); err != nil {
		return err
	}
	return ack(c, "❌ Cancelled")
}
