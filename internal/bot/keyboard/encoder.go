package keyboard

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CallbackDataSeparator  = ":"
	CallbackDataLimitBytes = 64
)

// Callback actions carried in inline button data. Arguments are appended with
// the separator, e.g. "view_gift:<giftID>:<page>".
const (
	ActionToggleAutobuy  = "toggle_autobuy"
	ActionViewBalance    = "view_balance"
	ActionViewGifts      = "view_gifts"
	ActionGiftsPage      = "gifts_page"
	ActionViewGift       = "view_gift"
	ActionConfirm        = "confirm_purchase"
	ActionFilterSettings = "filter_settings"
	ActionToggleFilter   = "toggle_limited_filter"
	ActionMaxPriceMenu   = "set_max_price_menu"
	ActionSetPrice       = "set_price"
	ActionMinPriceMenu   = "set_min_price_menu"
	ActionSetMinPrice    = "set_min_price"
	ActionMaxCycleMenu   = "set_max_cycle_menu"
	ActionSetCycle       = "set_cycle"
	ActionBackToMenu     = "back_to_menu"
	ActionCancel         = "cancel"
)

// EncodeCallback joins an action with its arguments into callback data,
// enforcing the platform's 64-byte limit.
func EncodeCallback(action string, args ...string) (string, error) {
	payload := action
	if len(args) > 0 {
		payload = action + CallbackDataSeparator + strings.Join(args, CallbackDataSeparator)
	}

	if len(payload) > CallbackDataLimitBytes {
		return "", fmt.Errorf("callback data exceeds %d byte limit: got %d", CallbackDataLimitBytes, len(payload))
	}

	return payload, nil
}

// DecodeCallback splits callback data into its action and argument list.
func DecodeCallback(callbackData string) (action string, args []string, err error) {
	if callbackData == "" {
		return "", nil, errors.New("callback data is empty")
	}

	parts := strings.Split(callbackData, CallbackDataSeparator)
	return parts[0], parts[1:], nil
}
