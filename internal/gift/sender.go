// Package gift executes gift transfers through the Bot API.
package gift

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Proton-105/giftpanel-bot/internal/telegram"
)

// Sender delivers a gift to a user. A true result means the platform confirmed
// delivery. Once the call is issued it cannot be aborted.
type Sender interface {
	SendGift(ctx context.Context, userID int64, giftID string) (bool, error)
}

// TelegramSender implements Sender over the raw Bot API sendGift method.
type TelegramSender struct {
	raw telegram.RawCaller
	log *slog.Logger
}

// NewTelegramSender builds a sender over the provided raw API caller.
func NewTelegramSender(raw telegram.RawCaller, log *slog.Logger) *TelegramSender {
	if log == nil {
		log = slog.Default()
	}

	return &TelegramSender{raw: raw, log: log}
}

// SendGift transfers the gift to userID, paid from the bot's star balance.
func (s *TelegramSender) SendGift(ctx context.Context, userID int64, giftID string) (bool, error) {
	payload := map[string]interface{}{
		"user_id": userID,
		"gift_id": giftID,
	}

	data, err := s.raw.Raw("sendGift", payload)
	if err != nil {
		s.log.Error("send gift call failed",
			slog.Int64("user_id", userID), slog.String("gift_id", giftID), slog.Any("error", err))
		return false, fmt.Errorf("send gift %s: %w", giftID, err)
	}

	var resp struct {
		OK     bool `json:"ok"`
		Result bool `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, fmt.Errorf("decode send gift response: %w", err)
	}

	return resp.OK && resp.Result, nil
}
