// Package middleware provides cross-cutting update processing concerns.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/giftpanel-bot/internal/bot/handlers"
	"github.com/Proton-105/giftpanel-bot/internal/idempotency"
)

// Idempotency drops duplicate deliveries of the same Telegram update. A
// double tap on a button produces a distinct callback id and is NOT filtered
// here; only the platform's redeliveries are.
func Idempotency(deduper idempotency.Deduper, ttl time.Duration, log *slog.Logger) handlers.Middleware {
	if deduper == nil {
		return func(next handlers.Handler) handlers.Handler {
			return next
		}
	}
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			key := updateKey(c)
			if key == "" {
				return next(c)
			}

			duplicate, err := deduper.MarkProcessed(context.Background(), key, ttl)
			if err != nil {
				// Dedupe backend trouble must not block the panel.
				log.Warn("dedupe check failed, processing anyway",
					slog.String("key", key), slog.Any("error", err))
				return next(c)
			}

			if duplicate {
				log.Info("duplicate update delivery dropped", slog.String("key", key))
				if c.Callback() != nil {
					return c.Respond(&telebot.CallbackResponse{})
				}
				return nil
			}

			return next(c)
		}
	}
}

func updateKey(c telebot.Context) string {
	if c == nil {
		return ""
	}

	if cb := c.Callback(); cb != nil {
		if cb.ID != "" {
			return fmt.Sprintf("cb:%s", cb.ID)
		}

		if cb.Message != nil {
			chatID := int64(0)
			if cb.Message.Chat != nil {
				chatID = cb.Message.Chat.ID
			}
			return fmt.Sprintf("cb-msg:%d:%d", chatID, cb.Message.ID)
		}
	}

	if msg := c.Message(); msg != nil && msg.ID != 0 {
		chatID := int64(0)
		if msg.Chat != nil {
			chatID = msg.Chat.ID
		}
		return fmt.Sprintf("msg:%d:%d", chatID, msg.ID)
	}

	return ""
}
