package middleware

import (
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/giftpanel-bot/internal/bot/handlers"
	"github.com/Proton-105/giftpanel-bot/internal/bot/keyboard"
	"github.com/Proton-105/giftpanel-bot/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting
// them to Prometheus. Callback arguments are stripped so the action label
// stays low-cardinality.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordUpdate(extractAction(c), status, time.Since(start))

		return err
	}
}

func extractAction(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	if cb := c.Callback(); cb != nil && cb.Data != "" {
		data := strings.TrimPrefix(cb.Data, "\f")
		if action, _, err := keyboard.DecodeCallback(data); err == nil {
			return action
		}
		return "unknown"
	}

	if text := c.Text(); text != "" {
		return text
	}

	return "unknown"
}
