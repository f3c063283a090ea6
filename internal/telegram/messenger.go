// Package telegram wraps the bot framework's messaging calls behind typed outcomes.
package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"
)

// EditOutcome classifies the result of an in-place message edit.
type EditOutcome int

const (
	EditApplied EditOutcome = iota
	// EditUnchanged means the platform rejected the edit because the message
	// content was already identical. Callers treat this as a no-op.
	EditUnchanged
	EditFailed
)

// String returns the metrics label for the outcome.
func (o EditOutcome) String() string {
	switch o {
	case EditApplied:
		return "applied"
	case EditUnchanged:
		return "unchanged"
	default:
		return "failed"
	}
}

// Messenger exposes the subset of messaging platform operations the menu flow needs.
type Messenger interface {
	Send(ctx context.Context, chatID int64, text string, markup *telebot.ReplyMarkup) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, text string, markup *telebot.ReplyMarkup) (EditOutcome, error)
	Delete(ctx context.Context, chatID int64, messageID int) error
}

// RawCaller issues raw Bot API calls. Satisfied by *telebot.Bot.
type RawCaller interface {
	Raw(method string, payload interface{}) ([]byte, error)
}

// BotMessenger implements Messenger on top of a telebot instance.
type BotMessenger struct {
	bot *telebot.Bot
	log *slog.Logger
}

// NewBotMessenger wraps the provided telebot instance.
func NewBotMessenger(bot *telebot.Bot, log *slog.Logger) *BotMessenger {
	if log == nil {
		log = slog.Default()
	}

	return &BotMessenger{bot: bot, log: log}
}

// Send delivers a new message and returns its platform identifier.
func (m *BotMessenger) Send(ctx context.Context, chatID int64, text string, markup *telebot.ReplyMarkup) (int, error) {
	opts := sendOptions(markup)

	msg, err := m.bot.Send(telebot.ChatID(chatID), text, opts...)
	if err != nil {
		return 0, err
	}

	return msg.ID, nil
}

// Edit replaces the content of an existing message, classifying the platform's
// "message is not modified" rejection as EditUnchanged. The substring check
// lives here and nowhere else.
func (m *BotMessenger) Edit(ctx context.Context, chatID int64, messageID int, text string, markup *telebot.ReplyMarkup) (EditOutcome, error) {
	target := storedMessage(chatID, messageID)
	opts := sendOptions(markup)

	if _, err := m.bot.Edit(target, text, opts...); err != nil {
		if isNotModified(err) {
			m.log.Debug("edit skipped, content unchanged",
				slog.Int64("chat_id", chatID), slog.Int("message_id", messageID))
			return EditUnchanged, nil
		}
		return EditFailed, err
	}

	return EditApplied, nil
}

// Delete removes a message. Callers decide whether failures matter.
func (m *BotMessenger) Delete(ctx context.Context, chatID int64, messageID int) error {
	return m.bot.Delete(storedMessage(chatID, messageID))
}

// Raw forwards a raw Bot API call to the underlying bot.
func (m *BotMessenger) Raw(method string, payload interface{}) ([]byte, error) {
	return m.bot.Raw(method, payload)
}

func sendOptions(markup *telebot.ReplyMarkup) []interface{} {
	opts := []interface{}{telebot.ModeMarkdown}
	if markup != nil {
		opts = append(opts, markup)
	}
	return opts
}

func storedMessage(chatID int64, messageID int) telebot.Editable {
	return &telebot.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    chatID,
	}
}

func isNotModified(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "message is not modified")
}
