// Package handlers adapts telebot updates into panel controller calls.
package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/giftpanel-bot/internal/access"
	"github.com/Proton-105/giftpanel-bot/internal/menu"
	"github.com/Proton-105/giftpanel-bot/internal/render"
)

// AccessDeniedAlert is shown on callbacks from users outside the allow-list.
const AccessDeniedAlert = "❌ Access Denied"

func commandRequest(c telebot.Context) menu.Request {
	return menu.Request{
		UserID: c.Sender().ID,
		ChatID: c.Chat().ID,
	}
}

// NewStartHandler serves /start. Unauthorized users get a visible denial
// carrying their id so they can request access.
func NewStartHandler(policy access.Policy, ctrl *menu.Controller, renderer render.Renderer, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil {
			log.Warn("start handler invoked without sender")
			return nil
		}

		sender := c.Sender()
		if !policy.Authorized(sender.ID) {
			log.Info("unauthorized start attempt",
				slog.Int64("user_id", sender.ID), slog.String("username", sender.Username))
			return c.Send(renderer.AccessDenied(sender.ID, sender.Username), telebot.ModeMarkdown)
		}

		return ctrl.ShowMainMenu(context.Background(), commandRequest(c))
	}
}

// NewPanelTextHandler serves the exact ".panel" text trigger. Unauthorized
// users are ignored without any response.
func NewPanelTextHandler(policy access.Policy, ctrl *menu.Controller, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil {
			return nil
		}

		if !policy.Authorized(c.Sender().ID) {
			log.Info("unauthorized panel attempt silently ignored",
				slog.Int64("user_id", c.Sender().ID))
			return nil
		}

		return ctrl.ShowMainMenu(context.Background(), commandRequest(c))
	}
}
