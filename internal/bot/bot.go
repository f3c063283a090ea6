// Package bot assembles the Telegram-facing surface of the gift panel.
package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/giftpanel-bot/internal/access"
	"github.com/Proton-105/giftpanel-bot/internal/bot/handlers"
	"github.com/Proton-105/giftpanel-bot/internal/bot/keyboard"
	"github.com/Proton-105/giftpanel-bot/internal/catalog"
	apperrors "github.com/Proton-105/giftpanel-bot/internal/errors"
	"github.com/Proton-105/giftpanel-bot/internal/gift"
	"github.com/Proton-105/giftpanel-bot/internal/idempotency"
	"github.com/Proton-105/giftpanel-bot/internal/menu"
	"github.com/Proton-105/giftpanel-bot/internal/middleware"
	"github.com/Proton-105/giftpanel-bot/internal/render"
	"github.com/Proton-105/giftpanel-bot/internal/session"
	"github.com/Proton-105/giftpanel-bot/internal/settings"
	"github.com/Proton-105/giftpanel-bot/internal/telegram"
	"github.com/Proton-105/giftpanel-bot/pkg/config"
)

const (
	CommandStart = "/start"
	PanelTrigger = ".panel"
)

// Bot wraps telebot.Bot with the application wiring required to serve the panel.
type Bot struct {
	telebot    *telebot.Bot
	log        *slog.Logger
	cfg        config.Config
	router     *Router
	controller *menu.Controller
	loader     *catalog.TelegramLoader
	errHandler *apperrors.Handler
}

// New builds a telegram bot instance configured according to the application settings.
func New(
	cfg config.Config,
	log *slog.Logger,
	policy access.Policy,
	store settings.Store,
	snapshotCache catalog.SnapshotCache,
	deduper idempotency.Deduper,
	rateLimitMw *middleware.RateLimitMiddleware,
) (*Bot, error) {
	tbSettings := telebot.Settings{
		Token: cfg.Bot.Token,
	}

	if cfg.Bot.Mode == "webhook" {
		tbSettings.Poller = &telebot.Webhook{
			Listen: cfg.Server.Port,
		}
	} else {
		tbSettings.Poller = &telebot.LongPoller{
			Timeout: cfg.Bot.Timeout,
		}
	}

	tb, err := telebot.NewBot(tbSettings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	messenger := telegram.NewBotMessenger(tb, log)
	loader := catalog.NewTelegramLoader(messenger, snapshotCache, cfg.Catalog.CacheTTL, log)
	sender := gift.NewTelegramSender(messenger, log)
	kb := keyboard.NewBuilder(log)
	renderer := render.NewMarkdown()
	tracker := session.NewTracker()
	errHandler := apperrors.NewHandler(log, cfg.Sentry.Enabled)

	controller := menu.NewController(store, loader, sender, renderer, kb, tracker, messenger, log)

	router := NewRouter(log)

	b := &Bot{
		telebot:    tb,
		log:        log,
		cfg:        cfg,
		router:     router,
		controller: controller,
		loader:     loader,
		errHandler: errHandler,
	}

	b.setupRouter(policy, renderer, kb, deduper)

	if rateLimitMw != nil {
		b.telebot.Use(rateLimitMw.Handle)
	}

	b.telebot.Handle(telebot.OnText, b.router.Route)
	b.telebot.Handle(telebot.OnCallback, b.router.Route)

	return b, nil
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	b.log.Info("stopping telegram bot...")
	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

// CatalogLoader exposes the catalog loader for the background refresh job.
func (b *Bot) CatalogLoader() *catalog.TelegramLoader {
	return b.loader
}

func (b *Bot) setupRouter(policy access.Policy, renderer render.Renderer, kb *keyboard.Builder, deduper idempotency.Deduper) {
	b.router.Use(RecoveryMiddleware(b.log, b.errHandler))
	b.router.Use(middleware.Idempotency(deduper, b.cfg.Purchase.DedupeTTL, b.log))
	b.router.Use(ErrorHandlingMiddleware(b.errHandler, kb, b.log))
	b.router.Use(LoggingMiddleware(b.log))
	b.router.Use(middleware.Metrics)

	b.router.RegisterCommand(CommandStart, handlers.NewStartHandler(policy, b.controller, renderer, b.log))
	b.router.RegisterText(PanelTrigger, handlers.NewPanelTextHandler(policy, b.controller, b.log))

	for action, handler := range handlers.NewCallbacks(policy, b.controller, b.log).Handlers() {
		b.router.RegisterCallback(action, handler)
	}
}
