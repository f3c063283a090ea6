// Package health reports whether the panel's backing services are usable.
package health

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gopkg.in/telebot.v3"
)

// StatusOK is the status string reported for a passing check.
const StatusOK = "OK"

// Checkable is a dependency that can report whether it is usable.
type Checkable interface {
	HealthCheck(ctx context.Context) error
}

// Checker runs the registered dependency checks and collects their statuses.
type Checker struct {
	log    *slog.Logger
	checks map[string]Checkable
}

// NewChecker returns an empty Checker.
func NewChecker(log *slog.Logger) *Checker {
	if log == nil {
		log = slog.Default()
	}

	return &Checker{
		log:    log,
		checks: make(map[string]Checkable),
	}
}

// AddCheck registers a dependency under name. Later registrations with the
// same name replace earlier ones.
func (c *Checker) AddCheck(name string, check Checkable) {
	if name == "" {
		return
	}
	c.checks[name] = check
}

// Check runs every registered check and maps each name to StatusOK or the
// failure message. A nil registration is reported, not skipped.
func (c *Checker) Check(ctx context.Context) map[string]string {
	statuses := make(map[string]string, len(c.checks))

	for name, check := range c.checks {
		if check == nil {
			statuses[name] = "no check configured"
			continue
		}

		err := check.HealthCheck(ctx)
		if err != nil {
			statuses[name] = err.Error()
			c.log.Error("health check failed", slog.String("component", name), slog.Any("error", err))
			continue
		}

		statuses[name] = StatusOK
	}

	return statuses
}

// DBChecker pings the settings database.
type DBChecker struct {
	db *sql.DB
}

func NewDBChecker(db *sql.DB) *DBChecker {
	return &DBChecker{db: db}
}

func (c *DBChecker) HealthCheck(ctx context.Context) error {
	if c == nil || c.db == nil {
		return sql.ErrConnDone
	}
	return c.db.PingContext(ctx)
}

// Pinger is the slice of redis.Client the checker needs.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisChecker pings the cache and dedupe backend.
type RedisChecker struct {
	pinger Pinger
}

func NewRedisChecker(pinger Pinger) *RedisChecker {
	return &RedisChecker{pinger: pinger}
}

func (c *RedisChecker) HealthCheck(ctx context.Context) error {
	if c == nil || c.pinger == nil {
		return redis.ErrClosed
	}
	return c.pinger.Ping(ctx).Err()
}

// TelegramChecker confirms the bot session identified itself to the Bot API.
type TelegramChecker struct {
	bot *telebot.Bot
}

func NewTelegramChecker(bot *telebot.Bot) *TelegramChecker {
	return &TelegramChecker{bot: bot}
}

func (c *TelegramChecker) HealthCheck(_ context.Context) error {
	if c == nil || c.bot == nil || c.bot.Me == nil {
		return errors.New("telegram bot is not initialized")
	}
	return nil
}
