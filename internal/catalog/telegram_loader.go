package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/Proton-105/giftpanel-bot/internal/domain"
	"github.com/Proton-105/giftpanel-bot/internal/telegram"
	"github.com/Proton-105/giftpanel-bot/pkg/metrics"
)

const snapshotKey = "catalog:snapshot"

// SnapshotCache stores serialized catalog snapshots. Satisfied by the
// instrumented Redis client.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// TelegramLoader fetches available gifts from the Bot API, keeping a
// TTL-bounded snapshot in Redis so menu renders stay cheap.
type TelegramLoader struct {
	raw   telegram.RawCaller
	cache SnapshotCache
	ttl   time.Duration
	log   *slog.Logger
}

// NewTelegramLoader builds a loader over the provided raw API caller and cache.
func NewTelegramLoader(raw telegram.RawCaller, cache SnapshotCache, ttl time.Duration, log *slog.Logger) *TelegramLoader {
	if log == nil {
		log = slog.Default()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &TelegramLoader{
		raw:   raw,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// LoadGifts returns the current gift catalog, serving the cached snapshot when
// fresh and falling back to the Bot API otherwise.
func (l *TelegramLoader) LoadGifts(ctx context.Context) ([]domain.Gift, error) {
	if l.cache != nil {
		payload, err := l.cache.Get(ctx, snapshotKey)
		switch {
		case err == nil:
			var gifts []domain.Gift
			decodeErr := json.Unmarshal([]byte(payload), &gifts)
			if decodeErr == nil {
				return gifts, nil
			}
			l.log.Warn("discarding undecodable catalog snapshot", slog.Any("error", decodeErr))
		case errors.Is(err, redis.Nil):
			// cache miss, fetch below
		default:
			l.log.Warn("catalog cache read failed", slog.Any("error", err))
		}
	}

	return l.Refresh(ctx)
}

// Refresh fetches a fresh catalog from the Bot API and replaces the cached snapshot.
func (l *TelegramLoader) Refresh(ctx context.Context) ([]domain.Gift, error) {
	gifts, err := l.fetch()
	if err != nil {
		metrics.RecordCatalogRefresh("error")
		return nil, err
	}

	metrics.RecordCatalogRefresh("ok")
	metrics.SetCatalogSize(len(gifts))

	if l.cache != nil {
		payload, err := json.Marshal(gifts)
		if err != nil {
			return gifts, nil
		}
		if err := l.cache.Set(ctx, snapshotKey, string(payload), l.ttl); err != nil {
			l.log.Warn("catalog cache write failed", slog.Any("error", err))
		}
	}

	return gifts, nil
}

type apiGift struct {
	ID             string `json:"id"`
	StarCount      int64  `json:"star_count"`
	RemainingCount int64  `json:"remaining_count"`
	TotalCount     int64  `json:"total_count"`
}

type availableGiftsResponse struct {
	Result struct {
		Gifts []apiGift `json:"gifts"`
	} `json:"result"`
}

func (l *TelegramLoader) fetch() ([]domain.Gift, error) {
	data, err := l.raw.Raw("getAvailableGifts", map[string]string{})
	if err != nil {
		return nil, fmt.Errorf("get available gifts: %w", err)
	}

	var resp availableGiftsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode available gifts: %w", err)
	}

	gifts := make([]domain.Gift, 0, len(resp.Result.Gifts))
	for _, g := range resp.Result.Gifts {
		gifts = append(gifts, domain.Gift{
			ID:              g.ID,
			Stars:           g.StarCount,
			AvailableAmount: g.RemainingCount,
			Limited:         g.TotalCount > 0,
		})
	}

	return gifts, nil
}
