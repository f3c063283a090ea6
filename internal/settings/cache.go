package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/Proton-105/giftpanel-bot/internal/domain"
)

// Cache is the key-value surface the caching store writes through. Satisfied
// by the instrumented Redis client.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CachedStore is a read-through cache in front of another Store. Every write
// invalidates the cached row so subsequent reads see the database state.
type CachedStore struct {
	inner Store
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewCachedStore wraps inner with a Redis-backed read cache.
func NewCachedStore(inner Store, cache Cache, ttl time.Duration, log *slog.Logger) *CachedStore {
	if log == nil {
		log = slog.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CachedStore{inner: inner, cache: cache, ttl: ttl, log: log}
}

func cacheKey(userID int64) string {
	return fmt.Sprintf("settings:%d", userID)
}

func (s *CachedStore) GetUserData(ctx context.Context, userID int64) (*domain.UserSettings, error) {
	key := cacheKey(userID)

	payload, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		us := &domain.UserSettings{}
		if decodeErr := json.Unmarshal([]byte(payload), us); decodeErr == nil {
			return us, nil
		}
		s.log.Warn("discarding undecodable settings cache entry", slog.Int64("user_id", userID))
	case errors.Is(err, redis.Nil):
		// cache miss, read below
	default:
		s.log.Warn("settings cache read failed", slog.Any("error", err))
	}

	us, err := s.inner.GetUserData(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(us); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
			s.log.Warn("settings cache write failed", slog.Any("error", err))
		}
	}

	return us, nil
}

func (s *CachedStore) UpdateSetting(ctx context.Context, userID int64, key string, value int64) error {
	if err := s.inner.UpdateSetting(ctx, userID, key, value); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *CachedStore) ToggleAutobuy(ctx context.Context, userID int64) (bool, error) {
	enabled, err := s.inner.ToggleAutobuy(ctx, userID)
	if err != nil {
		return false, err
	}

	s.invalidate(ctx, userID)
	return enabled, nil
}

func (s *CachedStore) ToggleFilter(ctx context.Context, userID int64) (bool, error) {
	enabled, err := s.inner.ToggleFilter(ctx, userID)
	if err != nil {
		return false, err
	}

	s.invalidate(ctx, userID)
	return enabled, nil
}

// DeductBalance delegates to the inner store when it supports atomic
// deduction. Callers must check support through AsBalanceDeductor.
func (s *CachedStore) DeductBalance(ctx context.Context, userID int64, amount int64) (bool, error) {
	deductor, ok := s.inner.(BalanceDeductor)
	if !ok {
		return false, errors.New("inner store does not support atomic deduction")
	}

	deducted, err := deductor.DeductBalance(ctx, userID, amount)
	if err != nil {
		return false, err
	}

	if deducted {
		s.invalidate(ctx, userID)
	}

	return deducted, nil
}

// AsBalanceDeductor reports whether store supports atomic balance deduction,
// unwrapping the cache layer if present.
func AsBalanceDeductor(store Store) (BalanceDeductor, bool) {
	if cached, ok := store.(*CachedStore); ok {
		if _, ok := cached.inner.(BalanceDeductor); ok {
			return cached, true
		}
		return nil, false
	}

	deductor, ok := store.(BalanceDeductor)
	return deductor, ok
}

func (s *CachedStore) invalidate(ctx context.Context, userID int64) {
	if err := s.cache.Delete(ctx, cacheKey(userID)); err != nil {
		s.log.Warn("settings cache invalidation failed",
			slog.Int64("user_id", userID), slog.Any("error", err))
	}
}
