package idempotency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDeduper implements Deduper with a SETNX per processed key.
type RedisDeduper struct {
	client *redis.Client
	log    *slog.Logger
}

var _ Deduper = (*RedisDeduper)(nil)

// NewRedisDeduper builds a Redis-backed deduper.
func NewRedisDeduper(client *redis.Client, log *slog.Logger) *RedisDeduper {
	if log == nil {
		log = slog.Default()
	}

	return &RedisDeduper{client: client, log: log}
}

// MarkProcessed claims the key atomically. The first delivery claims it and
// proceeds; any later delivery within the TTL is reported as a duplicate.
func (d *RedisDeduper) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claimed, err := d.client.SetNX(ctx, recordKey(key), 1, ttl).Result()
	if err != nil {
		d.log.Error("failed to record processed update", slog.String("key", key), slog.Any("error", err))
		return false, err
	}

	return !claimed, nil
}

func recordKey(key string) string {
	return fmt.Sprintf("dedupe:%s", key)
}
