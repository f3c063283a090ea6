package idempotency

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDeduper(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	deduper := NewRedisDeduper(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	duplicate, err := deduper.MarkProcessed(ctx, "cb:abc", time.Hour)
	require.NoError(t, err)
	assert.False(t, duplicate, "first delivery is not a duplicate")

	duplicate, err = deduper.MarkProcessed(ctx, "cb:abc", time.Hour)
	require.NoError(t, err)
	assert.True(t, duplicate, "second delivery of the same key is a duplicate")

	duplicate, err = deduper.MarkProcessed(ctx, "cb:other", time.Hour)
	require.NoError(t, err)
	assert.False(t, duplicate, "different keys are independent")

	mr.FastForward(2 * time.Hour)

	duplicate, err = deduper.MarkProcessed(ctx, "cb:abc", time.Hour)
	require.NoError(t, err)
	assert.False(t, duplicate, "expired keys can be processed again")
}
