package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *MetricsClient {
	t.Helper()

	mr := miniredis.RunT(t)
	inner := &Client{goredis.NewClient(&goredis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { _ = inner.Close() })

	return NewMetricsClient(inner)
}

func TestMetricsClient_RoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "panel:key", "value", time.Minute))

	value, err := client.Get(ctx, "panel:key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	require.NoError(t, client.Delete(ctx, "panel:key"))

	_, err = client.Get(ctx, "panel:key")
	assert.ErrorIs(t, err, goredis.Nil, "deleted keys read as a miss")
}
