package settings_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/giftpanel-bot/internal/domain"
	"github.com/Proton-105/giftpanel-bot/internal/settings"
	pkgredis "github.com/Proton-105/giftpanel-bot/pkg/redis"
)

type fakeStore struct {
	getCalls int
	data     map[int64]*domain.UserSettings

	autobuy bool
	filter  bool

	deductCalls  int
	deductResult bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[int64]*domain.UserSettings{}}
}

func (f *fakeStore) GetUserData(_ context.Context, userID int64) (*domain.UserSettings, error) {
	f.getCalls++
	if us, ok := f.data[userID]; ok {
		copied := *us
		return &copied, nil
	}
	return domain.DefaultUserSettings(userID), nil
}

func (f *fakeStore) UpdateSetting(_ context.Context, userID int64, key string, value int64) error {
	us, ok := f.data[userID]
	if !ok {
		us = domain.DefaultUserSettings(userID)
		f.data[userID] = us
	}
	switch key {
	case domain.SettingStarsBalance:
		us.StarsBalance = value
	case domain.SettingMinPriceLimit:
		us.MinPriceLimit = value
	case domain.SettingMaxPriceLimit:
		us.MaxPriceLimit = value
	case domain.SettingMaxBuyPerCycle:
		us.MaxBuyPerCycle = int(value)
	}
	return nil
}

func (f *fakeStore) ToggleAutobuy(_ context.Context, _ int64) (bool, error) {
	f.autobuy = !f.autobuy
	return f.autobuy, nil
}

func (f *fakeStore) ToggleFilter(_ context.Context, _ int64) (bool, error) {
	f.filter = !f.filter
	return f.filter, nil
}

func (f *fakeStore) DeductBalance(_ context.Context, _ int64, _ int64) (bool, error) {
	f.deductCalls++
	return f.deductResult, nil
}

func testCache(t *testing.T) settings.Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := pkgredis.New(context.Background(), pkgredis.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return pkgredis.NewMetricsClient(client)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachedStore_ReadThrough(t *testing.T) {
	inner := newFakeStore()
	store := settings.NewCachedStore(inner, testCache(t), time.Minute, testLogger())

	ctx := context.Background()

	first, err := store.GetUserData(ctx, 42)
	require.NoError(t, err)

	second, err := store.GetUserData(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.getCalls, "second read must hit the cache")
}

func TestCachedStore_WriteInvalidates(t *testing.T) {
	inner := newFakeStore()
	store := settings.NewCachedStore(inner, testCache(t), time.Minute, testLogger())

	ctx := context.Background()

	_, err := store.GetUserData(ctx, 42)
	require.NoError(t, err)

	require.NoError(t, store.UpdateSetting(ctx, 42, domain.SettingMaxPriceLimit, 500))

	us, err := store.GetUserData(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(500), us.MaxPriceLimit)
	assert.Equal(t, 2, inner.getCalls, "write must drop the cached row")
}

func TestCachedStore_TogglesInvalidate(t *testing.T) {
	inner := newFakeStore()
	store := settings.NewCachedStore(inner, testCache(t), time.Minute, testLogger())

	ctx := context.Background()

	_, err := store.GetUserData(ctx, 42)
	require.NoError(t, err)

	enabled, err := store.ToggleAutobuy(ctx, 42)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = store.ToggleFilter(ctx, 42)
	require.NoError(t, err)
	assert.True(t, enabled)

	_, err = store.GetUserData(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.getCalls)
}

func TestCachedStore_DeductBalance(t *testing.T) {
	inner := newFakeStore()
	inner.deductResult = true
	store := settings.NewCachedStore(inner, testCache(t), time.Minute, testLogger())

	deductor, ok := settings.AsBalanceDeductor(store)
	require.True(t, ok)

	deducted, err := deductor.DeductBalance(context.Background(), 42, 100)
	require.NoError(t, err)
	assert.True(t, deducted)
	assert.Equal(t, 1, inner.deductCalls)
}

type noDeductStore struct{ settings.Store }

func TestAsBalanceDeductor_InnerWithoutSupport(t *testing.T) {
	inner := noDeductStore{Store: newFakeStore()}
	store := settings.NewCachedStore(inner, testCache(t), time.Minute, testLogger())

	_, ok := settings.AsBalanceDeductor(store)
	assert.False(t, ok)
}
