package gift_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/giftpanel-bot/internal/gift"
)

type fakeRawCaller struct {
	method   string
	payload  interface{}
	response []byte
	err      error
}

func (f *fakeRawCaller) Raw(method string, payload interface{}) ([]byte, error) {
	f.method = method
	f.payload = payload
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTelegramSender_Delivered(t *testing.T) {
	raw := &fakeRawCaller{response: []byte(`{"ok":true,"result":true}`)}
	sender := gift.NewTelegramSender(raw, testLogger())

	sent, err := sender.SendGift(context.Background(), 42, "5001")
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, "sendGift", raw.method)

	payload, ok := raw.payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(42), payload["user_id"])
	assert.Equal(t, "5001", payload["gift_id"])
}

func TestTelegramSender_Rejected(t *testing.T) {
	raw := &fakeRawCaller{response: []byte(`{"ok":true,"result":false}`)}
	sender := gift.NewTelegramSender(raw, testLogger())

	sent, err := sender.SendGift(context.Background(), 42, "5001")
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestTelegramSender_CallError(t *testing.T) {
	raw := &fakeRawCaller{err: errors.New("boom")}
	sender := gift.NewTelegramSender(raw, testLogger())

	sent, err := sender.SendGift(context.Background(), 42, "5001")
	assert.Error(t, err)
	assert.False(t, sent)
}
