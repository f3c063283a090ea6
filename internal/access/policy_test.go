package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Proton-105/giftpanel-bot/internal/access"
)

func TestStaticAllowList(t *testing.T) {
	policy := access.NewStaticAllowList([]int64{100, 200})

	assert.True(t, policy.Authorized(100))
	assert.True(t, policy.Authorized(200))
	assert.False(t, policy.Authorized(300))
	assert.False(t, policy.Authorized(0))
}

func TestStaticAllowList_Replace(t *testing.T) {
	policy := access.NewStaticAllowList([]int64{100})

	policy.Replace([]int64{300})

	assert.False(t, policy.Authorized(100))
	assert.True(t, policy.Authorized(300))
}

func TestStaticAllowList_Empty(t *testing.T) {
	policy := access.NewStaticAllowList(nil)

	assert.False(t, policy.Authorized(1))
}
