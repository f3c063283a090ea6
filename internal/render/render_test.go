package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Proton-105/giftpanel-bot/internal/domain"
	"github.com/Proton-105/giftpanel-bot/internal/render"
)

func TestMainMenu(t *testing.T) {
	r := render.NewMarkdown()

	text := r.MainMenu(1500, true, false)
	assert.Contains(t, text, "`1500` ★")
	assert.Contains(t, text, "*AutoBuy:* On")
	assert.Contains(t, text, "*Limited Filter:* Off")
}

func TestGiftList_PageIsOneBased(t *testing.T) {
	r := render.NewMarkdown()

	text := r.GiftList(7, 0, 3, false, 10000, 100)
	assert.Contains(t, text, "`1/3`")

	text = r.GiftList(7, 2, 3, false, 10000, 100)
	assert.Contains(t, text, "`3/3`")
}

func TestGiftDetail(t *testing.T) {
	r := render.NewMarkdown()

	gift := domain.Gift{ID: "123456789", Stars: 500, AvailableAmount: 3, Limited: true}
	text := r.GiftDetail(gift, 1000)

	assert.Contains(t, text, "Gift 6789", "detail uses the short id")
	assert.Contains(t, text, "`500` ★")
	assert.Contains(t, text, "*Limited:* Yes")
}

func TestPurchaseSuccess(t *testing.T) {
	r := render.NewMarkdown()

	gift := domain.Gift{ID: "5001", Stars: 60}
	text := r.PurchaseSuccess(gift, 40)

	assert.Contains(t, text, "*Spent:* `60` ★")
	assert.Contains(t, text, "*New Balance:* `40` ★")
}

func TestAccessDenied(t *testing.T) {
	r := render.NewMarkdown()

	text := r.AccessDenied(99, "intruder")
	assert.Contains(t, text, "`99`")
	assert.Contains(t, text, "@intruder")

	text = r.AccessDenied(99, "")
	assert.Contains(t, text, "@No Username")
}
