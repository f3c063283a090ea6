package keyboard_test

import (
	"testing"

	"github.com/Proton-105/giftpanel-bot/internal/bot/keyboard"
	"github.com/Proton-105/giftpanel-bot/internal/domain"
)

func TestGiftListKeyboard(t *testing.T) {
	b := keyboard.NewBuilder(nil)

	gifts := []domain.Gift{
		{ID: "123456789", Stars: 50},
		{ID: "5002", Stars: 150},
	}

	markup := b.GiftList(gifts, 1, 3)
	rows := markup.InlineKeyboard

	// Two gift rows, one pagination row, one back row.
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	if rows[0][0].Text != "Gift 6789 - 50★" {
		t.Errorf("gift button text = %q", rows[0][0].Text)
	}
	if rows[0][0].Data != "view_gift:123456789:1" {
		t.Errorf("gift button data = %q", rows[0][0].Data)
	}

	nav := rows[2]
	if len(nav) != 2 {
		t.Fatalf("nav buttons = %d, want 2", len(nav))
	}
	if nav[0].Data != "gifts_page:0" || nav[1].Data != "gifts_page:2" {
		t.Errorf("nav data = %q, %q", nav[0].Data, nav[1].Data)
	}

	if rows[3][0].Data != "back_to_menu" {
		t.Errorf("back button data = %q", rows[3][0].Data)
	}
}

func TestGiftListKeyboard_FirstOfSinglePage(t *testing.T) {
	b := keyboard.NewBuilder(nil)

	markup := b.GiftList([]domain.Gift{{ID: "5001", Stars: 50}}, 0, 1)
	rows := markup.InlineKeyboard

	// One gift row plus back row; the empty pagination row is skipped.
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}

func TestGiftDetailKeyboard(t *testing.T) {
	b := keyboard.NewBuilder(nil)

	markup := b.GiftDetail("5001", 2)
	rows := markup.InlineKeyboard

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][0].Data != "confirm_purchase:5001:2" {
		t.Errorf("confirm data = %q", rows[0][0].Data)
	}
	if rows[1][0].Data != "gifts_page:2" {
		t.Errorf("back data = %q, want return to origin page", rows[1][0].Data)
	}
}

func TestChoiceMenus(t *testing.T) {
	b := keyboard.NewBuilder(nil)

	markup := b.MaxPriceMenu()
	rows := markup.InlineKeyboard

	last := rows[len(rows)-1]
	if last[0].Data != "cancel" {
		t.Errorf("last row data = %q, want cancel", last[0].Data)
	}

	if rows[0][0].Data != "set_price:100" {
		t.Errorf("first choice data = %q", rows[0][0].Data)
	}

	markup = b.MaxCycleMenu()
	if markup.InlineKeyboard[0][0].Data != "set_cycle:1" {
		t.Errorf("cycle choice data = %q", markup.InlineKeyboard[0][0].Data)
	}
}
