package menu_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/giftpanel-bot/internal/bot/keyboard"
	"github.com/Proton-105/giftpanel-bot/internal/domain"
	"github.com/Proton-105/giftpanel-bot/internal/menu"
	"github.com/Proton-105/giftpanel-bot/internal/render"
	"github.com/Proton-105/giftpanel-bot/internal/session"
	"github.com/Proton-105/giftpanel-bot/internal/telegram"
)

type fakeStore struct {
	settings *domain.UserSettings
	writes   []string
}

func (f *fakeStore) GetUserData(_ context.Context, userID int64) (*domain.UserSettings, error) {
	if f.settings == nil {
		return domain.DefaultUserSettings(userID), nil
	}
	copied := *f.settings
	return &copied, nil
}

func (f *fakeStore) UpdateSetting(_ context.Context, _ int64, key string, value int64) error {
	f.writes = append(f.writes, key)
	if key == domain.SettingStarsBalance && f.settings != nil {
		f.settings.StarsBalance = value
	}
	return nil
}

func (f *fakeStore) ToggleAutobuy(_ context.Context, _ int64) (bool, error) {
	f.settings.AutobuyEnabled = !f.settings.AutobuyEnabled
	return f.settings.AutobuyEnabled, nil
}

func (f *fakeStore) ToggleFilter(_ context.Context, _ int64) (bool, error) {
	f.settings.FilterEnabled = !f.settings.FilterEnabled
	return f.settings.FilterEnabled, nil
}

// deductingStore adds atomic deduction on top of fakeStore. When deducted is
// false the stored balance is replaced with racedBalance, simulating a
// concurrent spend between the funds check and the deduction.
type deductingStore struct {
	*fakeStore
	deducted     bool
	racedBalance int64
}

func (d *deductingStore) DeductBalance(_ context.Context, _ int64, amount int64) (bool, error) {
	if d.deducted {
		d.settings.StarsBalance -= amount
		return true, nil
	}
	d.settings.StarsBalance = d.racedBalance
	return false, nil
}

type fakeLoader struct {
	gifts []domain.Gift
	err   error
}

func (f *fakeLoader) LoadGifts(_ context.Context) ([]domain.Gift, error) {
	return f.gifts, f.err
}

type fakeSender struct {
	calls  int
	result bool
	err    error
}

func (f *fakeSender) SendGift(_ context.Context, _ int64, _ string) (bool, error) {
	f.calls++
	return f.result, f.err
}

type renderedMessage struct {
	text   string
	markup *telebot.ReplyMarkup
}

type fakeMessenger struct {
	nextID  int
	sends   []renderedMessage
	edits   []renderedMessage
	deletes []int

	editOutcome telegram.EditOutcome
}

func (f *fakeMessenger) Send(_ context.Context, _ int64, text string, markup *telebot.ReplyMarkup) (int, error) {
	f.nextID++
	f.sends = append(f.sends, renderedMessage{text: text, markup: markup})
	return f.nextID, nil
}

func (f *fakeMessenger) Edit(_ context.Context, _ int64, _ int, text string, markup *telebot.ReplyMarkup) (telegram.EditOutcome, error) {
	f.edits = append(f.edits, renderedMessage{text: text, markup: markup})
	return f.editOutcome, nil
}

func (f *fakeMessenger) Delete(_ context.Context, _ int64, messageID int) error {
	f.deletes = append(f.deletes, messageID)
	return nil
}

func (f *fakeMessenger) lastEdit(t *testing.T) renderedMessage {
	t.Helper()
	require.NotEmpty(t, f.edits)
	return f.edits[len(f.edits)-1]
}

type fixture struct {
	store     *fakeStore
	loader    *fakeLoader
	sender    *fakeSender
	messenger *fakeMessenger
	tracker   *session.Tracker
	ctrl      *menu.Controller
}

func newFixture(balance int64, gifts []domain.Gift) *fixture {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	us := domain.DefaultUserSettings(42)
	us.StarsBalance = balance

	f := &fixture{
		store:     &fakeStore{settings: us},
		loader:    &fakeLoader{gifts: gifts},
		sender:    &fakeSender{result: true},
		messenger: &fakeMessenger{},
		tracker:   session.NewTracker(),
	}

	f.ctrl = menu.NewController(
		f.store, f.loader, f.sender,
		render.NewMarkdown(), keyboard.NewBuilder(log),
		f.tracker, f.messenger, log,
	)

	return f
}

func callbackReq() menu.Request {
	return menu.Request{UserID: 42, ChatID: 42, MessageID: 7, FromCallback: true}
}

func commandReq() menu.Request {
	return menu.Request{UserID: 42, ChatID: 42}
}

func markupData(markup *telebot.ReplyMarkup) []string {
	if markup == nil {
		return nil
	}
	var data []string
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			data = append(data, btn.Data)
		}
	}
	return data
}

func TestConfirmPurchase_InsufficientStars(t *testing.T) {
	f := newFixture(100, []domain.Gift{{ID: "5001", Stars: 150}})

	err := f.ctrl.ConfirmPurchase(context.Background(), callbackReq(), "5001")
	require.NoError(t, err)

	assert.Empty(t, f.store.writes, "no deduction on insufficient funds")
	assert.Equal(t, 0, f.sender.calls, "executor must not run")
	assert.Contains(t, f.messenger.lastEdit(t).text, "Insufficient Stars")
}

func TestConfirmPurchase_Success(t *testing.T) {
	f := newFixture(100, []domain.Gift{{ID: "5001", Stars: 60}})

	err := f.ctrl.ConfirmPurchase(context.Background(), callbackReq(), "5001")
	require.NoError(t, err)

	assert.Equal(t, 1, f.sender.calls)
	assert.Equal(t, []string{domain.SettingStarsBalance}, f.store.writes, "exactly one settings write")
	assert.Equal(t, int64(40), f.store.settings.StarsBalance)

	edit := f.messenger.lastEdit(t)
	assert.Contains(t, edit.text, "`40`")
	assert.Nil(t, edit.markup, "success screen has no navigation buttons")
}

func TestConfirmPurchase_GiftMissing(t *testing.T) {
	f := newFixture(100, []domain.Gift{{ID: "5001", Stars: 60}})

	err := f.ctrl.ConfirmPurchase(context.Background(), callbackReq(), "absent")
	require.NoError(t, err)

	assert.Empty(t, f.store.writes, "missing gift writes nothing")
	assert.Equal(t, 0, f.sender.calls, "missing gift never reaches the executor")
	assert.Contains(t, f.messenger.lastEdit(t).text, "Gift Not Found")
}

func TestConfirmPurchase_ExecutorFailure(t *testing.T) {
	f := newFixture(100, []domain.Gift{{ID: "5001", Stars: 60}})
	f.sender.result = false

	err := f.ctrl.ConfirmPurchase(context.Background(), callbackReq(), "5001")
	require.NoError(t, err)

	assert.Empty(t, f.store.writes, "no deduction when delivery fails")

	edit := f.messenger.lastEdit(t)
	assert.Contains(t, edit.text, "Purchase Failed")
	assert.Contains(t, markupData(edit.markup), "back_to_menu")
}

func TestConfirmPurchase_ExecutorError(t *testing.T) {
	f := newFixture(100, []domain.Gift{{ID: "5001", Stars: 60}})
	f.sender.err = errors.New("network down")
	f.sender.result = false

	err := f.ctrl.ConfirmPurchase(context.Background(), callbackReq(), "5001")
	require.NoError(t, err)

	assert.Empty(t, f.store.writes)
	assert.Contains(t, f.messenger.lastEdit(t).text, "Purchase Failed")
}

func TestConfirmPurchase_AtomicDeduction(t *testing.T) {
	f := newFixture(100, []domain.Gift{{ID: "5001", Stars: 60}})
	store := &deductingStore{fakeStore: f.store, deducted: true}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.ctrl = menu.NewController(
		store, f.loader, f.sender,
		render.NewMarkdown(), keyboard.NewBuilder(log),
		f.tracker, f.messenger, log,
	)

	err := f.ctrl.ConfirmPurchase(context.Background(), callbackReq(), "5001")
	require.NoError(t, err)

	assert.Empty(t, f.store.writes, "atomic path bypasses UpdateSetting")
	assert.Equal(t, int64(40), f.store.settings.StarsBalance)
	assert.Contains(t, f.messenger.lastEdit(t).text, "`40`")
}

func TestConfirmPurchase_SkippedDeductionShowsStoredBalance(t *testing.T) {
	f := newFixture(100, []domain.Gift{{ID: "5001", Stars: 60}})
	store := &deductingStore{fakeStore: f.store, racedBalance: 10}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.ctrl = menu.NewController(
		store, f.loader, f.sender,
		render.NewMarkdown(), keyboard.NewBuilder(log),
		f.tracker, f.messenger, log,
	)

	err := f.ctrl.ConfirmPurchase(context.Background(), callbackReq(), "5001")
	require.NoError(t, err)

	// The success screen must show the re-read balance of 10, not the
	// locally computed 40.
	assert.Empty(t, f.store.writes, "skipped deduction writes nothing")
	assert.Contains(t, f.messenger.lastEdit(t).text, "`10`")
}

func TestShowGiftDetail_BackReturnsToOriginPage(t *testing.T) {
	gifts := []domain.Gift{
		{ID: "g1", Stars: 10}, {ID: "g2", Stars: 20}, {ID: "g3", Stars: 30},
		{ID: "g4", Stars: 40}, {ID: "g5", Stars: 50},
	}
	f := newFixture(100, gifts)

	err := f.ctrl.ShowGiftDetail(context.Background(), callbackReq(), "g4", 1)
	require.NoError(t, err)

	data := markupData(f.messenger.lastEdit(t).markup)
	assert.Contains(t, data, "confirm_purchase:g4:1")
	assert.Contains(t, data, "gifts_page:1", "back button returns to the origin page")
}

func TestShowGifts_ClampsOutOfRangePage(t *testing.T) {
	gifts := []domain.Gift{
		{ID: "g1", Stars: 10}, {ID: "g2", Stars: 20}, {ID: "g3", Stars: 30},
		{ID: "g4", Stars: 40},
	}
	f := newFixture(100, gifts)

	err := f.ctrl.ShowGifts(context.Background(), callbackReq(), 99)
	require.NoError(t, err)

	// Two pages total; page 99 lands on the last one.
	assert.Contains(t, f.messenger.lastEdit(t).text, "`2/2`")
}

func TestShowGifts_EmptyCatalogAfterFilter(t *testing.T) {
	f := newFixture(100, []domain.Gift{{ID: "g1", Stars: 50000}})

	err := f.ctrl.ShowGifts(context.Background(), callbackReq(), 0)
	require.NoError(t, err)

	assert.Contains(t, f.messenger.lastEdit(t).text, "No Gifts Found")
}

func TestShowMainMenu_CommandReplacesTrackedMessage(t *testing.T) {
	f := newFixture(100, nil)

	ctx := context.Background()

	require.NoError(t, f.ctrl.ShowMainMenu(ctx, commandReq()))
	require.NoError(t, f.ctrl.ShowMainMenu(ctx, commandReq()))

	assert.Len(t, f.messenger.sends, 2)
	assert.Equal(t, []int{1}, f.messenger.deletes, "second send deletes the first panel message")

	id, ok := f.tracker.TakeAndClear(42)
	require.True(t, ok)
	assert.Equal(t, 2, id, "tracker holds only the newest id")
}

func TestShowMainMenu_CallbackEditsInPlace(t *testing.T) {
	f := newFixture(100, nil)

	require.NoError(t, f.ctrl.ShowMainMenu(context.Background(), callbackReq()))

	assert.Empty(t, f.messenger.sends)
	assert.Len(t, f.messenger.edits, 1)

	_, ok := f.tracker.TakeAndClear(42)
	assert.False(t, ok, "edits never touch the tracker")
}

func TestShowMainMenu_UnchangedEditIsSwallowed(t *testing.T) {
	f := newFixture(100, nil)
	f.messenger.editOutcome = telegram.EditUnchanged

	err := f.ctrl.ShowMainMenu(context.Background(), callbackReq())
	assert.NoError(t, err, "identical content is a no-op, not an error")
}

func TestToggleAutobuy(t *testing.T) {
	f := newFixture(100, nil)

	enabled, err := f.ctrl.ToggleAutobuy(context.Background(), callbackReq())
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Contains(t, f.messenger.lastEdit(t).text, "AutoBuy Enabled")

	enabled, err = f.ctrl.ToggleAutobuy(context.Background(), callbackReq())
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestSetMaxPrice(t *testing.T) {
	f := newFixture(100, nil)

	err := f.ctrl.SetMaxPrice(context.Background(), callbackReq(), 500)
	require.NoError(t, err)

	assert.Equal(t, []string{domain.SettingMaxPriceLimit}, f.store.writes)
	assert.Contains(t, f.messenger.lastEdit(t).text, "`500`")
}

func TestSetCycle_RejectsNonPositive(t *testing.T) {
	f := newFixture(100, nil)

	err := f.ctrl.SetCycle(context.Background(), callbackReq(), 0)
	require.Error(t, err)
	assert.Empty(t, f.store.writes)
}

func TestShowBalance(t *testing.T) {
	f := newFixture(1234, nil)

	require.NoError(t, f.ctrl.ShowBalance(context.Background(), callbackReq()))

	edit := f.messenger.lastEdit(t)
	assert.Contains(t, edit.text, "`1234`")
	assert.True(t, strings.Contains(edit.text, "Max Per Cycle"))
	assert.Contains(t, markupData(edit.markup), "back_to_menu")
}
