// Package settings persists per-user preferences and the stars balance.
package settings

import (
	"context"

	"github.com/Proton-105/giftpanel-bot/internal/domain"
)

// Store is the persistence surface used by the menu controller. Reads for an
// unknown user return defaults without creating a row; the first write creates it.
type Store interface {
	GetUserData(ctx context.Context, userID int64) (*domain.UserSettings, error)
	UpdateSetting(ctx context.Context, userID int64, key string, value int64) error
	ToggleAutobuy(ctx context.Context, userID int64) (bool, error)
	ToggleFilter(ctx context.Context, userID int64) (bool, error)
}

// BalanceDeductor is an optional Store extension. When the store implements it,
// purchases deduct atomically instead of read-modify-write.
type BalanceDeductor interface {
	// DeductBalance subtracts amount from the user's balance only if the
	// balance covers it. Returns false when funds are insufficient.
	DeductBalance(ctx context.Context, userID int64, amount int64) (bool, error)
}
