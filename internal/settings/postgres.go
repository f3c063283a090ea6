package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Proton-105/giftpanel-bot/internal/domain"
)

// PostgresStore keeps user settings in a single user_settings table.
type PostgresStore struct {
	db  *sql.DB
	log *slog.Logger
}

// NewPostgresStore builds a store over an open database handle.
func NewPostgresStore(db *sql.DB, log *slog.Logger) *PostgresStore {
	if log == nil {
		log = slog.Default()
	}

	return &PostgresStore{db: db, log: log}
}

// GetUserData loads the user's settings row, falling back to defaults when the
// user has never written anything.
func (s *PostgresStore) GetUserData(ctx context.Context, userID int64) (*domain.UserSettings, error) {
	const query = `
		SELECT user_id, stars_balance, autobuy_enabled, filter_enabled,
		       min_price_limit, max_price_limit, max_buy_per_cycle
		FROM user_settings
		WHERE user_id = $1`

	us := &domain.UserSettings{}
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&us.UserID, &us.StarsBalance, &us.AutobuyEnabled, &us.FilterEnabled,
		&us.MinPriceLimit, &us.MaxPriceLimit, &us.MaxBuyPerCycle,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultUserSettings(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user settings: %w", err)
	}

	return us, nil
}

// UpdateSetting writes a single numeric setting, creating the row on first use.
func (s *PostgresStore) UpdateSetting(ctx context.Context, userID int64, key string, value int64) error {
	column, err := settingColumn(key)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO user_settings (user_id, %s)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET %s = EXCLUDED.%s, updated_at = NOW()`, column, column, column)

	if _, err := s.db.ExecContext(ctx, query, userID, value); err != nil {
		return fmt.Errorf("update setting %s: %w", key, err)
	}

	s.log.Debug("setting updated",
		slog.Int64("user_id", userID), slog.String("key", key), slog.Int64("value", value))

	return nil
}

// ToggleAutobuy flips the autobuy flag and returns the new state.
func (s *PostgresStore) ToggleAutobuy(ctx context.Context, userID int64) (bool, error) {
	return s.toggle(ctx, userID, "autobuy_enabled")
}

// ToggleFilter flips the limited-only filter flag and returns the new state.
func (s *PostgresStore) ToggleFilter(ctx context.Context, userID int64) (bool, error) {
	return s.toggle(ctx, userID, "filter_enabled")
}

func (s *PostgresStore) toggle(ctx context.Context, userID int64, column string) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO user_settings (user_id, %s)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET %s = NOT user_settings.%s, updated_at = NOW()
		RETURNING %s`, column, column, column, column)

	var enabled bool
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&enabled); err != nil {
		return false, fmt.Errorf("toggle %s: %w", column, err)
	}

	return enabled, nil
}

// DeductBalance subtracts amount only when the stored balance covers it. The
// conditional update makes concurrent purchases safe without a transaction.
func (s *PostgresStore) DeductBalance(ctx context.Context, userID int64, amount int64) (bool, error) {
	const query = `
		UPDATE user_settings
		SET stars_balance = stars_balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND stars_balance >= $2
		RETURNING stars_balance`

	var remaining int64
	err := s.db.QueryRowContext(ctx, query, userID, amount).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("deduct balance: %w", err)
	}

	s.log.Info("balance deducted",
		slog.Int64("user_id", userID), slog.Int64("amount", amount), slog.Int64("remaining", remaining))

	return true, nil
}

func settingColumn(key string) (string, error) {
	switch key {
	case domain.SettingStarsBalance:
		return "stars_balance", nil
	case domain.SettingMinPriceLimit:
		return "min_price_limit", nil
	case domain.SettingMaxPriceLimit:
		return "max_price_limit", nil
	case domain.SettingMaxBuyPerCycle:
		return "max_buy_per_cycle", nil
	default:
		return "", fmt.Errorf("unknown setting key %q", key)
	}
}
