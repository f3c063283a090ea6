package domain

// Gift is an immutable snapshot of a purchasable catalog item.
type Gift struct {
	ID              string
	Stars           int64
	AvailableAmount int64
	Limited         bool
}

// ShortID returns the trailing digits of the gift identifier used on buttons.
func (g Gift) ShortID() string {
	if len(g.ID) > 4 {
		return g.ID[len(g.ID)-4:]
	}
	return g.ID
}

// Default values applied to settings of users seen for the first time.
const (
	DefaultMaxPriceLimit  int64 = 10000
	DefaultMinPriceLimit  int64 = 0
	DefaultMaxBuyPerCycle       = 3
)

// UserSettings holds per-user preferences owned by the settings store.
type UserSettings struct {
	UserID         int64
	StarsBalance   int64
	AutobuyEnabled bool
	FilterEnabled  bool
	MinPriceLimit  int64
	MaxPriceLimit  int64
	MaxBuyPerCycle int
}

// Setting keys accepted by the settings store.
const (
	SettingStarsBalance   = "stars_balance"
	SettingMinPriceLimit  = "min_price_limit"
	SettingMaxPriceLimit  = "max_price_limit"
	SettingMaxBuyPerCycle = "max_buy_per_cycle"
)

// DefaultUserSettings returns the settings applied to a user with no stored row.
func DefaultUserSettings(userID int64) *UserSettings {
	return &UserSettings{
		UserID:         userID,
		StarsBalance:   0,
		AutobuyEnabled: false,
		FilterEnabled:  false,
		MinPriceLimit:  DefaultMinPriceLimit,
		MaxPriceLimit:  DefaultMaxPriceLimit,
		MaxBuyPerCycle: DefaultMaxBuyPerCycle,
	}
}
