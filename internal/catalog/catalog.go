// Package catalog loads the purchasable gift catalog and filters it.
package catalog

import (
	"context"

	"github.com/Proton-105/giftpanel-bot/internal/domain"
)

// PageSize is the fixed number of gifts shown per catalog page.
const PageSize = 3

// Loader provides the current gift catalog. Every call returns an
// authoritative snapshot; callers never cache across requests.
type Loader interface {
	LoadGifts(ctx context.Context) ([]domain.Gift, error)
}

// FilterCriteria selects gifts by price bounds and the limited-only flag.
type FilterCriteria struct {
	LimitedOnly bool
	MinPrice    int64
	MaxPrice    int64
}

// CriteriaFromSettings derives filter criteria from user settings.
func CriteriaFromSettings(settings *domain.UserSettings) FilterCriteria {
	return FilterCriteria{
		LimitedOnly: settings.FilterEnabled,
		MinPrice:    settings.MinPriceLimit,
		MaxPrice:    settings.MaxPriceLimit,
	}
}

// FilterAvailable returns the order-preserving subset of gifts matching the
// criteria: stars within [MinPrice, MaxPrice] and, when LimitedOnly is set,
// only limited gifts.
func FilterAvailable(gifts []domain.Gift, criteria FilterCriteria) []domain.Gift {
	filtered := make([]domain.Gift, 0, len(gifts))
	for _, gift := range gifts {
		if gift.Stars > criteria.MaxPrice || gift.Stars < criteria.MinPrice {
			continue
		}
		if criteria.LimitedOnly && !gift.Limited {
			continue
		}
		filtered = append(filtered, gift)
	}

	return filtered
}

// TotalPages returns the page count for n gifts; an empty catalog still has one page.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}

	return (n + PageSize - 1) / PageSize
}

// ClampPage bounds page into [0, totalPages-1].
func ClampPage(page, totalPages int) int {
	if page < 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}

// Page returns the gifts visible on the given (already clamped) page.
func Page(gifts []domain.Gift, page int) []domain.Gift {
	start := page * PageSize
	if start >= len(gifts) {
		return nil
	}

	end := start + PageSize
	if end > len(gifts) {
		end = len(gifts)
	}

	return gifts[start:end]
}

// FindByID resolves a gift in the snapshot, reporting whether it exists.
func FindByID(gifts []domain.Gift, giftID string) (domain.Gift, bool) {
	for _, gift := range gifts {
		if gift.ID == giftID {
			return gift, true
		}
	}

	return domain.Gift{}, false
}
