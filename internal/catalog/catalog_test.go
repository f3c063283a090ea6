package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Proton-105/giftpanel-bot/internal/catalog"
	"github.com/Proton-105/giftpanel-bot/internal/domain"
)

func sampleGifts() []domain.Gift {
	return []domain.Gift{
		{ID: "g1", Stars: 50, AvailableAmount: 10, Limited: true},
		{ID: "g2", Stars: 150, AvailableAmount: 5, Limited: false},
		{ID: "g3", Stars: 500, AvailableAmount: 2, Limited: true},
		{ID: "g4", Stars: 1000, AvailableAmount: 0, Limited: false},
	}
}

func TestFilterAvailable(t *testing.T) {
	testCases := []struct {
		name     string
		criteria catalog.FilterCriteria
		wantIDs  []string
	}{
		{
			name:     "wide bounds keep everything",
			criteria: catalog.FilterCriteria{MinPrice: 0, MaxPrice: 10000},
			wantIDs:  []string{"g1", "g2", "g3", "g4"},
		},
		{
			name:     "max price cuts expensive gifts",
			criteria: catalog.FilterCriteria{MinPrice: 0, MaxPrice: 200},
			wantIDs:  []string{"g1", "g2"},
		},
		{
			name:     "min price cuts cheap gifts",
			criteria: catalog.FilterCriteria{MinPrice: 100, MaxPrice: 10000},
			wantIDs:  []string{"g2", "g3", "g4"},
		},
		{
			name:     "limited only",
			criteria: catalog.FilterCriteria{LimitedOnly: true, MinPrice: 0, MaxPrice: 10000},
			wantIDs:  []string{"g1", "g3"},
		},
		{
			name:     "all criteria combined",
			criteria: catalog.FilterCriteria{LimitedOnly: true, MinPrice: 100, MaxPrice: 600},
			wantIDs:  []string{"g3"},
		},
		{
			name:     "nothing matches",
			criteria: catalog.FilterCriteria{MinPrice: 2000, MaxPrice: 3000},
			wantIDs:  []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filtered := catalog.FilterAvailable(sampleGifts(), tc.criteria)

			gotIDs := make([]string, 0, len(filtered))
			for _, gift := range filtered {
				gotIDs = append(gotIDs, gift.ID)

				assert.GreaterOrEqual(t, gift.Stars, tc.criteria.MinPrice)
				assert.LessOrEqual(t, gift.Stars, tc.criteria.MaxPrice)
				if tc.criteria.LimitedOnly {
					assert.True(t, gift.Limited)
				}
			}

			assert.Equal(t, tc.wantIDs, gotIDs, "filter must preserve order")
		})
	}
}

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		count int
		want  int
	}{
		{0, 1},
		{1, 1},
		{3, 1},
		{4, 2},
		{6, 2},
		{7, 3},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, catalog.TotalPages(tc.count), "count=%d", tc.count)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 0, catalog.ClampPage(-1, 3))
	assert.Equal(t, 0, catalog.ClampPage(0, 3))
	assert.Equal(t, 2, catalog.ClampPage(2, 3))
	assert.Equal(t, 2, catalog.ClampPage(7, 3))
	assert.Equal(t, 0, catalog.ClampPage(0, 1))
}

func TestPage(t *testing.T) {
	gifts := sampleGifts()

	first := catalog.Page(gifts, 0)
	assert.Len(t, first, 3)
	assert.Equal(t, "g1", first[0].ID)

	second := catalog.Page(gifts, 1)
	assert.Len(t, second, 1)
	assert.Equal(t, "g4", second[0].ID)

	assert.Nil(t, catalog.Page(gifts, 2))
}

func TestFindByID(t *testing.T) {
	gifts := sampleGifts()

	gift, ok := catalog.FindByID(gifts, "g3")
	assert.True(t, ok)
	assert.Equal(t, int64(500), gift.Stars)

	_, ok = catalog.FindByID(gifts, "missing")
	assert.False(t, ok)
}
