// internal/services/filter_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyboardapp/backend/internal/models"
)

func filterFixture() []models.Asset {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Asset{
		{
			ID:         "free-img",
			Kind:       models.AssetKindImage,
			Collection: models.CollectionColorCats,
			CreatedAt:  base.Add(3 * time.Hour),
			LikeCount:  5,
			LicenseOffers: []models.LicenseOffer{
				{Kind: models.LicenseKindPersonal, Price: "0", Currency: "IP"},
			},
		},
		{
			ID:         "paid-music",
			Kind:       models.AssetKindMusic,
			Collection: models.CollectionSigmaMusic,
			CreatedAt:  base.Add(2 * time.Hour),
			LikeCount:  50,
			LicenseOffers: []models.LicenseOffer{
				{Kind: models.LicenseKindCommercial, Price: "100", Currency: "IP"},
			},
		},
		{
			ID:         "mixed-img",
			Kind:       models.AssetKindImage,
			Collection: models.CollectionPizzaDAO,
			CreatedAt:  base.Add(1 * time.Hour),
			LikeCount:  20,
			LicenseOffers: []models.LicenseOffer{
				{Kind: models.LicenseKindPersonal, Price: "0", Currency: "IP"},
				{Kind: models.LicenseKindCommercial, Price: "500", Currency: "IP"},
			},
		},
	}
}

func ids(assets []models.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	return out
}

func TestFilterByKind(t *testing.T) {
	out := ApplyFilter(filterFixture(), models.FilterCriteria{Kind: "music"})
	assert.Equal(t, []string{"paid-music"}, ids(out))
}

func TestFilterByCollection(t *testing.T) {
	out := ApplyFilter(filterFixture(), models.FilterCriteria{Collection: "PizzaDAO"})
	assert.Equal(t, []string{"mixed-img"}, ids(out))
}

func TestFilterFreeTier(t *testing.T) {
	out := ApplyFilter(filterFixture(), models.FilterCriteria{Tier: models.LicenseTierFree})
	assert.Equal(t, []string{"free-img", "mixed-img"}, ids(out))
}

// An asset carrying both a free and a paid offer matches the free tier AND
// the paid tier. This widening is long-standing observed behavior; changing
// it is a product decision, not a cleanup.
func TestFilterLicenseTierWidening(t *testing.T) {
	free := ApplyFilter(filterFixture(), models.FilterCriteria{Tier: models.LicenseTierFree})
	paid := ApplyFilter(filterFixture(), models.FilterCriteria{Tier: models.LicenseTierPaid})

	assert.Contains(t, ids(free), "mixed-img")
	assert.Contains(t, ids(paid), "mixed-img")
}

func TestFilterSortNewest(t *testing.T) {
	out := ApplyFilter(filterFixture(), models.FilterCriteria{Sort: models.SortKeyNewest})
	assert.Equal(t, []string{"free-img", "paid-music", "mixed-img"}, ids(out))
}

func TestFilterSortPopular(t *testing.T) {
	out := ApplyFilter(filterFixture(), models.FilterCriteria{Sort: models.SortKeyPopular})
	assert.Equal(t, []string{"paid-music", "mixed-img", "free-img"}, ids(out))
}

func TestFilterSortPriceLow(t *testing.T) {
	out := ApplyFilter(filterFixture(), models.FilterCriteria{Sort: models.SortKeyPriceLow})
	// Cheapest offer counts: free-img and mixed-img both start at 0 and keep
	// their relative order, paid-music comes last.
	assert.Equal(t, []string{"free-img", "mixed-img", "paid-music"}, ids(out))
}

func TestFilterSortPriceHigh(t *testing.T) {
	out := ApplyFilter(filterFixture(), models.FilterCriteria{Sort: models.SortKeyPriceHigh})
	// Most expensive offer counts: mixed-img tops out at 500.
	assert.Equal(t, []string{"mixed-img", "paid-music", "free-img"}, ids(out))
}

func TestFilterIdempotent(t *testing.T) {
	criteria := models.FilterCriteria{Kind: "image", Tier: models.LicenseTierFree, Sort: models.SortKeyPopular}
	once := ApplyFilter(filterFixture(), criteria)
	twice := ApplyFilter(once, criteria)
	assert.Equal(t, ids(once), ids(twice))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	input := filterFixture()
	original := ids(input)

	_ = ApplyFilter(input, models.FilterCriteria{Sort: models.SortKeyPopular})

	assert.Equal(t, original, ids(input))
}

func TestFilterEmptyCriteriaMatchesAll(t *testing.T) {
	out := ApplyFilter(filterFixture(), models.FilterCriteria{})
	require.Len(t, out, 3)
}
