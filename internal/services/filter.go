// internal/services/filter.go
package services

import (
	"sort"

	"github.com/storyboardapp/backend/internal/models"
)

// ApplyFilter selects the assets matching the criteria and orders them by
// its sort key. The input slice is never mutated; callers can re-apply a
// different criteria to the same working set at any time.
func ApplyFilter(assets []models.Asset, criteria models.FilterCriteria) []models.Asset {
	criteria = criteria.Normalize()

	filtered := make([]models.Asset, 0, len(assets))
	for _, asset := range assets {
		if matchesFilter(asset, criteria) {
			filtered = append(filtered, asset)
		}
	}

	sortAssets(filtered, criteria.Sort)
	return filtered
}

func matchesFilter(asset models.Asset, criteria models.FilterCriteria) bool {
	if criteria.Kind != "all" && string(asset.Kind) != criteria.Kind {
		return false
	}

	if criteria.Collection != "all" && string(asset.Collection) != criteria.Collection {
		return false
	}

	// Tier matching is per offer, not per asset: an asset carrying both a
	// free and a paid offer shows up under the free tier and the paid tier.
	switch criteria.Tier {
	case models.LicenseTierFree:
		if !asset.HasFreeOffer() {
			return false
		}
	case models.LicenseTierPaid:
		if !asset.HasPaidOffer() {
			return false
		}
	}

	return true
}

// sortAssets orders in place. Ties keep their filtered order, so repeated
// application of the same criteria is stable.
func sortAssets(assets []models.Asset, key models.SortKey) {
	switch key {
	case models.SortKeyPopular:
		sort.SliceStable(assets, func(i, j int) bool {
			return assets[i].LikeCount > assets[j].LikeCount
		})
	case models.SortKeyPriceLow:
		sort.SliceStable(assets, func(i, j int) bool {
			return assets[i].MinOfferPrice().Cmp(assets[j].MinOfferPrice()) < 0
		})
	case models.SortKeyPriceHigh:
		sort.SliceStable(assets, func(i, j int) bool {
			return assets[i].MaxOfferPrice().Cmp(assets[j].MaxOfferPrice()) > 0
		})
	default: // newest
		sort.SliceStable(assets, func(i, j int) bool {
			return assets[i].CreatedAt.After(assets[j].CreatedAt)
		})
	}
}
