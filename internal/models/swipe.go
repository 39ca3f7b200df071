// internal/models/swipe.go
package models

import "time"

// SwipeAction records one completed like/skip decision. Actions live in a
// bounded in-memory ring per wallet and are never persisted beyond the
// session.
type SwipeAction struct {
	Kind      SwipeKind `json:"kind"`
	AssetID   string    `json:"asset_id"`
	Timestamp time.Time `json:"timestamp"`
}

// FilterCriteria selects and orders the visible subset of the working set.
// It is pure configuration: no identity, replaced wholesale on change.
type FilterCriteria struct {
	Kind       string      `json:"kind" form:"kind"`
	Collection string      `json:"collection" form:"collection"`
	Tier       LicenseTier `json:"tier" form:"tier"`
	Sort       SortKey     `json:"sort" form:"sort"`
}

// DefaultFilterCriteria matches everything, newest first.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Kind:       "all",
		Collection: "all",
		Tier:       LicenseTierAll,
		Sort:       SortKeyNewest,
	}
}

// Normalize fills empty fields with their defaults.
func (f FilterCriteria) Normalize() FilterCriteria {
	if f.Kind == "" {
		f.Kind = "all"
	}
	if f.Collection == "" {
		f.Collection = "all"
	}
	if f.Tier == "" {
		f.Tier = LicenseTierAll
	}
	if f.Sort == "" {
		f.Sort = SortKeyNewest
	}
	return f
}
