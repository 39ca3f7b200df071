// internal/models/asset.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"math/big"
	"time"
)

// Creator identifies the wallet that registered an asset upstream.
type Creator struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Avatar  string `json:"avatar,omitempty"`
}

// LicenseOffer is one purchasable usage-rights tier attached to an asset.
// Price is a non-negative integer in the chain's smallest unit (wei), kept
// as a string; "0" is the canonical representation of a free offer.
type LicenseOffer struct {
	Kind      LicenseKind `json:"kind"`
	Price     string      `json:"price"`
	Currency  string      `json:"currency"`
	Available bool        `json:"available"`
}

// IsFree reports whether the offer costs nothing.
func (o LicenseOffer) IsFree() bool {
	return o.PriceWei().Sign() == 0
}

// PriceWei parses the offer price; unparseable prices count as zero.
func (o LicenseOffer) PriceWei() *big.Int {
	v, ok := new(big.Int).SetString(o.Price, 10)
	if !ok || v.Sign() < 0 {
		return big.NewInt(0)
	}
	return v
}

// Asset is the canonical in-app record of one licensable IP item. Assets are
// immutable within a session; a re-fetch replaces the record wholesale.
type Asset struct {
	ID            string         `json:"id"`
	ProtocolID    string         `json:"protocol_id,omitempty"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Kind          AssetKind      `json:"kind"`
	Collection    Collection     `json:"collection"`
	Creator       Creator        `json:"creator"`
	PreviewURL    string         `json:"preview_url"`
	ThumbnailURL  string         `json:"thumbnail_url"`
	LicenseOffers []LicenseOffer `json:"license_offers"`
	CreatedAt     time.Time      `json:"created_at"`
	ViewCount     int64          `json:"view_count"`
	LikeCount     int64          `json:"like_count"`
	Tags          []string       `json:"tags"`
}

// Offer returns the offer for the given license kind, if any.
func (a *Asset) Offer(kind LicenseKind) (LicenseOffer, bool) {
	for _, o := range a.LicenseOffers {
		if o.Kind == kind {
			return o, true
		}
	}
	return LicenseOffer{}, false
}

func (a *Asset) HasFreeOffer() bool {
	for _, o := range a.LicenseOffers {
		if o.IsFree() {
			return true
		}
	}
	return false
}

func (a *Asset) HasPaidOffer() bool {
	for _, o := range a.LicenseOffers {
		if !o.IsFree() {
			return true
		}
	}
	return false
}

// MinOfferPrice returns the cheapest offer price in wei.
func (a *Asset) MinOfferPrice() *big.Int {
	var min *big.Int
	for _, o := range a.LicenseOffers {
		p := o.PriceWei()
		if min == nil || p.Cmp(min) < 0 {
			min = p
		}
	}
	if min == nil {
		return big.NewInt(0)
	}
	return min
}

// MaxOfferPrice returns the most expensive offer price in wei.
func (a *Asset) MaxOfferPrice() *big.Int {
	max := big.NewInt(0)
	for _, o := range a.LicenseOffers {
		if p := o.PriceWei(); p.Cmp(max) > 0 {
			max = p
		}
	}
	return max
}

// AssetBlob stores a full Asset snapshot in a single JSON column, so the
// persisted collections survive upstream catalog churn.
type AssetBlob Asset

func (a AssetBlob) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AssetBlob) Scan(value interface{}) error {
	if value == nil {
		*a = AssetBlob{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, sok := value.(string); sok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}

	return json.Unmarshal(bytes, a)
}

func (a AssetBlob) Asset() Asset {
	return Asset(a)
}
