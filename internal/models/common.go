// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the row id so the same models work on postgres and
// the in-memory sqlite databases used by tests.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
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

	return json.Unmarshal(bytes, j)
}

// Enums
type AssetKind string

const (
	AssetKindImage AssetKind = "image"
	AssetKindMusic AssetKind = "music"
	AssetKindText  AssetKind = "text"
	AssetKindVideo AssetKind = "video"
)

type LicenseKind string

const (
	LicenseKindPersonal   LicenseKind = "personal"
	LicenseKindCommercial LicenseKind = "commercial"
	LicenseKindRemix      LicenseKind = "remix"
)

type Collection string

const (
	CollectionColorCats  Collection = "Color Cats"
	CollectionSigmaMusic Collection = "Sigma Music"
	CollectionPizzaDAO   Collection = "PizzaDAO"
	CollectionWTFFreg    Collection = "WTF Freg"
)

// Collections returns the closed set of named collections.
func Collections() []Collection {
	return []Collection{
		CollectionColorCats,
		CollectionSigmaMusic,
		CollectionPizzaDAO,
		CollectionWTFFreg,
	}
}

// NormalizeCollection maps an upstream collection name into the closed set.
// Unknown names fall back to PizzaDAO, matching the ingest behavior the web
// client has always had.
func NormalizeCollection(name string) Collection {
	for _, c := range Collections() {
		if string(c) == name {
			return c
		}
	}
	return CollectionPizzaDAO
}

type LicenseTier string

const (
	LicenseTierAll  LicenseTier = "all"
	LicenseTierFree LicenseTier = "free"
	LicenseTierPaid LicenseTier = "paid"
)

type SortKey string

const (
	SortKeyNewest    SortKey = "newest"
	SortKeyPopular   SortKey = "popular"
	SortKeyPriceLow  SortKey = "price-low"
	SortKeyPriceHigh SortKey = "price-high"
)

type SwipeKind string

const (
	SwipeKindLike SwipeKind = "like"
	SwipeKindSkip SwipeKind = "skip"
)

type NotificationLevel string

const (
	NotificationLevelInfo    NotificationLevel = "info"
	NotificationLevelSuccess NotificationLevel = "success"
	NotificationLevelError   NotificationLevel = "error"
)
