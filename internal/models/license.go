// internal/models/license.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// LikedAsset is one entry of a wallet's liked collection. The unique index
// over (wallet_address, asset_id) backs like idempotence at the storage
// layer as well.
type LikedAsset struct {
	BaseModel
	WalletAddress string         `json:"wallet_address" gorm:"size:42;not null;uniqueIndex:idx_liked_wallet_asset"`
	AssetID       string         `json:"asset_id" gorm:"size:128;not null;uniqueIndex:idx_liked_wallet_asset"`
	Asset         AssetBlob      `json:"asset" gorm:"type:jsonb"`
	Tags          pq.StringArray `json:"tags" gorm:"type:text[]"`
	LikedAt       time.Time      `json:"liked_at" gorm:"index"`
}

// License records a completed acquisition. Append-only: rows are created
// only after the orchestrator reports success and are never updated.
type License struct {
	BaseModel
	LicenseID     string      `json:"license_id" gorm:"size:128;not null;index"`
	WalletAddress string      `json:"wallet_address" gorm:"size:42;not null;index"`
	AssetID       string      `json:"asset_id" gorm:"size:128;not null;index"`
	Asset         AssetBlob   `json:"asset" gorm:"type:jsonb"`
	LicenseKind   LicenseKind `json:"license_kind" gorm:"type:varchar(20);not null"`
	Price         string      `json:"price" gorm:"size:80"`
	Currency      string      `json:"currency" gorm:"size:20"`
	TxHash        string      `json:"tx_hash" gorm:"size:66"`
	LicensedAt    time.Time   `json:"licensed_at"`
}

// Notification is an in-app notification record. Only terminal outcomes of
// an operation produce one; intermediate orchestrator steps stay silent.
type Notification struct {
	BaseModel
	WalletAddress string            `json:"wallet_address" gorm:"size:42;not null;index"`
	Level         NotificationLevel `json:"level" gorm:"type:varchar(10);not null"`
	Title         string            `json:"title" gorm:"size:120"`
	Message       string            `json:"message" gorm:"type:text"`
	Data          JSONB             `json:"data,omitempty" gorm:"type:jsonb"`
	Read          bool              `json:"read" gorm:"default:false"`
}
