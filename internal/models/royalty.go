// internal/models/royalty.go
package models

import "time"

// RoyaltyTokenSupply is the total royalty-token supply of one IP vault.
// 1% ownership corresponds to 1,000,000 tokens.
const RoyaltyTokenSupply = 100_000_000

// TokensForShare converts a percentage share into royalty tokens.
func TokensForShare(sharePercent float64) int64 {
	return int64(sharePercent / 100 * RoyaltyTokenSupply)
}

// RoyaltyHolding is a wallet's fractional revenue-share position in one
// asset. At most one holding exists per (wallet, asset); acquiring more
// shares merges into the existing row.
type RoyaltyHolding struct {
	BaseModel
	WalletAddress string     `json:"wallet_address" gorm:"size:42;not null;uniqueIndex:idx_holding_wallet_asset"`
	AssetID       string     `json:"asset_id" gorm:"size:128;not null;uniqueIndex:idx_holding_wallet_asset"`
	Asset         AssetBlob  `json:"asset" gorm:"type:jsonb"`
	SharePercent  float64    `json:"share_percent" gorm:"not null"`
	TokenCount    int64      `json:"token_count" gorm:"not null"`
	VaultAddress  string     `json:"vault_address,omitempty" gorm:"size:42"`
	AcquiredAt    time.Time  `json:"acquired_at"`
	LastClaimAt   *time.Time `json:"last_claim_at,omitempty"`
	TotalClaimed  string     `json:"total_claimed,omitempty" gorm:"size:80"`
}
