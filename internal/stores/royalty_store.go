// internal/stores/royalty_store.go
package stores

import (
	"errors"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/storyboardapp/backend/internal/models"
)

// RoyaltyStore persists fractional revenue-share positions. Positions merge:
// acquiring more shares of an asset a wallet already holds grows the one
// existing row instead of creating a second one.
type RoyaltyStore struct {
	db *gorm.DB
}

func NewRoyaltyStore(db *gorm.DB) *RoyaltyStore {
	return &RoyaltyStore{db: db}
}

// Acquire adds sharePercent of the asset to the wallet's position, merging
// into an existing holding when there is one. A merge sums the share,
// re-derives the token count, and refreshes acquired_at.
func (s *RoyaltyStore) Acquire(walletAddress string, asset models.Asset, sharePercent float64, vaultAddress string) (*models.RoyaltyHolding, error) {
	var holding models.RoyaltyHolding

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("wallet_address = ? AND asset_id = ?", walletAddress, asset.ID).
			First(&holding).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			holding = models.RoyaltyHolding{
				WalletAddress: walletAddress,
				AssetID:       asset.ID,
				Asset:         models.AssetBlob(asset),
				SharePercent:  sharePercent,
				TokenCount:    models.TokensForShare(sharePercent),
				VaultAddress:  vaultAddress,
				AcquiredAt:    time.Now(),
				TotalClaimed:  "0",
			}
			return tx.Create(&holding).Error
		}
		if err != nil {
			return err
		}

		holding.SharePercent += sharePercent
		holding.TokenCount = models.TokensForShare(holding.SharePercent)
		holding.AcquiredAt = time.Now()
		if vaultAddress != "" {
			holding.VaultAddress = vaultAddress
		}
		return tx.Save(&holding).Error
	})

	if err != nil {
		return nil, err
	}
	return &holding, nil
}

// Get returns the wallet's holding for one asset, or gorm.ErrRecordNotFound.
func (s *RoyaltyStore) Get(walletAddress, assetID string) (*models.RoyaltyHolding, error) {
	var holding models.RoyaltyHolding
	err := s.db.
		Where("wallet_address = ? AND asset_id = ?", walletAddress, assetID).
		First(&holding).Error
	if err != nil {
		return nil, err
	}
	return &holding, nil
}

// List returns all of the wallet's holdings, most recent first.
func (s *RoyaltyStore) List(walletAddress string) ([]models.RoyaltyHolding, error) {
	var rows []models.RoyaltyHolding
	err := s.db.
		Where("wallet_address = ?", walletAddress).
		Order("acquired_at DESC").
		Find(&rows).Error
	return rows, err
}

// RecordClaim adds a claimed amount (wei string) to the holding's running
// total and stamps last_claim_at.
func (s *RoyaltyStore) RecordClaim(walletAddress, assetID, amount string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var holding models.RoyaltyHolding
		if err := tx.
			Where("wallet_address = ? AND asset_id = ?", walletAddress, assetID).
			First(&holding).Error; err != nil {
			return err
		}

		total, ok := new(big.Int).SetString(holding.TotalClaimed, 10)
		if !ok {
			total = big.NewInt(0)
		}
		claimed, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			claimed = big.NewInt(0)
		}
		total.Add(total, claimed)

		now := time.Now()
		holding.TotalClaimed = total.String()
		holding.LastClaimAt = &now
		return tx.Save(&holding).Error
	})
}

// SetVault updates the cached vault address for a holding.
func (s *RoyaltyStore) SetVault(walletAddress, assetID, vaultAddress string) error {
	return s.db.Model(&models.RoyaltyHolding{}).
		Where("wallet_address = ? AND asset_id = ?", walletAddress, assetID).
		Update("vault_address", vaultAddress).Error
}
