// internal/stores/liked_store.go
package stores

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/utils"
)

// LikedStore persists a wallet's liked collection. Likes are idempotent:
// liking an already liked asset leaves the original row untouched.
type LikedStore struct {
	db *gorm.DB
}

func NewLikedStore(db *gorm.DB) *LikedStore {
	return &LikedStore{db: db}
}

// Add records a like. A duplicate (wallet, asset) pair is a no-op and keeps
// the original liked_at timestamp.
func (s *LikedStore) Add(walletAddress string, asset models.Asset) error {
	row := models.LikedAsset{
		WalletAddress: walletAddress,
		AssetID:       asset.ID,
		Asset:         models.AssetBlob(asset),
		Tags:          pq.StringArray(asset.Tags),
		LikedAt:       time.Now(),
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}, {Name: "asset_id"}},
		DoNothing: true,
	}).Create(&row).Error
}

// Remove deletes a like; removing an asset that was never liked is a no-op.
func (s *LikedStore) Remove(walletAddress, assetID string) error {
	return s.db.
		Where("wallet_address = ? AND asset_id = ?", walletAddress, assetID).
		Delete(&models.LikedAsset{}).Error
}

// Has reports whether the wallet has liked the asset.
func (s *LikedStore) Has(walletAddress, assetID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.LikedAsset{}).
		Where("wallet_address = ? AND asset_id = ?", walletAddress, assetID).
		Count(&count).Error
	return count > 0, err
}

// List returns the wallet's liked assets, most recent first.
func (s *LikedStore) List(walletAddress string) ([]models.LikedAsset, error) {
	var rows []models.LikedAsset
	err := s.db.
		Where("wallet_address = ?", walletAddress).
		Order("liked_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListPage returns one page of the wallet's liked assets plus the overall
// count.
func (s *LikedStore) ListPage(walletAddress string, params utils.PaginationParams) ([]models.LikedAsset, int64, error) {
	query := s.db.Model(&models.LikedAsset{}).
		Where("wallet_address = ?", walletAddress)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.LikedAsset
	err := utils.ApplyPagination(utils.ApplySort(query, params, []string{"liked_at", "created_at"}), params).
		Find(&rows).Error
	return rows, total, err
}

// Get returns a single liked entry, or gorm.ErrRecordNotFound.
func (s *LikedStore) Get(walletAddress, assetID string) (*models.LikedAsset, error) {
	var row models.LikedAsset
	err := s.db.
		Where("wallet_address = ? AND asset_id = ?", walletAddress, assetID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Count returns the number of liked assets for the wallet.
func (s *LikedStore) Count(walletAddress string) (int64, error) {
	var count int64
	err := s.db.Model(&models.LikedAsset{}).
		Where("wallet_address = ?", walletAddress).
		Count(&count).Error
	return count, err
}

// IsNotFound reports whether err is the store's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
