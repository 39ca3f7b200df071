// internal/stores/license_store.go
package stores

import (
	"gorm.io/gorm"

	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/utils"
)

// LicenseStore persists completed license acquisitions. The table is
// append-only; every successful mint adds a row even for repeat purchases
// of the same asset.
type LicenseStore struct {
	db *gorm.DB
}

func NewLicenseStore(db *gorm.DB) *LicenseStore {
	return &LicenseStore{db: db}
}

func (s *LicenseStore) Record(license *models.License) error {
	return s.db.Create(license).Error
}

// List returns the wallet's licenses, most recent first.
func (s *LicenseStore) List(walletAddress string) ([]models.License, error) {
	var rows []models.License
	err := s.db.
		Where("wallet_address = ?", walletAddress).
		Order("licensed_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListPage returns one page of the wallet's licenses plus the overall count.
func (s *LicenseStore) ListPage(walletAddress string, params utils.PaginationParams) ([]models.License, int64, error) {
	query := s.db.Model(&models.License{}).
		Where("wallet_address = ?", walletAddress)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.License
	err := utils.ApplyPagination(utils.ApplySort(query, params, []string{"licensed_at", "created_at"}), params).
		Find(&rows).Error
	return rows, total, err
}

// ListByAsset returns every license the wallet holds for one asset.
func (s *LicenseStore) ListByAsset(walletAddress, assetID string) ([]models.License, error) {
	var rows []models.License
	err := s.db.
		Where("wallet_address = ? AND asset_id = ?", walletAddress, assetID).
		Order("licensed_at DESC").
		Find(&rows).Error
	return rows, err
}

// HasLicense reports whether the wallet holds at least one license of the
// given kind for the asset.
func (s *LicenseStore) HasLicense(walletAddress, assetID string, kind models.LicenseKind) (bool, error) {
	var count int64
	err := s.db.Model(&models.License{}).
		Where("wallet_address = ? AND asset_id = ? AND license_kind = ?", walletAddress, assetID, kind).
		Count(&count).Error
	return count > 0, err
}

// Count returns the number of licenses the wallet holds.
func (s *LicenseStore) Count(walletAddress string) (int64, error) {
	var count int64
	err := s.db.Model(&models.License{}).
		Where("wallet_address = ?", walletAddress).
		Count(&count).Error
	return count, err
}
