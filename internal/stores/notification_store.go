// internal/stores/notification_store.go
package stores

import (
	"gorm.io/gorm"

	"github.com/storyboardapp/backend/internal/models"
)

// NotificationStore persists in-app notifications.
type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) Add(n *models.Notification) error {
	return s.db.Create(n).Error
}

// List returns the wallet's notifications, newest first, capped at limit.
func (s *NotificationStore) List(walletAddress string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []models.Notification
	err := s.db.
		Where("wallet_address = ?", walletAddress).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (s *NotificationStore) UnreadCount(walletAddress string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("wallet_address = ? AND read = ?", walletAddress, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationStore) MarkRead(walletAddress, id string) error {
	return s.db.Model(&models.Notification{}).
		Where("wallet_address = ? AND id = ?", walletAddress, id).
		Update("read", true).Error
}

func (s *NotificationStore) MarkAllRead(walletAddress string) error {
	return s.db.Model(&models.Notification{}).
		Where("wallet_address = ? AND read = ?", walletAddress, false).
		Update("read", true).Error
}
