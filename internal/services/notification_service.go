// internal/services/notification_service.go
package services

import (
	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/stores"
)

// NotificationService records in-app notifications. Only terminal outcomes
// produce one; a multi-step operation notifies once, after its final step,
// never per intermediate step.
type NotificationService struct {
	store *stores.NotificationStore
	log   *logrus.Entry
}

func NewNotificationService(store *stores.NotificationStore) *NotificationService {
	return &NotificationService{
		store: store,
		log:   logrus.WithField("component", "notifications"),
	}
}

// Notify persists one notification. Failures are logged and swallowed so a
// notification write can never fail the operation it reports on.
func (s *NotificationService) Notify(walletAddress string, level models.NotificationLevel, title, message string, data models.JSONB) {
	n := &models.Notification{
		WalletAddress: walletAddress,
		Level:         level,
		Title:         title,
		Message:       message,
		Data:          data,
	}
	if err := s.store.Add(n); err != nil {
		s.log.WithError(err).Warn("Failed to record notification")
	}
}

func (s *NotificationService) Success(walletAddress, title, message string, data models.JSONB) {
	s.Notify(walletAddress, models.NotificationLevelSuccess, title, message, data)
}

func (s *NotificationService) Error(walletAddress, title, message string) {
	s.Notify(walletAddress, models.NotificationLevelError, title, message, nil)
}

func (s *NotificationService) List(walletAddress string, limit int) ([]models.Notification, error) {
	return s.store.List(walletAddress, limit)
}

func (s *NotificationService) UnreadCount(walletAddress string) (int64, error) {
	return s.store.UnreadCount(walletAddress)
}

func (s *NotificationService) MarkRead(walletAddress, id string) error {
	return s.store.MarkRead(walletAddress, id)
}

func (s *NotificationService) MarkAllRead(walletAddress string) error {
	return s.store.MarkAllRead(walletAddress)
}
