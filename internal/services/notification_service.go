package services

import (
	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Create(userID uuid.UUID, notifType, title, message string, item *models.ContentItem) error {
	notif := models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if item != nil {
		id := item.ID
		notif.ContentID = &id
		notif.ContentKind = item.Kind
		notif.ContentTitle = item.Title
	}
	return s.db.Create(&notif).Error
}

func (s *NotificationService) List(userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	const op = "notification.List"

	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	query.Count(&total)

	var notifs []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifs).Error; err != nil {
		return nil, 0, apperr.E(apperr.Unavailable, op, "Failed to fetch notifications", err)
	}
	return notifs, total, nil
}

func (s *NotificationService) MarkRead(userID, notifID uuid.UUID) error {
	const op = "notification.MarkRead"

	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notifID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return apperr.E(apperr.Unavailable, op, "Failed to update notification", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.E(apperr.NotFound, op, "Notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return apperr.E(apperr.Unavailable, "notification.MarkAllRead", "Failed to update notifications", err)
	}
	return nil
}
