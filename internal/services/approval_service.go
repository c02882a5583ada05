package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApprovalService is the content lifecycle state machine:
//
//	pending -> approved | rejected
//	rejected -> pending (owner resubmit)
//	approved -> rejected (re-review)
//
// Verification is an orthogonal flag on approved items only. Every
// transition notifies the item's owner.
type ApprovalService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewApprovalService(db *gorm.DB, notifications *NotificationService) *ApprovalService {
	return &ApprovalService{db: db, notifications: notifications}
}

// Approve moves an item to approved and clears any rejection reason.
// Approving an already-approved item is a no-op success.
func (s *ApprovalService) Approve(itemID uuid.UUID, actor *models.User) (*models.ContentItem, error) {
	const op = "approval.Approve"

	if !roles.AtLeast(actor.Role, roles.Scholar) {
		return nil, apperr.E(apperr.Unauthorized, op, "Scholar access required")
	}

	item, err := s.find(op, itemID)
	if err != nil {
		return nil, err
	}
	if item.ApprovalStatus == models.StatusApproved {
		return item, nil
	}

	updates := map[string]interface{}{
		"approval_status":  models.StatusApproved,
		"rejection_reason": nil,
	}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to approve content", err)
	}

	s.notifyOwner(item, models.NotifyApproved,
		"Content approved",
		fmt.Sprintf("Your %s %q has been approved and is now eligible for public listing.", item.Kind, item.Title))
	slog.Info("content approved", "action", op, "content_id", itemID, "user_id", actor.ID.String())

	return s.find(op, itemID)
}

// Reject moves an item to rejected with a mandatory reason and always
// revokes verification.
func (s *ApprovalService) Reject(itemID uuid.UUID, actor *models.User, reason string) (*models.ContentItem, error) {
	const op = "approval.Reject"

	if !roles.AtLeast(actor.Role, roles.Scholar) {
		return nil, apperr.E(apperr.Unauthorized, op, "Scholar access required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.E(apperr.InvalidArgument, op, "Please provide a rejection reason")
	}

	item, err := s.find(op, itemID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"approval_status":  models.StatusRejected,
		"rejection_reason": reason,
		"is_verified":      false,
	}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to reject content", err)
	}

	s.notifyOwner(item, models.NotifyRejected,
		"Content rejected",
		fmt.Sprintf("Your %s %q was rejected: %s", item.Kind, item.Title, reason))
	slog.Info("content rejected", "action", op, "content_id", itemID, "user_id", actor.ID.String())

	return s.find(op, itemID)
}

// SetVerified toggles the scholarly endorsement flag. Verifying requires an
// approved item; removing verification has no status precondition.
func (s *ApprovalService) SetVerified(itemID uuid.UUID, actor *models.User, verified bool) (*models.ContentItem, error) {
	const op = "approval.SetVerified"

	if !roles.AtLeast(actor.Role, roles.Scholar) {
		return nil, apperr.E(apperr.Unauthorized, op, "Scholar access required")
	}

	item, err := s.find(op, itemID)
	if err != nil {
		return nil, err
	}
	if verified && item.ApprovalStatus != models.StatusApproved {
		return nil, apperr.E(apperr.InvalidArgument, op, "Only approved content can be verified")
	}
	if item.IsVerified == verified {
		return item, nil
	}

	if err := s.db.Model(item).Update("is_verified", verified).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to update verification", err)
	}

	if verified {
		s.notifyOwner(item, models.NotifyVerified,
			"Content verified",
			fmt.Sprintf("Your %s %q has been verified by a scholar.", item.Kind, item.Title))
	}

	return s.find(op, itemID)
}

// Resubmit returns a rejected item to the review queue. Owner only.
func (s *ApprovalService) Resubmit(itemID, ownerID uuid.UUID) (*models.ContentItem, error) {
	const op = "approval.Resubmit"

	item, err := s.find(op, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != ownerID {
		return nil, apperr.E(apperr.Unauthorized, op, "Only the owner can resubmit content")
	}
	if item.ApprovalStatus != models.StatusRejected {
		return nil, apperr.E(apperr.InvalidArgument, op, "Only rejected content can be resubmitted")
	}

	updates := map[string]interface{}{
		"approval_status":  models.StatusPending,
		"rejection_reason": nil,
	}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to resubmit content", err)
	}

	return s.find(op, itemID)
}

// Queue lists items for the review panel, optionally filtered by kind and
// approval status (defaults to pending).
func (s *ApprovalService) Queue(kind, status string, limit, offset int) ([]models.ContentItem, int64, error) {
	const op = "approval.Queue"

	if status == "" {
		status = models.StatusPending
	}

	query := s.db.Model(&models.ContentItem{}).Where("approval_status = ?", status)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var total int64
	query.Count(&total)

	var items []models.ContentItem
	if err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, apperr.E(apperr.Unavailable, op, "Failed to fetch review queue", err)
	}
	return items, total, nil
}

// Stats counts items per kind and approval status for the review dashboard.
func (s *ApprovalService) Stats() (*dto.ApprovalStatsResponse, error) {
	const op = "approval.Stats"

	var rows []struct {
		Kind           string
		ApprovalStatus string
		N              int64
	}
	err := s.db.Model(&models.ContentItem{}).
		Select("kind, approval_status, count(*) as n").
		Group("kind").Group("approval_status").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to fetch approval stats", err)
	}

	stats := &dto.ApprovalStatsResponse{}
	for _, r := range rows {
		var counts *dto.KindCounts
		switch r.Kind {
		case models.KindDua:
			counts = &stats.Dua
		case models.KindBlog:
			counts = &stats.Blog
		case models.KindQuestion:
			counts = &stats.Question
		default:
			continue
		}
		switch r.ApprovalStatus {
		case models.StatusPending:
			counts.Pending = r.N
		case models.StatusApproved:
			counts.Approved = r.N
		case models.StatusRejected:
			counts.Rejected = r.N
		}
	}
	return stats, nil
}

func (s *ApprovalService) notifyOwner(item *models.ContentItem, notifType, title, message string) {
	err := s.notifications.Create(item.UserID, notifType, title, message, item)
	if err != nil {
		// Notification rows are best-effort; the transition already happened.
		slog.Error("failed to notify content owner", "error", err, "content_id", item.ID)
	}
}

func (s *ApprovalService) find(op string, itemID uuid.UUID) (*models.ContentItem, error) {
	var item models.ContentItem
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.NotFound, op, "Content not found")
		}
		return nil, apperr.E(apperr.Unavailable, op, "Failed to fetch content", err)
	}
	return &item, nil
}
