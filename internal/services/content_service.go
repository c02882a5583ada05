package services

import (
	"errors"
	"strings"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentService owns item CRUD, the owned/public listings and the like
// edges. Lifecycle transitions (approve/reject/verify) live in
// ApprovalService.
type ContentService struct {
	db     *gorm.DB
	filter *ModerationService
}

func NewContentService(db *gorm.DB, filter *ModerationService) *ContentService {
	return &ContentService{db: db, filter: filter}
}

func validKind(kind string) bool {
	for _, k := range models.ContentKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (s *ContentService) Create(owner *models.User, req *dto.CreateContentRequest) (*models.ContentItem, error) {
	const op = "content.Create"

	if !validKind(req.Kind) {
		return nil, apperr.E(apperr.InvalidArgument, op, "kind must be dua, blog, or question")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.E(apperr.InvalidArgument, op, "title is required")
	}
	for _, text := range []string{req.Title, req.Purpose, req.Body, req.EnglishMeaning, req.NativeMeaning} {
		if ok, reason := s.filter.FilterContent(text); !ok {
			return nil, apperr.E(apperr.InvalidArgument, op, s.filter.GetRejectionMessage(reason))
		}
	}

	item := &models.ContentItem{
		ID:             uuid.New(),
		UserID:         owner.ID,
		Kind:           req.Kind,
		Title:          strings.TrimSpace(req.Title),
		Purpose:        req.Purpose,
		ArabicText:     req.ArabicText,
		EnglishMeaning: req.EnglishMeaning,
		NativeMeaning:  req.NativeMeaning,
		Body:           req.Body,
		Category:       req.Category,
		ApprovalStatus: models.StatusPending,
		IsPublic:       req.IsPublic,
		AuthorName:     owner.Name,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to save content", err)
	}
	return item, nil
}

// Update applies owner edits. Editing a rejected item resubmits it: the
// status returns to pending and the stored rejection reason is cleared.
func (s *ContentService) Update(itemID, actorID uuid.UUID, req *dto.UpdateContentRequest) (*models.ContentItem, error) {
	const op = "content.Update"

	item, err := s.find(op, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != actorID {
		return nil, apperr.E(apperr.Unauthorized, op, "Only the owner can edit this content")
	}

	updates := map[string]interface{}{}
	setText := func(col string, v *string) error {
		if v == nil {
			return nil
		}
		if ok, reason := s.filter.FilterContent(*v); !ok {
			return apperr.E(apperr.InvalidArgument, op, s.filter.GetRejectionMessage(reason))
		}
		updates[col] = *v
		return nil
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, apperr.E(apperr.InvalidArgument, op, "title cannot be empty")
	}
	for col, v := range map[string]*string{
		"title":           req.Title,
		"purpose":         req.Purpose,
		"arabic_text":     req.ArabicText,
		"english_meaning": req.EnglishMeaning,
		"native_meaning":  req.NativeMeaning,
		"body":            req.Body,
		"category":        req.Category,
	} {
		if err := setText(col, v); err != nil {
			return nil, err
		}
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	if item.ApprovalStatus == models.StatusRejected {
		updates["approval_status"] = models.StatusPending
		updates["rejection_reason"] = nil
	}

	if len(updates) == 0 {
		return item, nil
	}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to update content", err)
	}
	return s.find(op, itemID)
}

// Delete removes an item and all of its like edges. Allowed for the owner
// and for manager-or-above moderators.
func (s *ContentService) Delete(itemID uuid.UUID, actor *models.User) error {
	const op = "content.Delete"

	item, err := s.find(op, itemID)
	if err != nil {
		return err
	}
	if item.UserID != actor.ID && !roles.AtLeast(actor.Role, roles.Manager) {
		return apperr.E(apperr.Unauthorized, op, "Insufficient permission to delete this content")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", itemID).Delete(&models.ContentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
	if err != nil {
		return apperr.E(apperr.Unavailable, op, "Failed to delete content", err)
	}
	return nil
}

// Get enforces read visibility: the owner always sees their item, everyone
// sees effectively-public items, and scholars-or-above see everything for
// review purposes.
func (s *ContentService) Get(itemID uuid.UUID, viewerID uuid.UUID, viewerRole roles.Role) (*models.ContentItem, error) {
	const op = "content.Get"

	item, err := s.find(op, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID == viewerID || item.EffectivelyPublic() || roles.AtLeast(viewerRole, roles.Scholar) {
		return item, nil
	}
	// Hide existence of private content from unrelated viewers.
	return nil, apperr.E(apperr.NotFound, op, "Content not found")
}

// ListOwned returns the viewer's items in any approval state.
func (s *ContentService) ListOwned(ownerID uuid.UUID) ([]models.ContentItem, error) {
	var items []models.ContentItem
	err := s.db.Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperr.E(apperr.Unavailable, "content.ListOwned", "Failed to fetch your content", err)
	}
	return items, nil
}

// ListPublic returns effectively-public items: approved and owner-published.
func (s *ContentService) ListPublic(kind string) ([]models.ContentItem, error) {
	query := s.db.Where("approval_status = ? AND is_public = ?", models.StatusApproved, true)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var items []models.ContentItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, "content.ListPublic", "Failed to fetch public content", err)
	}
	return items, nil
}

// Like records the viewer's like edge. Liking an already-liked item is a
// no-op so the count can never move twice for the same actor.
func (s *ContentService) Like(userID, itemID uuid.UUID) (int, error) {
	const op = "content.Like"

	item, err := s.find(op, itemID)
	if err != nil {
		return 0, err
	}

	var existing models.ContentLike
	if err := s.db.Where("user_id = ? AND content_id = ?", userID, itemID).First(&existing).Error; err == nil {
		return item.LikeCount, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		like := models.ContentLike{ID: uuid.New(), ContentID: itemID, UserID: userID}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.ContentItem{}).Where("id = ?", itemID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return 0, apperr.E(apperr.Unavailable, op, "Failed to like content", err)
	}
	return s.likeCount(itemID)
}

// Unlike removes the viewer's like edge if present.
func (s *ContentService) Unlike(userID, itemID uuid.UUID) (int, error) {
	const op = "content.Unlike"

	item, err := s.find(op, itemID)
	if err != nil {
		return 0, err
	}

	var existing models.ContentLike
	if err := s.db.Where("user_id = ? AND content_id = ?", userID, itemID).First(&existing).Error; err != nil {
		return item.LikeCount, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}
		return tx.Model(&models.ContentItem{}).
			Where("id = ? AND like_count > 0", itemID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
	if err != nil {
		return 0, apperr.E(apperr.Unavailable, op, "Failed to unlike content", err)
	}
	return s.likeCount(itemID)
}

// LikeStatus resolves the viewer's liked flag plus the aggregate count.
func (s *ContentService) LikeStatus(userID, itemID uuid.UUID) (*dto.LikeStatusResponse, error) {
	const op = "content.LikeStatus"

	item, err := s.find(op, itemID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.ContentLike{}).
		Where("user_id = ? AND content_id = ?", userID, itemID).
		Count(&count).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to fetch like status", err)
	}

	return &dto.LikeStatusResponse{
		IsLiked:    count > 0,
		LikesCount: item.LikeCount,
	}, nil
}

func (s *ContentService) likeCount(itemID uuid.UUID) (int, error) {
	var item models.ContentItem
	if err := s.db.Select("like_count").First(&item, "id = ?", itemID).Error; err != nil {
		return 0, apperr.E(apperr.Unavailable, "content.likeCount", "Failed to read like count", err)
	}
	return item.LikeCount, nil
}

func (s *ContentService) find(op string, itemID uuid.UUID) (*models.ContentItem, error) {
	var item models.ContentItem
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.NotFound, op, "Content not found")
		}
		return nil, apperr.E(apperr.Unavailable, op, "Failed to fetch content", err)
	}
	return &item, nil
}
