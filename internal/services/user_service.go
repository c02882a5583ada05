package services

import (
	"errors"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService covers the admin user-management surface. All role changes
// flow through roles.CanChangeRole before any write.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(search string, roleFilter roles.Role, limit, offset int) ([]models.User, int64, error) {
	const op = "user.List"

	query := s.db.Model(&models.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if roleFilter != "" {
		query = query.Where("role = ?", roleFilter)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, apperr.E(apperr.Unavailable, op, "Failed to fetch users", err)
	}
	return users, total, nil
}

// SetRole applies a role change after the role authority allows it.
func (s *UserService) SetRole(actor *models.User, targetID uuid.UUID, requested roles.Role) (*models.User, error) {
	const op = "user.SetRole"

	target, err := s.find(op, targetID)
	if err != nil {
		return nil, err
	}

	if err := roles.CanChangeRole(actor.Role, actor.ID, target.Role, target.ID, requested); err != nil {
		kind := apperr.Unauthorized
		if errors.Is(err, roles.ErrUnknownRole) {
			kind = apperr.InvalidArgument
		}
		return nil, apperr.E(kind, op, err.Error(), err)
	}

	if err := s.db.Model(target).Update("role", requested).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to update user role", err)
	}
	target.Role = requested
	return target, nil
}

// SetActive flips account activation. Deactivating yourself is refused for
// the same lockout reason as self-demotion.
func (s *UserService) SetActive(actor *models.User, targetID uuid.UUID, active bool) (*models.User, error) {
	const op = "user.SetActive"

	if !roles.AtLeast(actor.Role, roles.Manager) {
		return nil, apperr.E(apperr.Unauthorized, op, "Manager access required")
	}
	if actor.ID == targetID && !active {
		return nil, apperr.E(apperr.Unauthorized, op, "Cannot deactivate your own account")
	}

	target, err := s.find(op, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(target).Update("is_active", active).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to update user status", err)
	}
	target.IsActive = active
	return target, nil
}

// Stats aggregates the platform overview for the admin dashboard.
func (s *UserService) Stats() (*dto.PlatformStatsResponse, error) {
	const op = "user.Stats"

	stats := &dto.PlatformStatsResponse{UsersByRole: map[string]int64{}}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to fetch user stats", err)
	}
	s.db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.ActiveUsers)

	var byRole []struct {
		Role string
		N    int64
	}
	s.db.Model(&models.User{}).Select("role, count(*) as n").Group("role").Find(&byRole)
	for _, r := range byRole {
		stats.UsersByRole[r.Role] = r.N
	}

	s.db.Model(&models.ContentItem{}).Count(&stats.TotalContent)
	s.db.Model(&models.ContentItem{}).Where("approval_status = ?", models.StatusPending).Count(&stats.PendingReview)

	return stats, nil
}

func (s *UserService) find(op string, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.NotFound, op, "User not found")
		}
		return nil, apperr.E(apperr.Unavailable, op, "Failed to fetch user", err)
	}
	return &user, nil
}
