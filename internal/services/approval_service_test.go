package services

import (
	"testing"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApprovalService(db *gorm.DB) *ApprovalService {
	return NewApprovalService(db, NewNotificationService(db))
}

func TestApprove(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)
	scholar := seedUser(t, db, roles.Scholar)
	item := seedItem(t, db, owner, models.StatusPending, true)

	approved, err := svc.Approve(item.ID, scholar)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.ApprovalStatus)
	assert.Nil(t, approved.RejectionReason)

	// Owner got a notification row.
	var notifs int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", owner.ID, models.NotifyApproved).
		Count(&notifs)
	assert.EqualValues(t, 1, notifs)
}

func TestApproveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)
	scholar := seedUser(t, db, roles.Scholar)
	item := seedItem(t, db, owner, models.StatusApproved, true)

	approved, err := svc.Approve(item.ID, scholar)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.ApprovalStatus)

	var notifs int64
	db.Model(&models.Notification{}).Where("user_id = ?", owner.ID).Count(&notifs)
	assert.Zero(t, notifs, "a no-op approval does not notify again")
}

func TestApproveRequiresScholar(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)
	item := seedItem(t, db, owner, models.StatusPending, true)

	_, err := svc.Approve(item.ID, owner)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestRejectRequiresReason(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)
	scholar := seedUser(t, db, roles.Scholar)
	item := seedItem(t, db, owner, models.StatusPending, true)

	_, err := svc.Reject(item.ID, scholar, "   ")
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	var unchanged models.ContentItem
	require.NoError(t, db.First(&unchanged, "id = ?", item.ID).Error)
	assert.Equal(t, models.StatusPending, unchanged.ApprovalStatus, "failed rejection leaves the item untouched")
}

func TestRejectStoresReasonAndRevokesVerification(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)
	scholar := seedUser(t, db, roles.Scholar)
	item := seedItem(t, db, owner, models.StatusApproved, true)
	require.NoError(t, db.Model(item).Update("is_verified", true).Error)

	rejected, err := svc.Reject(item.ID, scholar, "weak attribution")
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, rejected.ApprovalStatus)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "weak attribution", *rejected.RejectionReason)
	assert.False(t, rejected.IsVerified, "rejection always revokes verification")
	assert.False(t, rejected.EffectivelyPublic())
}

func TestRejectTwiceUpdatesReason(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)
	scholar := seedUser(t, db, roles.Scholar)
	item := seedItem(t, db, owner, models.StatusPending, true)

	_, err := svc.Reject(item.ID, scholar, "first pass")
	require.NoError(t, err)

	rejected, err := svc.Reject(item.ID, scholar, "second pass")
	require.NoError(t, err)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "second pass", *rejected.RejectionReason)
}

func TestSetVerifiedRequiresApproved(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)
	scholar := seedUser(t, db, roles.Scholar)
	item := seedItem(t, db, owner, models.StatusPending, true)

	_, err := svc.SetVerified(item.ID, scholar, true)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	var unchanged models.ContentItem
	require.NoError(t, db.First(&unchanged, "id = ?", item.ID).Error)
	assert.False(t, unchanged.IsVerified)
}

func TestSetVerifiedRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)
	scholar := seedUser(t, db, roles.Scholar)
	item := seedItem(t, db, owner, models.StatusApproved, true)

	verified, err := svc.SetVerified(item.ID, scholar, true)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	// Removing verification has no status precondition.
	unverified, err := svc.SetVerified(item.ID, scholar, false)
	require.NoError(t, err)
	assert.False(t, unverified.IsVerified)
}

func TestResubmit(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)
	other := seedUser(t, db, roles.User)
	item := seedItem(t, db, owner, models.StatusRejected, true)
	require.NoError(t, db.Model(item).Update("rejection_reason", "needs sources").Error)

	_, err := svc.Resubmit(item.ID, other.ID)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	resubmitted, err := svc.Resubmit(item.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resubmitted.ApprovalStatus)
	assert.Nil(t, resubmitted.RejectionReason)

	// Only rejected items can be resubmitted.
	_, err = svc.Resubmit(item.ID, owner.ID)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestQueueDefaultsToPending(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)

	seedItem(t, db, owner, models.StatusPending, true)
	seedItem(t, db, owner, models.StatusPending, false)
	seedItem(t, db, owner, models.StatusApproved, true)

	items, total, err := svc.Queue("", "", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	items, total, err = svc.Queue(models.KindBlog, "", 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(db)
	owner := seedUser(t, db, roles.User)

	seedItem(t, db, owner, models.StatusPending, true)
	seedItem(t, db, owner, models.StatusApproved, true)
	seedItem(t, db, owner, models.StatusApproved, true)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Dua.Pending)
	assert.EqualValues(t, 2, stats.Dua.Approved)
	assert.Zero(t, stats.Blog.Pending)
}
