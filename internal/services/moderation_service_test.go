package services

import (
	"testing"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterContent(t *testing.T) {
	svc := NewModerationService(nil)

	cases := []struct {
		name       string
		text       string
		ok         bool
		wantReason string
	}{
		{"empty is fine", "", true, ""},
		{"plain text passes", "A short reflection on patience.", true, ""},
		{"banned word", "this is spam content", false, "inappropriate_language"},
		{"url", "visit https://example.com for more", false, "url_not_allowed"},
		{"email", "reach me at someone@example.com", false, "contact_info_not_allowed"},
		{"phone", "call 555-123-4567 anytime", false, "contact_info_not_allowed"},
		{"repeated chars", "pleaseeeee approve this", false, "spam_detected"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := svc.FilterContent(tc.text)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.wantReason, reason)
		})
	}
}

func TestCreateReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)
	owner := seedUser(t, db, roles.User)
	reporter := seedUser(t, db, roles.User)
	item := seedItem(t, db, owner, models.StatusApproved, true)

	report, err := svc.CreateReport(reporter.ID, &dto.CreateReportRequest{
		ContentID:   item.ID,
		ContentKind: models.KindDua,
		Reason:      "inaccurate",
		Description: "The attribution looks wrong.",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", report.Status)
	assert.Equal(t, reporter.ID, report.ReporterID)
}

func TestCreateReportValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)
	owner := seedUser(t, db, roles.User)
	reporter := seedUser(t, db, roles.User)
	item := seedItem(t, db, owner, models.StatusApproved, true)

	_, err := svc.CreateReport(reporter.ID, &dto.CreateReportRequest{
		ContentID:   item.ID,
		ContentKind: models.KindDua,
		Reason:      "disliked",
	})
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	_, err = svc.CreateReport(reporter.ID, &dto.CreateReportRequest{
		ContentID:   uuid.New(),
		ContentKind: models.KindDua,
		Reason:      "spam",
	})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestActionReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)
	owner := seedUser(t, db, roles.User)
	reporter := seedUser(t, db, roles.User)
	item := seedItem(t, db, owner, models.StatusApproved, true)

	report, err := svc.CreateReport(reporter.ID, &dto.CreateReportRequest{
		ContentID:   item.ID,
		ContentKind: models.KindDua,
		Reason:      "spam",
	})
	require.NoError(t, err)

	// A report cannot be moved back to pending.
	err = svc.ActionReport(report.ID, &dto.ActionReportRequest{Status: "pending"})
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	err = svc.ActionReport(report.ID, &dto.ActionReportRequest{Status: "resolved", AdminNotes: "removed"})
	require.NoError(t, err)

	reports, _, err := svc.ListReports("resolved", 20, 0)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "removed", reports[0].AdminNotes)

	err = svc.ActionReport(uuid.New(), &dto.ActionReportRequest{Status: "dismissed"})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestReportStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)
	owner := seedUser(t, db, roles.User)
	reporter := seedUser(t, db, roles.User)
	item := seedItem(t, db, owner, models.StatusApproved, true)

	for _, reason := range []string{"spam", "spam", "inaccurate"} {
		_, err := svc.CreateReport(reporter.ID, &dto.CreateReportRequest{
			ContentID:   item.ID,
			ContentKind: models.KindDua,
			Reason:      reason,
		})
		require.NoError(t, err)
	}

	stats, err := svc.ReportStats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.ByReason["spam"])
	assert.EqualValues(t, 3, stats.ByStatus["pending"])
}
