package services

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var BannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"ass", "asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nude", "nudes",
	"spam", "scam", "scammer", "phishing", "malware",
}

// ModerationService combines the pre-submission content filter with the
// member report workflow.
type ModerationService struct {
	db                  *gorm.DB
	bannedWordRegexps   []*regexp.Regexp
	urlPattern          *regexp.Regexp
	emailPattern        *regexp.Regexp
	phonePattern        *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	allCapsPattern      *regexp.Regexp
	compiled            bool
	mu                  sync.RWMutex
}

func NewModerationService(db *gorm.DB) *ModerationService {
	ms := &ModerationService{db: db}
	ms.compilePatterns()
	return ms
}

func (ms *ModerationService) compilePatterns() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.compiled {
		return
	}

	ms.bannedWordRegexps = make([]*regexp.Regexp, 0, len(BannedWords))
	for _, word := range BannedWords {
		pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
		re, err := regexp.Compile(pattern)
		if err == nil {
			ms.bannedWordRegexps = append(ms.bannedWordRegexps, re)
		}
	}

	ms.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	ms.emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	ms.phonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`)
	ms.repeatedCharPattern = regexp.MustCompile(`(?i)(a{4,}|b{4,}|c{4,}|d{4,}|e{4,}|f{4,}|g{4,}|h{4,}|i{4,}|j{4,}|k{4,}|l{4,}|m{4,}|n{4,}|o{4,}|p{4,}|q{4,}|r{4,}|s{4,}|t{4,}|u{4,}|v{4,}|w{4,}|x{4,}|y{4,}|z{4,}|!{4,}|\?{4,}|\.{4,})`)
	ms.allCapsPattern = regexp.MustCompile(`[A-Z]{5,}`)
	ms.compiled = true
}

// FilterContent screens user-authored text before it is stored. It returns
// false plus a reason code when the text violates submission rules.
func (ms *ModerationService) FilterContent(text string) (bool, string) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if text == "" {
		return true, ""
	}
	for _, re := range ms.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if ms.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if ms.emailPattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if ms.phonePattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if ms.repeatedCharPattern.MatchString(text) {
		return false, "spam_detected"
	}
	capsMatches := ms.allCapsPattern.FindAllString(text, -1)
	if len(capsMatches) > 2 {
		return false, "excessive_caps"
	}
	return true, ""
}

func (ms *ModerationService) GetRejectionMessage(reason string) string {
	messages := map[string]string{
		"inappropriate_language":   "Your submission contains inappropriate language.",
		"url_not_allowed":          "URLs and web links are not allowed.",
		"contact_info_not_allowed": "Contact information is not allowed.",
		"spam_detected":            "Your submission appears to be spam.",
		"excessive_caps":           "Please avoid using excessive capital letters.",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "Your submission does not meet our content guidelines."
}

func (s *ModerationService) CreateReport(reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	const op = "moderation.CreateReport"

	if !contains(models.ReportReasons, req.Reason) {
		return nil, apperr.E(apperr.InvalidArgument, op,
			"reason must be one of: "+strings.Join(models.ReportReasons, ", "))
	}
	if !validKind(req.ContentKind) {
		return nil, apperr.E(apperr.InvalidArgument, op, "invalid content kind")
	}

	var item models.ContentItem
	if err := s.db.First(&item, "id = ?", req.ContentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.NotFound, op, "Content not found")
		}
		return nil, apperr.E(apperr.Unavailable, op, "Failed to fetch content", err)
	}

	report := models.Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		ContentID:   req.ContentID,
		ContentKind: req.ContentKind,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      "pending",
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to create report", err)
	}
	return &report, nil
}

func (s *ModerationService) ListReports(status string, limit, offset int) ([]models.Report, int64, error) {
	const op = "moderation.ListReports"

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var reports []models.Report
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, apperr.E(apperr.Unavailable, op, "Failed to fetch reports", err)
	}
	return reports, total, nil
}

func (s *ModerationService) ActionReport(reportID uuid.UUID, req *dto.ActionReportRequest) error {
	const op = "moderation.ActionReport"

	if req.Status == "pending" || !contains(models.ReportStatuses, req.Status) {
		return apperr.E(apperr.InvalidArgument, op, "status must be reviewed, resolved, or dismissed")
	}

	result := s.db.Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":      req.Status,
			"admin_notes": req.AdminNotes,
		})
	if result.Error != nil {
		return apperr.E(apperr.Unavailable, op, "Failed to update report", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.E(apperr.NotFound, op, "Report not found")
	}
	return nil
}

func (s *ModerationService) ReportStats() (*dto.ReportStatsResponse, error) {
	const op = "moderation.ReportStats"

	stats := &dto.ReportStatsResponse{
		ByStatus: map[string]int64{},
		ByReason: map[string]int64{},
	}

	if err := s.db.Model(&models.Report{}).Count(&stats.Total).Error; err != nil {
		return nil, apperr.E(apperr.Unavailable, op, "Failed to fetch report stats", err)
	}

	var byStatus []struct {
		Status string
		N      int64
	}
	s.db.Model(&models.Report{}).Select("status, count(*) as n").Group("status").Find(&byStatus)
	for _, r := range byStatus {
		stats.ByStatus[r.Status] = r.N
	}

	var byReason []struct {
		Reason string
		N      int64
	}
	s.db.Model(&models.Report{}).Select("reason, count(*) as n").Group("reason").Find(&byReason)
	for _, r := range byReason {
		stats.ByReason[r.Reason] = r.N
	}

	return stats, nil
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
