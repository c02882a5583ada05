package dto

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type UpdateUserStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// KindCounts breaks a content kind down by approval status.
type KindCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type ApprovalStatsResponse struct {
	Dua      KindCounts `json:"dua"`
	Blog     KindCounts `json:"blog"`
	Question KindCounts `json:"question"`
}

type PlatformStatsResponse struct {
	TotalUsers    int64            `json:"total_users"`
	ActiveUsers   int64            `json:"active_users"`
	UsersByRole   map[string]int64 `json:"users_by_role"`
	TotalContent  int64            `json:"total_content"`
	PendingReview int64            `json:"pending_review"`
}

type ReportStatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	ByReason map[string]int64 `json:"by_reason"`
}
