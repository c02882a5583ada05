package dto

import "github.com/google/uuid"

type CreateContentRequest struct {
	Kind           string `json:"kind"`
	Title          string `json:"title"`
	Purpose        string `json:"purpose"`
	ArabicText     string `json:"arabic_text"`
	EnglishMeaning string `json:"english_meaning"`
	NativeMeaning  string `json:"native_meaning"`
	Body           string `json:"body"`
	Category       string `json:"category"`
	IsPublic       bool   `json:"is_public"`
}

type UpdateContentRequest struct {
	Title          *string `json:"title"`
	Purpose        *string `json:"purpose"`
	ArabicText     *string `json:"arabic_text"`
	EnglishMeaning *string `json:"english_meaning"`
	NativeMeaning  *string `json:"native_meaning"`
	Body           *string `json:"body"`
	Category       *string `json:"category"`
	IsPublic       *bool   `json:"is_public"`
}

type LikeStatusResponse struct {
	IsLiked    bool `json:"is_liked"`
	LikesCount int  `json:"likes_count"`
}

type RejectContentRequest struct {
	Reason string `json:"reason"`
}

type VerifyContentRequest struct {
	Verified bool `json:"verified"`
}

type CreateReportRequest struct {
	ContentID   uuid.UUID `json:"content_id"`
	ContentKind string    `json:"content_kind"`
	Reason      string    `json:"reason"`
	Description string    `json:"description"`
}

type ActionReportRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}
