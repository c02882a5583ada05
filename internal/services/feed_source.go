package services

import (
	"context"

	"github.com/mehedialhasan/tadabbur-backend/internal/feed"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"

	"github.com/google/uuid"
)

// FeedSource adapts ContentService to the feed engine's Source interface.
type FeedSource struct {
	content *ContentService
}

func NewFeedSource(content *ContentService) *FeedSource {
	return &FeedSource{content: content}
}

var _ feed.Source = (*FeedSource)(nil)

func (s *FeedSource) ListOwned(_ context.Context, viewerID uuid.UUID) ([]models.ContentItem, error) {
	return s.content.ListOwned(viewerID)
}

func (s *FeedSource) ListPublic(_ context.Context) ([]models.ContentItem, error) {
	return s.content.ListPublic("")
}

func (s *FeedSource) LikeStatus(_ context.Context, viewerID, itemID uuid.UUID) (bool, int, error) {
	status, err := s.content.LikeStatus(viewerID, itemID)
	if err != nil {
		return false, 0, err
	}
	return status.IsLiked, status.LikesCount, nil
}

func (s *FeedSource) Like(_ context.Context, viewerID, itemID uuid.UUID) (int, error) {
	return s.content.Like(viewerID, itemID)
}

func (s *FeedSource) Unlike(_ context.Context, viewerID, itemID uuid.UUID) (int, error) {
	return s.content.Unlike(viewerID, itemID)
}
