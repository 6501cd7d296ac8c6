// Package service provides application use cases.
package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"trip-feed-service/internal/domain"
)

// FeedService composes the tips feed for one viewer.
type FeedService struct {
	tips   domain.TipRepository
	logger *zap.Logger
}

// NewFeedService creates a new FeedService.
func NewFeedService(tips domain.TipRepository, logger *zap.Logger) *FeedService {
	return &FeedService{
		tips:   tips,
		logger: logger,
	}
}

// GetFeed assembles one feed page for the viewer.
//
// Each page blends two sources: fresh filter matches (up to 40% of the
// page) and, when the relevancy flag is on, a window of the
// relevancy-ordered candidate list. With every flag off this reduces
// to a plain recency feed.
func (s *FeedService) GetFeed(ctx context.Context, viewer domain.Identity, params domain.FeedParams) ([]domain.FeedItem, error) {
	params.Validate()

	s.logger.Debug("composing feed",
		zap.Int("user_id", viewer.ID),
		zap.Int("page", params.Page),
		zap.Int("page_size", params.PageSize),
		zap.Bool("city_interest", params.Filter.CityInterest),
		zap.Bool("follows", params.Filter.Follows),
		zap.Bool("relevancy", params.Filter.Relevancy),
	)

	var relevancySorted []*domain.Tip
	if params.Filter.Relevancy {
		candidates, err := s.tips.FeedCandidates(ctx, viewer.ID, params.Filter)
		if err != nil {
			s.logger.Error("feed candidate fetch failed", zap.Error(err))
			return nil, err
		}
		relevancySorted = domain.SortByRelevancyPerDay(candidates)
	}

	fresh, err := s.tips.FeedPage(
		ctx,
		viewer.ID,
		params.Filter,
		domain.TipIDs(relevancySorted),
		params.PageSize*(params.Page-1),
		domain.FreshLimit(params.PageSize),
	)
	if err != nil {
		s.logger.Error("feed page fetch failed", zap.Error(err))
		return nil, err
	}

	page := append(fresh, domain.RelevancySlice(relevancySorted, params.Page, params.PageSize)...)

	items, err := s.annotate(ctx, viewer, page)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("feed composed",
		zap.Int("fresh", len(fresh)),
		zap.Int("total", len(items)),
	)

	return items, nil
}

// annotate decorates each tip with the per-viewer feed fields. Comment
// counts are independent reads, so they are issued concurrently and
// awaited jointly.
func (s *FeedService) annotate(ctx context.Context, viewer domain.Identity, tips []*domain.Tip) ([]domain.FeedItem, error) {
	items := make([]domain.FeedItem, len(tips))
	errs := make([]error, len(tips))

	var wg sync.WaitGroup
	for i, tip := range tips {
		wg.Add(1)
		go func(idx int, t *domain.Tip) {
			defer wg.Done()

			comments, err := s.tips.CommentsCount(ctx, t.ID)
			if err != nil {
				errs[idx] = err
				return
			}

			items[idx] = domain.FeedItem{
				Tip:            *t,
				IsLiked:        t.IsLikedBy(viewer.ID),
				LikesAmount:    len(t.Likes),
				CommentsAmount: comments,
			}
		}(i, tip)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.logger.Error("comment count fetch failed", zap.Error(err))
			return nil, err
		}
	}

	return items, nil
}
