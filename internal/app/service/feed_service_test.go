package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"trip-feed-service/internal/domain"
)

func feedTip(id int, createdAt time.Time, likes, comments int) *domain.Tip {
	t := &domain.Tip{ID: id, UserID: 50, CityID: 1, CreatedAt: createdAt}
	for i := 0; i < likes; i++ {
		t.Likes = append(t.Likes, domain.EngagementEvent{SubjectID: id, ActorID: 100 + i, CreatedAt: createdAt})
	}
	for i := 0; i < comments; i++ {
		t.Comments = append(t.Comments, domain.EngagementEvent{SubjectID: id, ActorID: 200 + i, CreatedAt: createdAt})
	}
	return t
}

func TestFeedService_AllFiltersOff_RecencyOrder(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	repo := &fakeTipRepo{
		pool: []*domain.Tip{
			feedTip(3, now, 0, 0),
			feedTip(2, now.Add(-time.Hour), 0, 0),
			feedTip(1, now.Add(-2*time.Hour), 0, 0),
		},
		comments: map[int]int{},
	}
	svc := NewFeedService(repo, zap.NewNop())

	items, err := svc.GetFeed(context.Background(), domain.Identity{ID: 7}, domain.FeedParams{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("GetFeed() error: %v", err)
	}

	// No relevancy reordering: order is the repository's recency order.
	wantOrder := []int{3, 2, 1}
	if len(items) != len(wantOrder) {
		t.Fatalf("got %d items, want %d", len(items), len(wantOrder))
	}
	for i, id := range wantOrder {
		if items[i].ID != id {
			t.Errorf("position %d: got tip %d, want %d", i, items[i].ID, id)
		}
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Errorf("feed not in descending createdAt order at %d", i)
		}
	}

	// Relevancy off must not fetch nor exclude candidates.
	if len(repo.lastExcludeIDs) != 0 {
		t.Errorf("unexpected exclusion ids: %v", repo.lastExcludeIDs)
	}
	if repo.lastLimit != domain.FreshLimit(10) {
		t.Errorf("fresh limit = %d, want %d", repo.lastLimit, domain.FreshLimit(10))
	}
}

func TestFeedService_RelevancyComposition(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	// Same-day candidates with distinct engagement scores.
	hot := feedTip(10, now, 10, 10)    // score 21
	warm := feedTip(11, now, 2, 3)     // score 1.26
	cold := feedTip(12, now, 0, 0)     // score 0

	fresh := feedTip(20, now.Add(time.Hour), 0, 0)

	repo := &fakeTipRepo{
		candidates: []*domain.Tip{hot, warm, cold},
		pool:       []*domain.Tip{fresh, hot, warm, cold},
		comments:   map[int]int{10: 10, 11: 3, 12: 0, 20: 0},
	}
	svc := NewFeedService(repo, zap.NewNop())

	params := domain.FeedParams{
		Page:     1,
		PageSize: 10,
		Filter:   domain.FeedFilter{CityInterest: true, Relevancy: true},
	}
	items, err := svc.GetFeed(context.Background(), domain.Identity{ID: 7}, params)
	if err != nil {
		t.Fatalf("GetFeed() error: %v", err)
	}

	// All relevancy-listed ids must have been excluded from the fresh
	// fetch.
	if len(repo.lastExcludeIDs) != 3 {
		t.Fatalf("excluded %d ids, want 3", len(repo.lastExcludeIDs))
	}

	// Page layout: fresh matches first, then the relevancy window in
	// ascending score order.
	wantOrder := []int{20, 12, 11, 10}
	if len(items) != len(wantOrder) {
		t.Fatalf("got %d items, want %d", len(items), len(wantOrder))
	}
	for i, id := range wantOrder {
		if items[i].ID != id {
			t.Errorf("position %d: got tip %d, want %d", i, items[i].ID, id)
		}
	}
}

func TestFeedService_Annotations(t *testing.T) {
	now := time.Now()
	tip := feedTip(1, now, 3, 2)
	tip.Likes[1].ActorID = 7 // viewer liked it

	repo := &fakeTipRepo{
		pool:     []*domain.Tip{tip},
		comments: map[int]int{1: 2},
	}
	svc := NewFeedService(repo, zap.NewNop())

	items, err := svc.GetFeed(context.Background(), domain.Identity{ID: 7}, domain.FeedParams{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("GetFeed() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	item := items[0]
	if !item.IsLiked {
		t.Error("expected IsLiked for viewer who liked the tip")
	}
	if item.LikesAmount != 3 {
		t.Errorf("LikesAmount = %d, want 3", item.LikesAmount)
	}
	if item.CommentsAmount != 2 {
		t.Errorf("CommentsAmount = %d, want 2", item.CommentsAmount)
	}

	// Another viewer did not like it.
	items, err = svc.GetFeed(context.Background(), domain.Identity{ID: 999}, domain.FeedParams{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("GetFeed() error: %v", err)
	}
	if items[0].IsLiked {
		t.Error("IsLiked set for viewer who never liked the tip")
	}
}

func TestFeedService_EmptyCandidates(t *testing.T) {
	repo := &fakeTipRepo{comments: map[int]int{}}
	svc := NewFeedService(repo, zap.NewNop())

	items, err := svc.GetFeed(context.Background(), domain.Identity{ID: 1}, domain.FeedParams{
		Page:     1,
		PageSize: 10,
		Filter:   domain.FeedFilter{CityInterest: true, Follows: true, Relevancy: true},
	})
	if err != nil {
		t.Fatalf("GetFeed() error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty feed, got %d items", len(items))
	}
}
