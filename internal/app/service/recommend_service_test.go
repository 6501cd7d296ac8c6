package service

import (
	"context"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"trip-feed-service/internal/domain"
)

func equatorCity(id int, lng float64) domain.City {
	return domain.City{ID: id, Name: "c", RegionID: 1, Latitude: 0, Longitude: lng}
}

func newRecommendService(places *fakePlaceRepo, interests, trendingInterests *fakeInterestRepo) *RecommendService {
	logger := zap.NewNop()
	proximity := NewProximityService(places, logger)
	ranking := NewRankingService(places, trendingInterests, &fakeVisitRepo{}, &fakeUserRepo{}, nil, 0, logger)
	rnd := rand.New(rand.NewSource(42))
	return NewRecommendService(interests, proximity, ranking, rnd, logger)
}

func TestRecommendService_ProximityCap(t *testing.T) {
	// Two interest anchors far apart, each surrounded by six closer
	// cities. With pageSize 10 the proximity share caps at 8.
	anchor1 := equatorCity(1, 0)
	anchor2 := equatorCity(2, 100)

	cities := []domain.City{anchor1, anchor2}
	for i := 1; i <= 6; i++ {
		cities = append(cities, equatorCity(100+i, float64(i)))
		cities = append(cities, equatorCity(200+i, 100+float64(i)))
	}

	places := &fakePlaceRepo{cities: cities}
	interests := &fakeInterestRepo{recentCities: []domain.City{anchor1, anchor2}}
	svc := newRecommendService(places, interests, &fakeInterestRepo{})

	got, err := svc.Recommend(context.Background(), domain.Identity{ID: 7}, 1, 10)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	if len(got) != 8 {
		t.Fatalf("got %d cities, want 8 (80%% of page)", len(got))
	}

	seen := make(map[int]bool)
	for _, c := range got {
		if c.ID == anchor1.ID || c.ID == anchor2.ID {
			t.Errorf("interest city %d leaked into recommendations", c.ID)
		}
		if seen[c.ID] {
			t.Errorf("duplicate city %d", c.ID)
		}
		seen[c.ID] = true
	}

	// Each anchor contributes its five nearest neighbors until the cap.
	for _, id := range []int{101, 102, 103, 104, 105} {
		if !seen[id] {
			t.Errorf("expected neighbor %d of first anchor", id)
		}
	}
}

func TestRecommendService_TrendingBackfill(t *testing.T) {
	anchor := equatorCity(1, 0)
	n1 := equatorCity(101, 1)
	n2 := equatorCity(102, 2)

	places := &fakePlaceRepo{
		cities: []domain.City{anchor, n1, n2},
		details: map[int]domain.CityDetail{
			1:   {City: anchor},
			101: {City: n1},
			300: {City: equatorCity(300, 50)},
		},
	}
	interests := &fakeInterestRepo{recentCities: []domain.City{anchor}}

	// Trending lists the anchor itself and an already-picked neighbor;
	// both must be skipped when topping up the page.
	trendingInterests := &fakeInterestRepo{
		total: 10,
		top: []domain.CityInterestCount{
			{CityID: 1, Count: 5},
			{CityID: 101, Count: 3},
			{CityID: 300, Count: 2},
		},
	}
	svc := newRecommendService(places, interests, trendingInterests)

	got, err := svc.Recommend(context.Background(), domain.Identity{ID: 7}, 1, 5)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	ids := make(map[int]bool)
	for _, c := range got {
		if ids[c.ID] {
			t.Errorf("duplicate city %d", c.ID)
		}
		ids[c.ID] = true
	}

	if ids[1] {
		t.Error("interest city leaked in via trending")
	}
	if !ids[101] || !ids[102] {
		t.Errorf("missing proximity picks, got %v", ids)
	}
	if !ids[300] {
		t.Errorf("trending city 300 not backfilled, got %v", ids)
	}
	if len(got) != 3 {
		t.Errorf("got %d cities, want 3", len(got))
	}
}

func TestRecommendService_NoInterests_AllTrending(t *testing.T) {
	places := &fakePlaceRepo{
		details: map[int]domain.CityDetail{
			300: {City: equatorCity(300, 10)},
			301: {City: equatorCity(301, 20)},
		},
	}
	trendingInterests := &fakeInterestRepo{
		total: 5,
		top: []domain.CityInterestCount{
			{CityID: 300, Count: 3},
			{CityID: 301, Count: 2},
		},
	}
	svc := newRecommendService(places, &fakeInterestRepo{}, trendingInterests)

	got, err := svc.Recommend(context.Background(), domain.Identity{ID: 7}, 1, 10)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d cities, want 2", len(got))
	}
}
