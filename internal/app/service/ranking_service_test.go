package service

import (
	"context"
	"math"
	"testing"

	"go.uber.org/zap"

	"trip-feed-service/internal/domain"
)

func cityDetail(id int, name string) domain.CityDetail {
	return domain.CityDetail{
		City:        domain.City{ID: id, Name: name, RegionID: 1},
		Region:      "Test Region",
		CountryIso2: "BR",
		Country:     "Brazil",
	}
}

func newRankingService(places *fakePlaceRepo, interests *fakeInterestRepo, visits *fakeVisitRepo, users *fakeUserRepo) *RankingService {
	return NewRankingService(places, interests, visits, users, nil, 0, zap.NewNop())
}

func TestRankingService_Trending(t *testing.T) {
	places := &fakePlaceRepo{details: map[int]domain.CityDetail{
		1: cityDetail(1, "Lisbon"),
		2: cityDetail(2, "Porto"),
		3: cityDetail(3, "Faro"),
	}}
	interests := &fakeInterestRepo{
		total: 100,
		top: []domain.CityInterestCount{
			{CityID: 1, Count: 60},
			{CityID: 2, Count: 30},
			{CityID: 3, Count: 10},
		},
		prior: map[int]int{1: 40, 2: 0},
	}
	svc := newRankingService(places, interests, &fakeVisitRepo{}, &fakeUserRepo{})

	result, err := svc.Trending(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Trending() error: %v", err)
	}
	if result.TotalInterest != 100 {
		t.Errorf("TotalInterest = %d, want 100", result.TotalInterest)
	}
	if len(result.Cities) != 3 {
		t.Fatalf("got %d cities, want 3", len(result.Cities))
	}

	first := result.Cities[0]
	if first.ID != 1 || first.InterestsCount != 60 {
		t.Errorf("unexpected leader: %+v", first)
	}
	if first.Variation != 20 {
		t.Errorf("Variation = %d, want 20", first.Variation)
	}
	if first.VariationPercentage == nil || math.Abs(*first.VariationPercentage-50.0) > 1e-9 {
		t.Errorf("VariationPercentage = %v, want 50.0", first.VariationPercentage)
	}
	if first.PercentFromTotal == nil || math.Abs(*first.PercentFromTotal-60.0) > 1e-9 {
		t.Errorf("PercentFromTotal = %v, want 60.0", first.PercentFromTotal)
	}

	// Prior window count of zero must map variation percentage to nil,
	// not a division error.
	second := result.Cities[1]
	if second.Variation != 30 {
		t.Errorf("Variation = %d, want 30", second.Variation)
	}
	if second.VariationPercentage != nil {
		t.Errorf("VariationPercentage = %v, want nil for zero prior count", *second.VariationPercentage)
	}

	// No prior record at all behaves like zero.
	third := result.Cities[2]
	if third.VariationPercentage != nil {
		t.Errorf("VariationPercentage = %v, want nil for absent prior count", *third.VariationPercentage)
	}
}

func TestRankingService_Trending_PercentagesSumBounded(t *testing.T) {
	places := &fakePlaceRepo{details: map[int]domain.CityDetail{
		1: cityDetail(1, "A"), 2: cityDetail(2, "B"), 3: cityDetail(3, "C"),
	}}
	interests := &fakeInterestRepo{
		total: 7,
		top: []domain.CityInterestCount{
			{CityID: 1, Count: 3},
			{CityID: 2, Count: 3},
			{CityID: 3, Count: 1},
		},
	}
	svc := newRankingService(places, interests, &fakeVisitRepo{}, &fakeUserRepo{})

	result, err := svc.Trending(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Trending() error: %v", err)
	}

	sum := 0.0
	for _, c := range result.Cities {
		if c.PercentFromTotal == nil {
			t.Fatalf("city %d missing percentFromTotal", c.ID)
		}
		sum += *c.PercentFromTotal
	}
	// The page covers every city with interest: percentages must sum
	// to 100 within rounding error.
	if sum > 100.05 {
		t.Errorf("percentFromTotal sum = %v, want <= 100 within rounding", sum)
	}
}

func TestRankingService_Trending_ZeroTotalInterest(t *testing.T) {
	places := &fakePlaceRepo{details: map[int]domain.CityDetail{1: cityDetail(1, "A")}}
	interests := &fakeInterestRepo{
		total: 0,
		top:   []domain.CityInterestCount{{CityID: 1, Count: 0}},
	}
	svc := newRankingService(places, interests, &fakeVisitRepo{}, &fakeUserRepo{})

	result, err := svc.Trending(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Trending() error: %v", err)
	}
	if result.Cities[0].PercentFromTotal != nil {
		t.Errorf("PercentFromTotal = %v, want nil for zero total", *result.Cities[0].PercentFromTotal)
	}
}

func TestRankingService_Trending_EmptyWindow(t *testing.T) {
	svc := newRankingService(
		&fakePlaceRepo{details: map[int]domain.CityDetail{}},
		&fakeInterestRepo{},
		&fakeVisitRepo{},
		&fakeUserRepo{},
	)

	result, err := svc.Trending(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Trending() error: %v", err)
	}
	if len(result.Cities) != 0 {
		t.Errorf("expected empty leaderboard, got %d entries", len(result.Cities))
	}
}

func TestRankingService_CityPage(t *testing.T) {
	rating := 4.5
	places := &fakePlaceRepo{details: map[int]domain.CityDetail{5: cityDetail(5, "Lisbon")}}
	interests := &fakeInterestRepo{countsByCity: map[int]int{5: 12}, interested: true}
	visits := &fakeVisitRepo{
		avgRating: &rating,
		visits:    30,
		reviews:   20,
		ratingRank: []domain.CityRatingRank{
			{CityDetail: cityDetail(9, "Porto"), AverageRating: 4.8},
			{CityDetail: cityDetail(5, "Lisbon"), AverageRating: 4.5},
		},
		visitRank: []domain.CityVisitRank{
			{CityDetail: cityDetail(5, "Lisbon"), TotalVisits: 30},
		},
	}
	users := &fakeUserRepo{residents: map[int]int{5: 1000}}

	svc := newRankingService(places, interests, visits, users)

	viewer := &domain.Identity{ID: 7, Username: "ana"}
	page, err := svc.CityPage(context.Background(), 5, viewer)
	if err != nil {
		t.Fatalf("CityPage() error: %v", err)
	}

	if page.Name != "Lisbon" {
		t.Errorf("Name = %q, want Lisbon", page.Name)
	}
	if !page.IsInterested {
		t.Error("expected IsInterested")
	}
	if page.AverageRating == nil || *page.AverageRating != 4.5 {
		t.Errorf("AverageRating = %v, want 4.5", page.AverageRating)
	}
	if page.VisitsCount != 30 || page.ReviewsCount != 20 || page.InterestsCount != 12 || page.ResidentsCount != 1000 {
		t.Errorf("unexpected counts: %+v", page)
	}
	if page.PositionInRatingRanking == nil || *page.PositionInRatingRanking != 2 {
		t.Errorf("PositionInRatingRanking = %v, want 2", page.PositionInRatingRanking)
	}
	if page.PositionInVisitRanking == nil || *page.PositionInVisitRanking != 1 {
		t.Errorf("PositionInVisitRanking = %v, want 1", page.PositionInVisitRanking)
	}
}

func TestRankingService_CityPage_NotFound(t *testing.T) {
	svc := newRankingService(
		&fakePlaceRepo{details: map[int]domain.CityDetail{}},
		&fakeInterestRepo{},
		&fakeVisitRepo{},
		&fakeUserRepo{},
	)

	_, err := svc.CityPage(context.Background(), 404, nil)
	if err != domain.ErrNotFound {
		t.Errorf("CityPage() error = %v, want ErrNotFound", err)
	}
}

func TestRankingService_CityPage_OutsideRankings(t *testing.T) {
	places := &fakePlaceRepo{details: map[int]domain.CityDetail{5: cityDetail(5, "Lisbon")}}
	svc := newRankingService(places, &fakeInterestRepo{}, &fakeVisitRepo{}, &fakeUserRepo{})

	page, err := svc.CityPage(context.Background(), 5, nil)
	if err != nil {
		t.Fatalf("CityPage() error: %v", err)
	}
	if page.PositionInRatingRanking != nil || page.PositionInVisitRanking != nil {
		t.Error("expected nil ranking positions for unranked city")
	}
}
