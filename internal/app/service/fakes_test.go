package service

import (
	"context"
	"time"

	"trip-feed-service/internal/domain"
)

// In-memory port implementations for service tests. Each fake only
// implements the behavior the tests exercise; everything else returns
// zero values.

type fakeTipRepo struct {
	candidates []*domain.Tip
	pool       []*domain.Tip // FeedPage source, newest first
	comments   map[int]int

	lastExcludeIDs []int
	lastOffset     int
	lastLimit      int
}

func (f *fakeTipRepo) FeedCandidates(_ context.Context, _ int, _ domain.FeedFilter) ([]*domain.Tip, error) {
	return f.candidates, nil
}

func (f *fakeTipRepo) FeedPage(_ context.Context, _ int, _ domain.FeedFilter, excludeIDs []int, offset, limit int) ([]*domain.Tip, error) {
	f.lastExcludeIDs = excludeIDs
	f.lastOffset = offset
	f.lastLimit = limit

	excluded := make(map[int]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	var matching []*domain.Tip
	for _, t := range f.pool {
		if !excluded[t.ID] {
			matching = append(matching, t)
		}
	}

	if offset >= len(matching) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matching) {
		end = len(matching)
	}

	return matching[offset:end], nil
}

func (f *fakeTipRepo) CommentsCount(_ context.Context, tipID int) (int, error) {
	return f.comments[tipID], nil
}

type fakePlaceRepo struct {
	cities    []domain.City
	regions   []domain.Region
	countries []domain.Country
	details   map[int]domain.CityDetail
}

func (f *fakePlaceRepo) Cities(context.Context) ([]domain.City, error)    { return f.cities, nil }
func (f *fakePlaceRepo) Regions(context.Context) ([]domain.Region, error) { return f.regions, nil }

func (f *fakePlaceRepo) Countries(context.Context) ([]domain.Country, error) {
	return f.countries, nil
}

func (f *fakePlaceRepo) CityByID(_ context.Context, id int) (*domain.CityDetail, error) {
	if d, ok := f.details[id]; ok {
		return &d, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePlaceRepo) CitiesByIDs(_ context.Context, ids []int) ([]domain.CityDetail, error) {
	var out []domain.CityDetail
	for _, id := range ids {
		if d, ok := f.details[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakePlaceRepo) CountryByIso2(_ context.Context, iso2 string) (*domain.Country, error) {
	for _, c := range f.countries {
		if c.Iso2 == iso2 {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeInterestRepo struct {
	total        int
	top          []domain.CityInterestCount
	prior        map[int]int
	recentCities []domain.City
	countsByCity map[int]int
	interested   bool
}

func (f *fakeInterestRepo) CountInWindow(context.Context, time.Time, time.Time) (int, error) {
	return f.total, nil
}

func (f *fakeInterestRepo) TopCities(_ context.Context, _, _ time.Time, offset, limit int) ([]domain.CityInterestCount, error) {
	if offset >= len(f.top) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.top) {
		end = len(f.top)
	}
	return f.top[offset:end], nil
}

func (f *fakeInterestRepo) CountsForCities(_ context.Context, cityIDs []int, _, _ time.Time) (map[int]int, error) {
	out := make(map[int]int)
	for _, id := range cityIDs {
		if n, ok := f.prior[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *fakeInterestRepo) RecentInterestCities(_ context.Context, _, offset, limit int) ([]domain.City, error) {
	if offset >= len(f.recentCities) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.recentCities) {
		end = len(f.recentCities)
	}
	return f.recentCities[offset:end], nil
}

func (f *fakeInterestRepo) CountByCity(_ context.Context, cityID int) (int, error) {
	return f.countsByCity[cityID], nil
}

func (f *fakeInterestRepo) CountByCountry(context.Context, string) (int, error) { return 0, nil }

func (f *fakeInterestRepo) IsUserInterested(context.Context, int, int) (bool, error) {
	return f.interested, nil
}

type fakeVisitRepo struct {
	visitRank  []domain.CityVisitRank
	ratingRank []domain.CityRatingRank
	avgRating  *float64
	visits     int
	reviews    int
	userVisit  *domain.VisitRecord
}

func (f *fakeVisitRepo) VisitRanking(context.Context, domain.CityRankingParams) ([]domain.CityVisitRank, error) {
	return f.visitRank, nil
}

func (f *fakeVisitRepo) RatingRanking(context.Context, domain.CityRankingParams) ([]domain.CityRatingRank, error) {
	return f.ratingRank, nil
}

func (f *fakeVisitRepo) CountryVisitRanking(context.Context, domain.CountryRankingParams) ([]domain.CountryVisitRank, error) {
	return nil, nil
}

func (f *fakeVisitRepo) CountryRatingRanking(context.Context, domain.CountryRankingParams) ([]domain.CountryRatingRank, error) {
	return nil, nil
}

func (f *fakeVisitRepo) AverageRatingByCity(context.Context, int) (*float64, error) {
	return f.avgRating, nil
}

func (f *fakeVisitRepo) VisitsCountByCity(context.Context, int) (int, error)  { return f.visits, nil }
func (f *fakeVisitRepo) ReviewsCountByCity(context.Context, int) (int, error) { return f.reviews, nil }

func (f *fakeVisitRepo) AverageRatingByCountry(context.Context, string) (*float64, error) {
	return nil, nil
}

func (f *fakeVisitRepo) VisitsCountByCountry(context.Context, string) (int, error)  { return 0, nil }
func (f *fakeVisitRepo) ReviewsCountByCountry(context.Context, string) (int, error) { return 0, nil }

func (f *fakeVisitRepo) UserVisit(context.Context, int, int) (*domain.VisitRecord, error) {
	return f.userVisit, nil
}

type fakeUserRepo struct {
	residents map[int]int
}

func (f *fakeUserRepo) ResidentsCountByCity(_ context.Context, cityID int) (int, error) {
	return f.residents[cityID], nil
}

func (f *fakeUserRepo) ResidentsCountByCountry(context.Context, string) (int, error) {
	return 0, nil
}
