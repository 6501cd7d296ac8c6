package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"trip-feed-service/internal/domain"
)

// RankingService produces the trending, visit and rating leaderboards
// and the aggregate city/country pages built on top of them.
//
// When a cache is configured, leaderboard reads are served from it and
// recomputed on miss; the ranking refresher job warms the same keys
// periodically so most requests never touch the grouping queries.
type RankingService struct {
	places    domain.PlaceRepository
	interests domain.InterestRepository
	visits    domain.VisitRepository
	users     domain.UserRepository
	cache     domain.Cache
	cacheTTL  time.Duration
	logger    *zap.Logger

	now func() time.Time
}

// NewRankingService creates a new RankingService. cache may be nil.
func NewRankingService(
	places domain.PlaceRepository,
	interests domain.InterestRepository,
	visits domain.VisitRepository,
	users domain.UserRepository,
	cache domain.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *RankingService {
	return &RankingService{
		places:    places,
		interests: interests,
		visits:    visits,
		users:     users,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// rankingPositionDepth is how deep the leaderboards are scanned when
// resolving one place's position for its page view.
const rankingPositionDepth = 100

// Trending returns the cities with the most interest events in the
// trailing month, with month-over-month variation.
func (s *RankingService) Trending(ctx context.Context, page, count int) (*domain.TrendingResult, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	key := fmt.Sprintf("trending:p%d:c%d", page, count)
	var cached domain.TrendingResult
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	today := s.now().UTC()
	oneMonthAgo := today.AddDate(0, -1, 0)
	twoMonthsAgo := today.AddDate(0, -2, 0)

	totalInterest, err := s.interests.CountInWindow(ctx, oneMonthAgo, today)
	if err != nil {
		return nil, err
	}

	current, err := s.interests.TopCities(ctx, oneMonthAgo, today, count*(page-1), count)
	if err != nil {
		return nil, err
	}

	if len(current) == 0 {
		result := &domain.TrendingResult{TotalInterest: totalInterest, Cities: []domain.TrendingCity{}}
		s.cacheSet(ctx, key, result)
		return result, nil
	}

	cityIDs := make([]int, len(current))
	for i, c := range current {
		cityIDs[i] = c.CityID
	}

	prior, err := s.interests.CountsForCities(ctx, cityIDs, twoMonthsAgo, oneMonthAgo)
	if err != nil {
		return nil, err
	}

	details, err := s.places.CitiesByIDs(ctx, cityIDs)
	if err != nil {
		return nil, err
	}
	detailByID := make(map[int]domain.CityDetail, len(details))
	for _, d := range details {
		detailByID[d.ID] = d
	}

	cities := make([]domain.TrendingCity, 0, len(current))
	for _, c := range current {
		detail, ok := detailByID[c.CityID]
		if !ok {
			continue
		}

		entry := domain.TrendingCity{
			CityDetail:     detail,
			InterestsCount: c.Count,
			Variation:      c.Count - prior[c.CityID],
		}
		if totalInterest > 0 {
			pct := domain.Round1(float64(c.Count) / float64(totalInterest) * 100)
			entry.PercentFromTotal = &pct
		}
		if priorCount := prior[c.CityID]; priorCount > 0 {
			pct := domain.Round1(float64(entry.Variation) / float64(priorCount) * 100)
			entry.VariationPercentage = &pct
		}

		cities = append(cities, entry)
	}

	result := &domain.TrendingResult{TotalInterest: totalInterest, Cities: cities}
	s.cacheSet(ctx, key, result)

	return result, nil
}

// VisitRanking returns cities ordered by visit count.
func (s *RankingService) VisitRanking(ctx context.Context, p domain.CityRankingParams) ([]domain.CityVisitRank, error) {
	p.Validate()

	key := fmt.Sprintf("ranking:city:visit:p%d:c%d:%s:d%d", p.Page, p.Count, p.CountryIso2, p.MaxAgeDays)
	var cached []domain.CityVisitRank
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	ranking, err := s.visits.VisitRanking(ctx, p)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, ranking)

	return ranking, nil
}

// RatingRanking returns cities ordered by average rating.
func (s *RankingService) RatingRanking(ctx context.Context, p domain.CityRankingParams) ([]domain.CityRatingRank, error) {
	p.Validate()

	key := fmt.Sprintf("ranking:city:rating:p%d:c%d:%s:d%d", p.Page, p.Count, p.CountryIso2, p.MaxAgeDays)
	var cached []domain.CityRatingRank
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	ranking, err := s.visits.RatingRanking(ctx, p)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, ranking)

	return ranking, nil
}

// CountryVisitRanking returns countries ordered by visit count.
func (s *RankingService) CountryVisitRanking(ctx context.Context, p domain.CountryRankingParams) ([]domain.CountryVisitRank, error) {
	p.Validate()
	return s.visits.CountryVisitRanking(ctx, p)
}

// CountryRatingRanking returns countries ordered by average rating.
func (s *RankingService) CountryRatingRanking(ctx context.Context, p domain.CountryRankingParams) ([]domain.CountryRatingRank, error) {
	p.Validate()
	return s.visits.CountryRatingRanking(ctx, p)
}

// CityPage assembles the aggregate city view. viewer may be nil for
// anonymous requests. Returns domain.ErrNotFound for unknown cities.
func (s *RankingService) CityPage(ctx context.Context, id int, viewer *domain.Identity) (*domain.CityPage, error) {
	city, err := s.places.CityByID(ctx, id)
	if err != nil {
		return nil, err
	}

	page := &domain.CityPage{CityDetail: *city}

	if page.AverageRating, err = s.visits.AverageRatingByCity(ctx, id); err != nil {
		return nil, err
	}
	if page.VisitsCount, err = s.visits.VisitsCountByCity(ctx, id); err != nil {
		return nil, err
	}
	if page.ReviewsCount, err = s.visits.ReviewsCountByCity(ctx, id); err != nil {
		return nil, err
	}
	if page.InterestsCount, err = s.interests.CountByCity(ctx, id); err != nil {
		return nil, err
	}
	if page.ResidentsCount, err = s.users.ResidentsCountByCity(ctx, id); err != nil {
		return nil, err
	}

	if viewer != nil {
		if page.IsInterested, err = s.interests.IsUserInterested(ctx, id, viewer.ID); err != nil {
			return nil, err
		}
		if page.UserVisit, err = s.visits.UserVisit(ctx, id, viewer.ID); err != nil {
			return nil, err
		}
	}

	ratingRanking, err := s.RatingRanking(ctx, domain.CityRankingParams{Count: rankingPositionDepth})
	if err != nil {
		return nil, err
	}
	for i, r := range ratingRanking {
		if r.ID == id {
			pos := i + 1
			page.PositionInRatingRanking = &pos
			break
		}
	}

	visitRanking, err := s.VisitRanking(ctx, domain.CityRankingParams{Count: rankingPositionDepth})
	if err != nil {
		return nil, err
	}
	for i, r := range visitRanking {
		if r.ID == id {
			pos := i + 1
			page.PositionInVisitRanking = &pos
			break
		}
	}

	return page, nil
}

// CountryPage assembles the aggregate country view. Returns
// domain.ErrNotFound for unknown iso2 codes.
func (s *RankingService) CountryPage(ctx context.Context, iso2 string) (*domain.CountryPage, error) {
	country, err := s.places.CountryByIso2(ctx, iso2)
	if err != nil {
		return nil, err
	}

	page := &domain.CountryPage{Country: *country}

	if page.AverageRating, err = s.visits.AverageRatingByCountry(ctx, iso2); err != nil {
		return nil, err
	}
	if page.VisitsCount, err = s.visits.VisitsCountByCountry(ctx, iso2); err != nil {
		return nil, err
	}
	if page.ReviewsCount, err = s.visits.ReviewsCountByCountry(ctx, iso2); err != nil {
		return nil, err
	}
	if page.InterestsCount, err = s.interests.CountByCountry(ctx, iso2); err != nil {
		return nil, err
	}
	if page.ResidentsCount, err = s.users.ResidentsCountByCountry(ctx, iso2); err != nil {
		return nil, err
	}

	ratingRanking, err := s.CountryRatingRanking(ctx, domain.CountryRankingParams{Count: 20})
	if err != nil {
		return nil, err
	}
	for i, r := range ratingRanking {
		if r.Iso2 == iso2 {
			pos := i + 1
			page.PositionInRatingRanking = &pos
			break
		}
	}

	visitRanking, err := s.CountryVisitRanking(ctx, domain.CountryRankingParams{Count: 20})
	if err != nil {
		return nil, err
	}
	for i, r := range visitRanking {
		if r.Iso2 == iso2 {
			pos := i + 1
			page.PositionInVisitRanking = &pos
			break
		}
	}

	return page, nil
}

// Refresh recomputes the leaderboard pages the read paths serve most
// and rewrites their cache entries. Called by the ranking refresher
// job; a no-op without a cache.
func (s *RankingService) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	if err := s.cache.Clear(ctx); err != nil {
		return err
	}

	if _, err := s.Trending(ctx, 1, 10); err != nil {
		return fmt.Errorf("refreshing trending: %w", err)
	}
	for _, count := range []int{10, rankingPositionDepth} {
		if _, err := s.VisitRanking(ctx, domain.CityRankingParams{Page: 1, Count: count}); err != nil {
			return fmt.Errorf("refreshing visit ranking: %w", err)
		}
		if _, err := s.RatingRanking(ctx, domain.CityRankingParams{Page: 1, Count: count}); err != nil {
			return fmt.Errorf("refreshing rating ranking: %w", err)
		}
	}

	return nil
}

// cacheGet loads and unmarshals a cached value. A miss, a nil cache or
// a decode failure all report false.
func (s *RankingService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("discarding undecodable cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}

	return true
}

// cacheSet stores a value best-effort; cache failures never fail the
// read path.
func (s *RankingService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
