package service

import (
	"context"

	"go.uber.org/zap"

	"trip-feed-service/internal/domain"
)

// ProximityService ranks places by distance from an anchor place.
// Candidate sets are read fresh from storage on every call; ranking
// itself is pure.
type ProximityService struct {
	places domain.PlaceRepository
	logger *zap.Logger
}

// NewProximityService creates a new ProximityService.
func NewProximityService(places domain.PlaceRepository, logger *zap.Logger) *ProximityService {
	return &ProximityService{
		places: places,
		logger: logger,
	}
}

// ClosestCities returns cities ordered by ascending distance from the
// given city. page/pageSize of 0 return the full ordered set.
func (s *ProximityService) ClosestCities(ctx context.Context, cityID, page, pageSize int) ([]domain.RankedPlace[domain.City], error) {
	cities, err := s.places.Cities(ctx)
	if err != nil {
		s.logger.Error("city fetch failed", zap.Error(err))
		return nil, err
	}

	return domain.RankByProximity(cityID, cities, page, pageSize), nil
}

// ClosestRegions returns regions ordered by ascending distance from
// the given region.
func (s *ProximityService) ClosestRegions(ctx context.Context, regionID, page, pageSize int) ([]domain.RankedPlace[domain.Region], error) {
	regions, err := s.places.Regions(ctx)
	if err != nil {
		s.logger.Error("region fetch failed", zap.Error(err))
		return nil, err
	}

	return domain.RankByProximity(regionID, regions, page, pageSize), nil
}

// ClosestCountries returns countries ordered by ascending distance
// from the given country.
func (s *ProximityService) ClosestCountries(ctx context.Context, countryID, page, pageSize int) ([]domain.RankedPlace[domain.Country], error) {
	countries, err := s.places.Countries(ctx)
	if err != nil {
		s.logger.Error("country fetch failed", zap.Error(err))
		return nil, err
	}

	return domain.RankByProximity(countryID, countries, page, pageSize), nil
}
