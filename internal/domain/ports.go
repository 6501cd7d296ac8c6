package domain

import (
	"context"
	"time"
)

// PlaceRepository reads places for proximity ranking and page views.
// Implementations: internal/infra/postgres/repository.go
type PlaceRepository interface {
	// Cities returns all cities with their coordinates.
	Cities(ctx context.Context) ([]City, error)

	// Regions returns all regions with their coordinates.
	Regions(ctx context.Context) ([]Region, error)

	// Countries returns all countries with their coordinates.
	Countries(ctx context.Context) ([]Country, error)

	// CityByID returns one city joined with its region and country.
	// Returns ErrNotFound when the city does not exist.
	CityByID(ctx context.Context, id int) (*CityDetail, error)

	// CitiesByIDs returns the given cities joined with region and
	// country, in no particular order. Missing ids are skipped.
	CitiesByIDs(ctx context.Context, ids []int) ([]CityDetail, error)

	// CountryByIso2 returns one country. Returns ErrNotFound when the
	// iso2 code is unknown.
	CountryByIso2(ctx context.Context, iso2 string) (*Country, error)
}

// TipRepository reads feed candidate tips with their engagement events
// preloaded.
type TipRepository interface {
	// FeedCandidates returns all tips matching the enabled filter
	// flags for the given viewer, newest first.
	FeedCandidates(ctx context.Context, userID int, f FeedFilter) ([]*Tip, error)

	// FeedPage returns tips matching the filters excluding the given
	// ids, newest first, with the given offset and limit.
	FeedPage(ctx context.Context, userID int, f FeedFilter, excludeIDs []int, offset, limit int) ([]*Tip, error)

	// CommentsCount returns the number of comments on one tip.
	CommentsCount(ctx context.Context, tipID int) (int, error)
}

// InterestRepository aggregates city-interest events.
type InterestRepository interface {
	// CountInWindow counts all interest events created inside the
	// window.
	CountInWindow(ctx context.Context, start, end time.Time) (int, error)

	// TopCities groups interest events inside the window by city,
	// ordered by descending count.
	TopCities(ctx context.Context, start, end time.Time, offset, limit int) ([]CityInterestCount, error)

	// CountsForCities counts interest events per city inside the
	// window, restricted to the given cities.
	CountsForCities(ctx context.Context, cityIDs []int, start, end time.Time) (map[int]int, error)

	// RecentInterestCities returns the cities the user most recently
	// declared interest in, newest declaration first.
	RecentInterestCities(ctx context.Context, userID, offset, limit int) ([]City, error)

	// CountByCity counts all interest events for one city.
	CountByCity(ctx context.Context, cityID int) (int, error)

	// CountByCountry counts all interest events for cities of one
	// country.
	CountByCountry(ctx context.Context, iso2 string) (int, error)

	// IsUserInterested reports whether the user currently declares
	// interest in the city.
	IsUserInterested(ctx context.Context, cityID, userID int) (bool, error)
}

// VisitRepository aggregates city-visit records.
type VisitRepository interface {
	// VisitRanking returns cities ordered by descending visit count.
	VisitRanking(ctx context.Context, p CityRankingParams) ([]CityVisitRank, error)

	// RatingRanking returns cities ordered by descending 1-decimal
	// average rating. Cities whose visits carry no rating are
	// excluded.
	RatingRanking(ctx context.Context, p CityRankingParams) ([]CityRatingRank, error)

	// CountryVisitRanking and CountryRatingRanking are the same
	// aggregations grouped by country.
	CountryVisitRanking(ctx context.Context, p CountryRankingParams) ([]CountryVisitRank, error)
	CountryRatingRanking(ctx context.Context, p CountryRankingParams) ([]CountryRatingRank, error)

	// AverageRatingByCity returns the 1-decimal mean of the city's
	// non-null ratings, nil when there are none.
	AverageRatingByCity(ctx context.Context, cityID int) (*float64, error)

	// VisitsCountByCity counts all visits; ReviewsCountByCity counts
	// only rated ones.
	VisitsCountByCity(ctx context.Context, cityID int) (int, error)
	ReviewsCountByCity(ctx context.Context, cityID int) (int, error)

	// Country-level aggregates over the cities of one country.
	AverageRatingByCountry(ctx context.Context, iso2 string) (*float64, error)
	VisitsCountByCountry(ctx context.Context, iso2 string) (int, error)
	ReviewsCountByCountry(ctx context.Context, iso2 string) (int, error)

	// UserVisit returns the user's visit of the city, nil when the
	// user has not visited it.
	UserVisit(ctx context.Context, cityID, userID int) (*VisitRecord, error)
}

// UserRepository reads user aggregates needed by place pages.
type UserRepository interface {
	// ResidentsCountByCity counts users whose home city is cityID.
	ResidentsCountByCity(ctx context.Context, cityID int) (int, error)

	// ResidentsCountByCountry counts users living in the country.
	ResidentsCountByCountry(ctx context.Context, iso2 string) (int, error)
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
