// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "trip-feed-service/internal/domain"

// FeedRequest represents the query parameters for the tip feed.
type FeedRequest struct {
	Page         int  `query:"page" validate:"omitempty,min=1"`
	PageSize     int  `query:"page_size" validate:"omitempty,min=1,max=100"`
	CityInterest bool `query:"city_interest"`
	Follows      bool `query:"follows"`
	Relevancy    bool `query:"relevancy"`
}

// ToFeedParams converts FeedRequest to domain.FeedParams.
func (r *FeedRequest) ToFeedParams() domain.FeedParams {
	params := domain.FeedParams{
		Page:     r.Page,
		PageSize: r.PageSize,
		Filter: domain.FeedFilter{
			CityInterest: r.CityInterest,
			Follows:      r.Follows,
			Relevancy:    r.Relevancy,
		},
	}
	params.Validate()

	return params
}

// TrendingRequest represents the query parameters for the trending
// leaderboard.
type TrendingRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Count int `query:"count" validate:"omitempty,min=1,max=100"`
}

// CityRankingRequest represents the query parameters for the city
// visit and rating rankings.
type CityRankingRequest struct {
	Page       int    `query:"page" validate:"omitempty,min=1"`
	Count      int    `query:"count" validate:"omitempty,min=1,max=100"`
	Country    string `query:"country" validate:"omitempty,iso2"`
	MaxAgeDays int    `query:"max_age_days" validate:"omitempty,min=1"`
}

// ToCityRankingParams converts CityRankingRequest to domain params.
func (r *CityRankingRequest) ToCityRankingParams() domain.CityRankingParams {
	params := domain.CityRankingParams{
		Page:        r.Page,
		Count:       r.Count,
		CountryIso2: r.Country,
		MaxAgeDays:  r.MaxAgeDays,
	}
	params.Validate()

	return params
}

// CountryRankingRequest represents the query parameters for the
// country-level rankings.
type CountryRankingRequest struct {
	Page        int `query:"page" validate:"omitempty,min=1"`
	Count       int `query:"count" validate:"omitempty,min=1,max=100"`
	ContinentID int `query:"continent_id" validate:"omitempty,min=1"`
	MaxAgeDays  int `query:"max_age_days" validate:"omitempty,min=1"`
}

// ToCountryRankingParams converts CountryRankingRequest to domain
// params.
func (r *CountryRankingRequest) ToCountryRankingParams() domain.CountryRankingParams {
	params := domain.CountryRankingParams{
		Page:        r.Page,
		Count:       r.Count,
		ContinentID: r.ContinentID,
		MaxAgeDays:  r.MaxAgeDays,
	}
	params.Validate()

	return params
}

// NearbyRequest represents the query parameters for proximity
// listings.
type NearbyRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// Normalize applies the proximity listing defaults.
func (r *NearbyRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 10
	}
}

// RecommendRequest represents the query parameters for city
// recommendations.
type RecommendRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}
