package dto

import (
	"time"

	"trip-feed-service/internal/domain"
)

// FeedItemResponse represents one tip in the composed feed.
type FeedItemResponse struct {
	ID             int      `json:"id"`
	UserID         int      `json:"user_id"`
	CityID         int      `json:"city_id"`
	Message        string   `json:"message"`
	Medias         []string `json:"medias,omitempty"`
	CreatedAt      string   `json:"created_at"`
	IsLiked        bool     `json:"is_liked"`
	LikesAmount    int      `json:"likes_amount"`
	CommentsAmount int      `json:"comments_amount"`
}

// FeedResponse represents a feed page.
type FeedResponse struct {
	Tips []FeedItemResponse `json:"tips"`
	Page int                `json:"page"`
}

// FromFeedItems converts feed items to a FeedResponse.
func FromFeedItems(items []domain.FeedItem, page int) FeedResponse {
	tips := make([]FeedItemResponse, len(items))
	for i, item := range items {
		tips[i] = FeedItemResponse{
			ID:             item.ID,
			UserID:         item.UserID,
			CityID:         item.CityID,
			Message:        item.Message,
			Medias:         item.Medias,
			CreatedAt:      item.CreatedAt.Format(time.RFC3339),
			IsLiked:        item.IsLiked,
			LikesAmount:    item.LikesAmount,
			CommentsAmount: item.CommentsAmount,
		}
	}

	return FeedResponse{Tips: tips, Page: page}
}

// CityResponse represents a city joined with its region and country.
type CityResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country,omitempty"`
	Iso2      string  `json:"iso2,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FromCityDetail converts domain.CityDetail to CityResponse.
func FromCityDetail(d domain.CityDetail) CityResponse {
	return CityResponse{
		ID:        d.ID,
		Name:      d.Name,
		Region:    d.Region,
		Country:   d.Country,
		Iso2:      d.CountryIso2,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
	}
}

// TrendingCityResponse represents one trending leaderboard entry.
type TrendingCityResponse struct {
	CityResponse
	InterestsCount      int      `json:"interests_count"`
	PercentFromTotal    *float64 `json:"percent_from_total"`
	Variation           int      `json:"variation"`
	VariationPercentage *float64 `json:"variation_percentage"`
}

// TrendingResponse represents the trending leaderboard.
type TrendingResponse struct {
	TotalInterest int                    `json:"total_interest"`
	Cities        []TrendingCityResponse `json:"cities"`
}

// FromTrendingResult converts domain.TrendingResult to
// TrendingResponse.
func FromTrendingResult(result *domain.TrendingResult) TrendingResponse {
	cities := make([]TrendingCityResponse, len(result.Cities))
	for i, c := range result.Cities {
		cities[i] = TrendingCityResponse{
			CityResponse:        FromCityDetail(c.CityDetail),
			InterestsCount:      c.InterestsCount,
			PercentFromTotal:    c.PercentFromTotal,
			Variation:           c.Variation,
			VariationPercentage: c.VariationPercentage,
		}
	}

	return TrendingResponse{TotalInterest: result.TotalInterest, Cities: cities}
}

// CityVisitRankResponse represents one visit leaderboard entry.
type CityVisitRankResponse struct {
	CityResponse
	TotalVisits int `json:"total_visits"`
}

// FromCityVisitRanking converts a visit ranking page.
func FromCityVisitRanking(ranking []domain.CityVisitRank) []CityVisitRankResponse {
	out := make([]CityVisitRankResponse, len(ranking))
	for i, r := range ranking {
		out[i] = CityVisitRankResponse{
			CityResponse: FromCityDetail(r.CityDetail),
			TotalVisits:  r.TotalVisits,
		}
	}

	return out
}

// CityRatingRankResponse represents one rating leaderboard entry.
type CityRatingRankResponse struct {
	CityResponse
	AverageRating float64 `json:"average_rating"`
}

// FromCityRatingRanking converts a rating ranking page.
func FromCityRatingRanking(ranking []domain.CityRatingRank) []CityRatingRankResponse {
	out := make([]CityRatingRankResponse, len(ranking))
	for i, r := range ranking {
		out[i] = CityRatingRankResponse{
			CityResponse:  FromCityDetail(r.CityDetail),
			AverageRating: r.AverageRating,
		}
	}

	return out
}

// VisitResponse represents the viewer's own visit of a city.
type VisitResponse struct {
	Rating    *float64 `json:"rating"`
	Message   *string  `json:"message,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// CityPageResponse represents the aggregate city view.
type CityPageResponse struct {
	CityResponse
	IsInterested            bool           `json:"is_interested"`
	UserVisit               *VisitResponse `json:"user_visit"`
	AverageRating           *float64       `json:"average_rating"`
	VisitsCount             int            `json:"visits_count"`
	ReviewsCount            int            `json:"reviews_count"`
	InterestsCount          int            `json:"interests_count"`
	ResidentsCount          int            `json:"residents_count"`
	PositionInRatingRanking *int           `json:"position_in_rating_ranking"`
	PositionInVisitRanking  *int           `json:"position_in_visit_ranking"`
}

// FromCityPage converts domain.CityPage to CityPageResponse.
func FromCityPage(page *domain.CityPage) CityPageResponse {
	resp := CityPageResponse{
		CityResponse:            FromCityDetail(page.CityDetail),
		IsInterested:            page.IsInterested,
		AverageRating:           page.AverageRating,
		VisitsCount:             page.VisitsCount,
		ReviewsCount:            page.ReviewsCount,
		InterestsCount:          page.InterestsCount,
		ResidentsCount:          page.ResidentsCount,
		PositionInRatingRanking: page.PositionInRatingRanking,
		PositionInVisitRanking:  page.PositionInVisitRanking,
	}
	if page.UserVisit != nil {
		resp.UserVisit = &VisitResponse{
			Rating:    page.UserVisit.Rating,
			Message:   page.UserVisit.Message,
			CreatedAt: page.UserVisit.CreatedAt.Format(time.RFC3339),
		}
	}

	return resp
}

// CountryResponse represents a country.
type CountryResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Iso2      string  `json:"iso2"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CountryPageResponse represents the aggregate country view.
type CountryPageResponse struct {
	CountryResponse
	AverageRating           *float64 `json:"average_rating"`
	VisitsCount             int      `json:"visits_count"`
	ReviewsCount            int      `json:"reviews_count"`
	InterestsCount          int      `json:"interests_count"`
	ResidentsCount          int      `json:"residents_count"`
	PositionInRatingRanking *int     `json:"position_in_rating_ranking"`
	PositionInVisitRanking  *int     `json:"position_in_visit_ranking"`
}

// FromCountryPage converts domain.CountryPage to CountryPageResponse.
func FromCountryPage(page *domain.CountryPage) CountryPageResponse {
	return CountryPageResponse{
		CountryResponse: CountryResponse{
			ID:        page.ID,
			Name:      page.Name,
			Iso2:      page.Iso2,
			Latitude:  page.Latitude,
			Longitude: page.Longitude,
		},
		AverageRating:           page.AverageRating,
		VisitsCount:             page.VisitsCount,
		ReviewsCount:            page.ReviewsCount,
		InterestsCount:          page.InterestsCount,
		ResidentsCount:          page.ResidentsCount,
		PositionInRatingRanking: page.PositionInRatingRanking,
		PositionInVisitRanking:  page.PositionInVisitRanking,
	}
}

// CountryVisitRankResponse represents one country visit leaderboard
// entry.
type CountryVisitRankResponse struct {
	Name        string `json:"name"`
	Iso2        string `json:"iso2"`
	TotalVisits int    `json:"total_visits"`
}

// FromCountryVisitRanking converts a country visit ranking page.
func FromCountryVisitRanking(ranking []domain.CountryVisitRank) []CountryVisitRankResponse {
	out := make([]CountryVisitRankResponse, len(ranking))
	for i, r := range ranking {
		out[i] = CountryVisitRankResponse{
			Name:        r.Name,
			Iso2:        r.Iso2,
			TotalVisits: r.TotalVisits,
		}
	}

	return out
}

// CountryRatingRankResponse represents one country rating leaderboard
// entry.
type CountryRatingRankResponse struct {
	Name          string  `json:"name"`
	Iso2          string  `json:"iso2"`
	AverageRating float64 `json:"average_rating"`
}

// FromCountryRatingRanking converts a country rating ranking page.
func FromCountryRatingRanking(ranking []domain.CountryRatingRank) []CountryRatingRankResponse {
	out := make([]CountryRatingRankResponse, len(ranking))
	for i, r := range ranking {
		out[i] = CountryRatingRankResponse{
			Name:          r.Name,
			Iso2:          r.Iso2,
			AverageRating: r.AverageRating,
		}
	}

	return out
}

// NearbyPlaceResponse represents one proximity listing entry.
type NearbyPlaceResponse struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

// FromRankedPlaces converts a proximity ranking to responses.
func FromRankedPlaces[P domain.Place](ranked []domain.RankedPlace[P], name func(P) string) []NearbyPlaceResponse {
	out := make([]NearbyPlaceResponse, len(ranked))
	for i, r := range ranked {
		loc := r.Place.Location()
		out[i] = NearbyPlaceResponse{
			ID:         r.Place.PlaceID(),
			Name:       name(r.Place),
			Latitude:   loc.Latitude,
			Longitude:  loc.Longitude,
			DistanceKm: r.Distance,
		}
	}

	return out
}

// RecommendationsResponse represents a recommended city page.
type RecommendationsResponse struct {
	Cities []CityResponse `json:"cities"`
}

// FromRecommendedCities converts recommended cities to a response.
func FromRecommendedCities(cities []domain.City) RecommendationsResponse {
	out := make([]CityResponse, len(cities))
	for i, c := range cities {
		out[i] = CityResponse{
			ID:        c.ID,
			Name:      c.Name,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		}
	}

	return RecommendationsResponse{Cities: out}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
