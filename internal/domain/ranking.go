package domain

import "math"

// Round1 rounds to one decimal place, the precision every ranking
// percentage and average is reported with.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CityInterestCount is one city's interest-event count inside a
// window, as grouped by storage.
type CityInterestCount struct {
	CityID int
	Count  int
}

// TrendingCity is one leaderboard entry of the trending ranking.
type TrendingCity struct {
	CityDetail
	InterestsCount      int      `json:"interestsCount"`
	PercentFromTotal    *float64 `json:"percentFromTotal"`
	Variation           int      `json:"variation"`
	VariationPercentage *float64 `json:"variationPercentage"`
}

// TrendingResult is the trending leaderboard plus the window total the
// percentages were computed against.
type TrendingResult struct {
	TotalInterest int            `json:"totalInterest"`
	Cities        []TrendingCity `json:"cities"`
}

// CityRankingParams filters the city visit and rating rankings.
// CountryIso2 and MaxAgeDays are optional; zero values disable them.
type CityRankingParams struct {
	Page        int
	Count       int
	CountryIso2 string
	MaxAgeDays  int
}

// Validate corrects out-of-bound values.
func (p *CityRankingParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Count < 1 {
		p.Count = 10
	}
	if p.Count > 100 {
		p.Count = 100
	}
}

// Offset returns the row offset for the requested page.
func (p *CityRankingParams) Offset() int {
	return (p.Page - 1) * p.Count
}

// CityVisitRank is one entry of the visit-count leaderboard.
type CityVisitRank struct {
	CityDetail
	TotalVisits int `json:"totalVisit"`
}

// CityRatingRank is one entry of the average-rating leaderboard.
type CityRatingRank struct {
	CityDetail
	AverageRating float64 `json:"averageRating"`
}

// CountryRankingParams filters the country-level rankings.
type CountryRankingParams struct {
	Page        int
	Count       int
	ContinentID int
	MaxAgeDays  int
}

// Validate corrects out-of-bound values.
func (p *CountryRankingParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Count < 1 {
		p.Count = 10
	}
	if p.Count > 100 {
		p.Count = 100
	}
}

// Offset returns the row offset for the requested page.
func (p *CountryRankingParams) Offset() int {
	return (p.Page - 1) * p.Count
}

// CountryVisitRank is one entry of the country visit leaderboard.
type CountryVisitRank struct {
	Name        string `json:"name"`
	Iso2        string `json:"iso2"`
	TotalVisits int    `json:"totalVisit"`
}

// CountryRatingRank is one entry of the country rating leaderboard.
type CountryRatingRank struct {
	Name          string  `json:"name"`
	Iso2          string  `json:"iso2"`
	AverageRating float64 `json:"averageRating"`
}

// CityPage is the full city view: the city plus every aggregate the
// city page shows, including the city's 1-based position in the rating
// and visit leaderboards (nil when outside the top 100).
type CityPage struct {
	CityDetail
	IsInterested            bool         `json:"isInterested"`
	UserVisit               *VisitRecord `json:"userVisit"`
	AverageRating           *float64     `json:"averageRating"`
	VisitsCount             int          `json:"visitsCount"`
	ReviewsCount            int          `json:"reviewsCount"`
	InterestsCount          int          `json:"interestsCount"`
	ResidentsCount          int          `json:"residentsCount"`
	PositionInRatingRanking *int         `json:"positionInRatingRanking"`
	PositionInVisitRanking  *int         `json:"positionInVisitRanking"`
}

// CountryPage is the aggregate country view.
type CountryPage struct {
	Country
	AverageRating           *float64 `json:"averageRating"`
	VisitsCount             int      `json:"visitsCount"`
	ReviewsCount            int      `json:"reviewsCount"`
	InterestsCount          int      `json:"interestsCount"`
	ResidentsCount          int      `json:"residentsCount"`
	PositionInRatingRanking *int     `json:"positionInRatingRanking"`
	PositionInVisitRanking  *int     `json:"positionInVisitRanking"`
}
