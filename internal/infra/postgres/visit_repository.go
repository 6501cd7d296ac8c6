package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"trip-feed-service/internal/domain"
)

type cityVisitRankRow struct {
	cityDetailRow
	TotalVisits int
}

type cityRatingRankRow struct {
	cityDetailRow
	AverageRating float64
}

const cityGroupColumns = "cities.id, cities.name, cities.region_id, cities.latitude, cities.longitude, " +
	"regions.name, countries.iso2, countries.name"

// cityVisitQuery joins visits up to the country level and applies the
// optional ranking filters.
func (r *Repository) cityVisitQuery(ctx context.Context, p domain.CityRankingParams) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("city_visits").
		Joins("JOIN cities ON cities.id = city_visits.city_id").
		Joins("JOIN regions ON regions.id = cities.region_id").
		Joins("JOIN countries ON countries.id = regions.country_id")

	if p.CountryIso2 != "" {
		query = query.Where("countries.iso2 = ?", p.CountryIso2)
	}
	if p.MaxAgeDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -p.MaxAgeDays)
		query = query.Where("city_visits.created_at >= ?", cutoff)
	}

	return query
}

// VisitRanking returns cities ordered by descending visit count.
func (r *Repository) VisitRanking(ctx context.Context, p domain.CityRankingParams) ([]domain.CityVisitRank, error) {
	var rows []cityVisitRankRow
	err := r.cityVisitQuery(ctx, p).
		Select(cityDetailColumns + ", COUNT(*) AS total_visits").
		Group(cityGroupColumns).
		Order("total_visits DESC, cities.id").
		Offset(p.Offset()).
		Limit(p.Count).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("ranking cities by visits: %w", err)
	}

	ranking := make([]domain.CityVisitRank, len(rows))
	for i := range rows {
		ranking[i] = domain.CityVisitRank{
			CityDetail:  rows[i].toDomain(),
			TotalVisits: rows[i].TotalVisits,
		}
	}

	return ranking, nil
}

// RatingRanking returns cities ordered by descending 1-decimal average
// rating. Unrated visits never enter the mean, and cities without any
// rated visit are excluded entirely.
func (r *Repository) RatingRanking(ctx context.Context, p domain.CityRankingParams) ([]domain.CityRatingRank, error) {
	var rows []cityRatingRankRow
	err := r.cityVisitQuery(ctx, p).
		Select(cityDetailColumns+", ROUND(AVG(city_visits.rating)::numeric, 1) AS average_rating").
		Where("city_visits.rating IS NOT NULL").
		Group(cityGroupColumns).
		Order("average_rating DESC, cities.id").
		Offset(p.Offset()).
		Limit(p.Count).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("ranking cities by rating: %w", err)
	}

	ranking := make([]domain.CityRatingRank, len(rows))
	for i := range rows {
		ranking[i] = domain.CityRatingRank{
			CityDetail:    rows[i].toDomain(),
			AverageRating: rows[i].AverageRating,
		}
	}

	return ranking, nil
}

// countryVisitQuery is the country-level variant of cityVisitQuery.
func (r *Repository) countryVisitQuery(ctx context.Context, p domain.CountryRankingParams) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("city_visits").
		Joins("JOIN cities ON cities.id = city_visits.city_id").
		Joins("JOIN regions ON regions.id = cities.region_id").
		Joins("JOIN countries ON countries.id = regions.country_id")

	if p.ContinentID > 0 {
		query = query.Where("countries.continent_id = ?", p.ContinentID)
	}
	if p.MaxAgeDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -p.MaxAgeDays)
		query = query.Where("city_visits.created_at >= ?", cutoff)
	}

	return query
}

// CountryVisitRanking returns countries ordered by descending visit
// count.
func (r *Repository) CountryVisitRanking(ctx context.Context, p domain.CountryRankingParams) ([]domain.CountryVisitRank, error) {
	var ranking []domain.CountryVisitRank
	err := r.countryVisitQuery(ctx, p).
		Select("countries.name, countries.iso2, COUNT(*) AS total_visits").
		Group("countries.name, countries.iso2").
		Order("total_visits DESC, countries.iso2").
		Offset(p.Offset()).
		Limit(p.Count).
		Scan(&ranking).Error
	if err != nil {
		return nil, fmt.Errorf("ranking countries by visits: %w", err)
	}

	return ranking, nil
}

// CountryRatingRanking returns countries ordered by descending
// 1-decimal average rating.
func (r *Repository) CountryRatingRanking(ctx context.Context, p domain.CountryRankingParams) ([]domain.CountryRatingRank, error) {
	var ranking []domain.CountryRatingRank
	err := r.countryVisitQuery(ctx, p).
		Select("countries.name, countries.iso2, ROUND(AVG(city_visits.rating)::numeric, 1) AS average_rating").
		Where("city_visits.rating IS NOT NULL").
		Group("countries.name, countries.iso2").
		Order("average_rating DESC, countries.iso2").
		Offset(p.Offset()).
		Limit(p.Count).
		Scan(&ranking).Error
	if err != nil {
		return nil, fmt.Errorf("ranking countries by rating: %w", err)
	}

	return ranking, nil
}

// AverageRatingByCity returns the 1-decimal mean of the city's rated
// visits, nil when there are none.
func (r *Repository) AverageRatingByCity(ctx context.Context, cityID int) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&CityVisitModel{}).
		Select("AVG(rating)").
		Where("city_id = ? AND rating IS NOT NULL", cityID).
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("averaging city ratings: %w", err)
	}
	if avg == nil {
		return nil, nil
	}

	rounded := domain.Round1(*avg)

	return &rounded, nil
}

// VisitsCountByCity counts all visits of one city.
func (r *Repository) VisitsCountByCity(ctx context.Context, cityID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CityVisitModel{}).
		Where("city_id = ?", cityID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting city visits: %w", err)
	}

	return int(count), nil
}

// ReviewsCountByCity counts only the rated visits of one city.
func (r *Repository) ReviewsCountByCity(ctx context.Context, cityID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CityVisitModel{}).
		Where("city_id = ? AND rating IS NOT NULL", cityID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting city reviews: %w", err)
	}

	return int(count), nil
}

// countryCitiesCondition matches visits whose city belongs to the
// given country.
const countryCitiesCondition = `city_id IN (
	SELECT cities.id FROM cities
	JOIN regions ON regions.id = cities.region_id
	JOIN countries ON countries.id = regions.country_id
	WHERE countries.iso2 = ?
)`

// AverageRatingByCountry returns the 1-decimal mean over the rated
// visits of the country's cities, nil when there are none.
func (r *Repository) AverageRatingByCountry(ctx context.Context, iso2 string) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&CityVisitModel{}).
		Select("AVG(rating)").
		Where(countryCitiesCondition, iso2).
		Where("rating IS NOT NULL").
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("averaging country ratings: %w", err)
	}
	if avg == nil {
		return nil, nil
	}

	rounded := domain.Round1(*avg)

	return &rounded, nil
}

// VisitsCountByCountry counts all visits of the country's cities.
func (r *Repository) VisitsCountByCountry(ctx context.Context, iso2 string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CityVisitModel{}).
		Where(countryCitiesCondition, iso2).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting country visits: %w", err)
	}

	return int(count), nil
}

// ReviewsCountByCountry counts the rated visits of the country's
// cities.
func (r *Repository) ReviewsCountByCountry(ctx context.Context, iso2 string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CityVisitModel{}).
		Where(countryCitiesCondition, iso2).
		Where("rating IS NOT NULL").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting country reviews: %w", err)
	}

	return int(count), nil
}

// UserVisit returns the user's visit of the city, nil when the user
// has not visited it.
func (r *Repository) UserVisit(ctx context.Context, cityID, userID int) (*domain.VisitRecord, error) {
	var model CityVisitModel
	err := r.db.WithContext(ctx).
		Where("city_id = ? AND user_id = ?", cityID, userID).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting user visit: %w", err)
	}

	return model.ToDomain(), nil
}
