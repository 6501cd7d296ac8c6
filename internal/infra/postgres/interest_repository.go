package postgres

import (
	"context"
	"fmt"
	"time"

	"trip-feed-service/internal/domain"
)

// CountInWindow counts all interest events created inside the window.
func (r *Repository) CountInWindow(ctx context.Context, start, end time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CityInterestModel{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting interests in window: %w", err)
	}

	return int(count), nil
}

// TopCities groups interest events inside the window by city, ordered
// by descending count.
func (r *Repository) TopCities(ctx context.Context, start, end time.Time, offset, limit int) ([]domain.CityInterestCount, error) {
	var counts []domain.CityInterestCount
	err := r.db.WithContext(ctx).
		Model(&CityInterestModel{}).
		Select("city_id, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("city_id").
		Order("count DESC, city_id").
		Offset(offset).
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("grouping interests by city: %w", err)
	}

	return counts, nil
}

// CountsForCities counts interest events per city inside the window,
// restricted to the given cities.
func (r *Repository) CountsForCities(ctx context.Context, cityIDs []int, start, end time.Time) (map[int]int, error) {
	if len(cityIDs) == 0 {
		return map[int]int{}, nil
	}

	var counts []domain.CityInterestCount
	err := r.db.WithContext(ctx).
		Model(&CityInterestModel{}).
		Select("city_id, COUNT(*) AS count").
		Where("city_id IN ?", cityIDs).
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("city_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("counting interests for cities: %w", err)
	}

	byCity := make(map[int]int, len(counts))
	for _, c := range counts {
		byCity[c.CityID] = c.Count
	}

	return byCity, nil
}

// RecentInterestCities returns the cities the user most recently
// declared interest in, newest declaration first.
func (r *Repository) RecentInterestCities(ctx context.Context, userID, offset, limit int) ([]domain.City, error) {
	var models []CityModel
	err := r.db.WithContext(ctx).
		Table("city_interests").
		Select("cities.id, cities.name, cities.region_id, cities.latitude, cities.longitude").
		Joins("JOIN cities ON cities.id = city_interests.city_id").
		Where("city_interests.user_id = ?", userID).
		Order("city_interests.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&models).Error
	if err != nil {
		return nil, fmt.Errorf("loading recent interest cities: %w", err)
	}

	cities := make([]domain.City, len(models))
	for i := range models {
		cities[i] = models[i].ToDomain()
	}

	return cities, nil
}

// CountByCity counts all interest events for one city.
func (r *Repository) CountByCity(ctx context.Context, cityID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CityInterestModel{}).
		Where("city_id = ?", cityID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting interests by city: %w", err)
	}

	return int(count), nil
}

// CountByCountry counts all interest events for cities of one country.
func (r *Repository) CountByCountry(ctx context.Context, iso2 string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CityInterestModel{}).
		Where(`city_id IN (
			SELECT cities.id FROM cities
			JOIN regions ON regions.id = cities.region_id
			JOIN countries ON countries.id = regions.country_id
			WHERE countries.iso2 = ?
		)`, iso2).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting interests by country: %w", err)
	}

	return int(count), nil
}

// IsUserInterested reports whether the user currently declares interest
// in the city.
func (r *Repository) IsUserInterested(ctx context.Context, cityID, userID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CityInterestModel{}).
		Where("city_id = ? AND user_id = ?", cityID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking user interest: %w", err)
	}

	return count > 0, nil
}
