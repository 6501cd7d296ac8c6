package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"trip-feed-service/internal/domain"
)

// Repository implements the domain repository ports using PostgreSQL.
// One struct backs all of them; the service layer only ever sees the
// port interfaces.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const cityDetailColumns = "cities.id, cities.name, cities.region_id, cities.latitude, cities.longitude, " +
	"regions.name AS region, countries.iso2 AS iso2, countries.name AS country"

// cityDetailQuery joins cities with their region and country names.
func (r *Repository) cityDetailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("cities").
		Select(cityDetailColumns).
		Joins("JOIN regions ON regions.id = cities.region_id").
		Joins("JOIN countries ON countries.id = regions.country_id")
}

// Cities returns all cities with their coordinates.
func (r *Repository) Cities(ctx context.Context) ([]domain.City, error) {
	var models []CityModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing cities: %w", err)
	}

	cities := make([]domain.City, len(models))
	for i := range models {
		cities[i] = models[i].ToDomain()
	}

	return cities, nil
}

// Regions returns all regions with their coordinates.
func (r *Repository) Regions(ctx context.Context) ([]domain.Region, error) {
	var models []RegionModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}

	regions := make([]domain.Region, len(models))
	for i := range models {
		regions[i] = models[i].ToDomain()
	}

	return regions, nil
}

// Countries returns all countries with their coordinates.
func (r *Repository) Countries(ctx context.Context) ([]domain.Country, error) {
	var models []CountryModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing countries: %w", err)
	}

	countries := make([]domain.Country, len(models))
	for i := range models {
		countries[i] = models[i].ToDomain()
	}

	return countries, nil
}

// CityByID returns one city joined with its region and country.
func (r *Repository) CityByID(ctx context.Context, id int) (*domain.CityDetail, error) {
	var row cityDetailRow
	err := r.cityDetailQuery(ctx).Where("cities.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}

		return nil, fmt.Errorf("getting city by id: %w", err)
	}

	detail := row.toDomain()

	return &detail, nil
}

// CitiesByIDs returns the given cities joined with region and country.
// Missing ids are skipped.
func (r *Repository) CitiesByIDs(ctx context.Context, ids []int) ([]domain.CityDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []cityDetailRow
	err := r.cityDetailQuery(ctx).Where("cities.id IN ?", ids).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("getting cities by ids: %w", err)
	}

	details := make([]domain.CityDetail, len(rows))
	for i := range rows {
		details[i] = rows[i].toDomain()
	}

	return details, nil
}

// CountryByIso2 returns one country by its iso2 code.
func (r *Repository) CountryByIso2(ctx context.Context, iso2 string) (*domain.Country, error) {
	var model CountryModel
	err := r.db.WithContext(ctx).Where("iso2 = ?", iso2).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}

		return nil, fmt.Errorf("getting country by iso2: %w", err)
	}

	country := model.ToDomain()

	return &country, nil
}

// ResidentsCountByCity counts users whose home city is cityID.
func (r *Repository) ResidentsCountByCity(ctx context.Context, cityID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("city_id = ?", cityID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting residents by city: %w", err)
	}

	return int(count), nil
}

// ResidentsCountByCountry counts users living in the country.
func (r *Repository) ResidentsCountByCountry(ctx context.Context, iso2 string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where(`city_id IN (
			SELECT cities.id FROM cities
			JOIN regions ON regions.id = cities.region_id
			JOIN countries ON countries.id = regions.country_id
			WHERE countries.iso2 = ?
		)`, iso2).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting residents by country: %w", err)
	}

	return int(count), nil
}
