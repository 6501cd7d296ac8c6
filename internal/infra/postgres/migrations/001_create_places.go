package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createPlaces creates the country/region/city hierarchy.
func createPlaces() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_places",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS countries (
					id SERIAL PRIMARY KEY,
					name VARCHAR(100) NOT NULL,
					iso2 CHAR(2) NOT NULL UNIQUE,
					continent_id INTEGER NOT NULL,
					latitude DECIMAL(9,6) NOT NULL,
					longitude DECIMAL(9,6) NOT NULL
				);

				CREATE TABLE IF NOT EXISTS regions (
					id SERIAL PRIMARY KEY,
					name VARCHAR(100) NOT NULL,
					country_id INTEGER NOT NULL REFERENCES countries(id),
					latitude DECIMAL(9,6) NOT NULL,
					longitude DECIMAL(9,6) NOT NULL
				);

				CREATE TABLE IF NOT EXISTS cities (
					id SERIAL PRIMARY KEY,
					name VARCHAR(100) NOT NULL,
					region_id INTEGER NOT NULL REFERENCES regions(id),
					latitude DECIMAL(9,6) NOT NULL,
					longitude DECIMAL(9,6) NOT NULL
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_countries_continent_id ON countries(continent_id);",
				"CREATE INDEX IF NOT EXISTS idx_regions_country_id ON regions(country_id);",
				"CREATE INDEX IF NOT EXISTS idx_cities_region_id ON cities(region_id);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS cities, regions, countries;").Error
		},
	}
}
