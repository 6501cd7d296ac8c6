package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createSocialGraph creates the users and follows tables.
func createSocialGraph() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_social_graph",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS users (
					id SERIAL PRIMARY KEY,
					username VARCHAR(50) NOT NULL UNIQUE,
					city_id INTEGER REFERENCES cities(id),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);

				CREATE TABLE IF NOT EXISTS follows (
					follower_id INTEGER NOT NULL REFERENCES users(id),
					following_id INTEGER NOT NULL REFERENCES users(id),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (follower_id, following_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_users_city_id ON users(city_id);",
				"CREATE INDEX IF NOT EXISTS idx_follows_following_id ON follows(following_id);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS follows, users;").Error
		},
	}
}
