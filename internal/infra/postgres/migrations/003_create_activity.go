package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createActivity creates the tips, engagement and city activity
// tables the feed and rankings read from.
func createActivity() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "003_create_activity",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS tips (
					id SERIAL PRIMARY KEY,
					user_id INTEGER NOT NULL REFERENCES users(id),
					city_id INTEGER NOT NULL REFERENCES cities(id),
					message TEXT NOT NULL,
					medias TEXT[],
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);

				CREATE TABLE IF NOT EXISTS tip_likes (
					tip_id INTEGER NOT NULL REFERENCES tips(id),
					user_id INTEGER NOT NULL REFERENCES users(id),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (tip_id, user_id)
				);

				CREATE TABLE IF NOT EXISTS tip_comments (
					id SERIAL PRIMARY KEY,
					tip_id INTEGER NOT NULL REFERENCES tips(id),
					user_id INTEGER NOT NULL REFERENCES users(id),
					message TEXT NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);

				CREATE TABLE IF NOT EXISTS city_interests (
					user_id INTEGER NOT NULL REFERENCES users(id),
					city_id INTEGER NOT NULL REFERENCES cities(id),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (user_id, city_id)
				);

				CREATE TABLE IF NOT EXISTS city_visits (
					user_id INTEGER NOT NULL REFERENCES users(id),
					city_id INTEGER NOT NULL REFERENCES cities(id),
					rating DECIMAL(3,1),
					message TEXT,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (user_id, city_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_tips_user_id ON tips(user_id);",
				"CREATE INDEX IF NOT EXISTS idx_tips_city_id ON tips(city_id);",
				"CREATE INDEX IF NOT EXISTS idx_tips_created_at ON tips(created_at DESC);",
				"CREATE INDEX IF NOT EXISTS idx_tip_likes_created_at ON tip_likes(created_at);",
				"CREATE INDEX IF NOT EXISTS idx_tip_comments_tip_id ON tip_comments(tip_id);",
				"CREATE INDEX IF NOT EXISTS idx_tip_comments_created_at ON tip_comments(created_at);",
				"CREATE INDEX IF NOT EXISTS idx_city_interests_city_id ON city_interests(city_id);",
				"CREATE INDEX IF NOT EXISTS idx_city_interests_created_at ON city_interests(created_at);",
				"CREATE INDEX IF NOT EXISTS idx_city_visits_city_id ON city_visits(city_id);",
				"CREATE INDEX IF NOT EXISTS idx_city_visits_created_at ON city_visits(created_at);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS city_visits, city_interests, tip_comments, tip_likes, tips;").Error
		},
	}
}
