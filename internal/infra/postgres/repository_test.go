package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgresContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trip-feed-service/internal/domain"
	"trip-feed-service/internal/infra/postgres/migrations"
)

// setupTestDB creates a PostgreSQL testcontainer, runs the real
// migrations and returns a connected GORM DB.
//
// Prerequisites:
//   - Docker must be running
//   - OR skip integration tests with: go test -short
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgresContainer.Run(ctx,
		"postgres:16-alpine",
		postgresContainer.WithDatabase("testdb"),
		postgresContainer.WithUsername("testuser"),
		postgresContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger: nil,
	})
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, migrations.Run(db), "Failed to run migrations")

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

// seedPlaces inserts one country/region and the given cities.
func seedPlaces(t *testing.T, db *gorm.DB, cityIDs ...int) {
	t.Helper()

	require.NoError(t, db.Create(&CountryModel{
		ID: 1, Name: "Portugal", Iso2: "PT", ContinentID: 3,
		Latitude: 39.5, Longitude: -8.0,
	}).Error)
	require.NoError(t, db.Create(&RegionModel{
		ID: 1, Name: "Lisboa", CountryID: 1,
		Latitude: 38.7, Longitude: -9.1,
	}).Error)

	for _, id := range cityIDs {
		require.NoError(t, db.Create(&CityModel{
			ID: id, Name: "City", RegionID: 1,
			Latitude: 38.7, Longitude: -9.1 + float64(id)*0.1,
		}).Error)
	}
}

func seedUsers(t *testing.T, db *gorm.DB, ids ...int) {
	t.Helper()

	for _, id := range ids {
		require.NoError(t, db.Create(&UserModel{
			ID: id, Username: "user" + string(rune('a'+id)),
		}).Error)
	}
}

func TestFeedPage_FollowsFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedPlaces(t, db, 1)
	seedUsers(t, db, 1, 2, 3)

	// Viewer 1 follows only author 2.
	require.NoError(t, db.Create(&FollowModel{FollowerID: 1, FollowingID: 2}).Error)

	now := time.Now().UTC()
	require.NoError(t, db.Create(&TipModel{ID: 10, UserID: 2, CityID: 1, Message: "followed", CreatedAt: now}).Error)
	require.NoError(t, db.Create(&TipModel{ID: 11, UserID: 3, CityID: 1, Message: "stranger", CreatedAt: now}).Error)

	tips, err := repo.FeedPage(ctx, 1, domain.FeedFilter{Follows: true}, nil, 0, 10)
	require.NoError(t, err)

	require.Len(t, tips, 1)
	assert.Equal(t, 10, tips[0].ID)
	assert.Equal(t, 2, tips[0].UserID)
}

func TestFeedPage_ExclusionAndOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedPlaces(t, db, 1)
	seedUsers(t, db, 1)

	now := time.Now().UTC()
	for i := 1; i <= 5; i++ {
		require.NoError(t, db.Create(&TipModel{
			ID: i, UserID: 1, CityID: 1, Message: "m",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	tips, err := repo.FeedPage(ctx, 1, domain.FeedFilter{}, []int{5, 3}, 0, 10)
	require.NoError(t, err)

	// Excluded ids never appear, remainder is newest first.
	var ids []int
	for _, tip := range tips {
		ids = append(ids, tip.ID)
	}
	assert.Equal(t, []int{4, 2, 1}, ids)

	// Offset and limit page through the filtered set.
	tips, err = repo.FeedPage(ctx, 1, domain.FeedFilter{}, []int{5, 3}, 1, 1)
	require.NoError(t, err)
	require.Len(t, tips, 1)
	assert.Equal(t, 2, tips[0].ID)
}

func TestFeedCandidates_PreloadsEngagement(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedPlaces(t, db, 1)
	seedUsers(t, db, 1, 2, 3)

	require.NoError(t, db.Create(&CityInterestModel{UserID: 1, CityID: 1}).Error)
	require.NoError(t, db.Create(&TipModel{ID: 10, UserID: 2, CityID: 1, Message: "m"}).Error)
	require.NoError(t, db.Create(&TipLikeModel{TipID: 10, UserID: 1}).Error)
	require.NoError(t, db.Create(&TipLikeModel{TipID: 10, UserID: 3}).Error)
	require.NoError(t, db.Create(&TipCommentModel{ID: 1, TipID: 10, UserID: 3, Message: "nice"}).Error)

	tips, err := repo.FeedCandidates(ctx, 1, domain.FeedFilter{CityInterest: true})
	require.NoError(t, err)

	require.Len(t, tips, 1)
	assert.Len(t, tips[0].Likes, 2)
	assert.Len(t, tips[0].Comments, 1)
	assert.True(t, tips[0].IsLikedBy(1))
	assert.False(t, tips[0].IsLikedBy(2))

	count, err := repo.CommentsCount(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRatingRanking_ExcludesUnrated(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedPlaces(t, db, 1, 2, 3)
	seedUsers(t, db, 1, 2, 3)

	rate := func(v float64) *float64 { return &v }

	// City 1: two rated visits averaging 4.25 -> 4.3 once rounded.
	require.NoError(t, db.Create(&CityVisitModel{UserID: 1, CityID: 1, Rating: rate(4.0)}).Error)
	require.NoError(t, db.Create(&CityVisitModel{UserID: 2, CityID: 1, Rating: rate(4.5)}).Error)
	// City 2: one rated, one unrated visit. Unrated must not drag the
	// mean down.
	require.NoError(t, db.Create(&CityVisitModel{UserID: 1, CityID: 2, Rating: rate(5.0)}).Error)
	require.NoError(t, db.Create(&CityVisitModel{UserID: 2, CityID: 2}).Error)
	// City 3: only unrated visits, excluded from the rating board.
	require.NoError(t, db.Create(&CityVisitModel{UserID: 3, CityID: 3}).Error)

	ranking, err := repo.RatingRanking(ctx, domain.CityRankingParams{Page: 1, Count: 10})
	require.NoError(t, err)

	require.Len(t, ranking, 2)
	assert.Equal(t, 2, ranking[0].ID)
	assert.Equal(t, 5.0, ranking[0].AverageRating)
	assert.Equal(t, 1, ranking[1].ID)
	assert.Equal(t, 4.3, ranking[1].AverageRating)

	// The visit board still counts every visit.
	visits, err := repo.VisitRanking(ctx, domain.CityRankingParams{Page: 1, Count: 10})
	require.NoError(t, err)
	require.Len(t, visits, 3)
	assert.Equal(t, 2, visits[0].TotalVisits)

	avg, err := repo.AverageRatingByCity(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, avg)

	reviews, err := repo.ReviewsCountByCity(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, reviews)
}

func TestTopCities_WindowAndGrouping(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedPlaces(t, db, 1, 2)
	seedUsers(t, db, 1, 2, 3)

	now := time.Now().UTC()
	inWindow := now.Add(-24 * time.Hour)
	outOfWindow := now.Add(-60 * 24 * time.Hour)

	require.NoError(t, db.Create(&CityInterestModel{UserID: 1, CityID: 1, CreatedAt: inWindow}).Error)
	require.NoError(t, db.Create(&CityInterestModel{UserID: 2, CityID: 1, CreatedAt: inWindow}).Error)
	require.NoError(t, db.Create(&CityInterestModel{UserID: 3, CityID: 2, CreatedAt: inWindow}).Error)
	require.NoError(t, db.Create(&CityInterestModel{UserID: 1, CityID: 2, CreatedAt: outOfWindow}).Error)

	start := now.Add(-30 * 24 * time.Hour)
	top, err := repo.TopCities(ctx, start, now, 0, 10)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, domain.CityInterestCount{CityID: 1, Count: 2}, top[0])
	assert.Equal(t, domain.CityInterestCount{CityID: 2, Count: 1}, top[1])

	total, err := repo.CountInWindow(ctx, start, now)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	prior, err := repo.CountsForCities(ctx, []int{1, 2}, now.Add(-90*24*time.Hour), start)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{2: 1}, prior)
}

func TestCityByID_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedPlaces(t, db, 1)

	detail, err := repo.CityByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Lisboa", detail.Region)
	assert.Equal(t, "PT", detail.CountryIso2)
	assert.Equal(t, "Portugal", detail.Country)

	_, err = repo.CityByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	visit, err := repo.UserVisit(ctx, 1, 999)
	require.NoError(t, err)
	assert.Nil(t, visit)
}

func TestRecentInterestCities_Order(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedPlaces(t, db, 1, 2, 3)
	seedUsers(t, db, 1)

	now := time.Now().UTC()
	require.NoError(t, db.Create(&CityInterestModel{UserID: 1, CityID: 1, CreatedAt: now.Add(-3 * time.Hour)}).Error)
	require.NoError(t, db.Create(&CityInterestModel{UserID: 1, CityID: 2, CreatedAt: now.Add(-1 * time.Hour)}).Error)
	require.NoError(t, db.Create(&CityInterestModel{UserID: 1, CityID: 3, CreatedAt: now.Add(-2 * time.Hour)}).Error)

	cities, err := repo.RecentInterestCities(ctx, 1, 0, 2)
	require.NoError(t, err)

	require.Len(t, cities, 2)
	assert.Equal(t, 2, cities[0].ID)
	assert.Equal(t, 3, cities[1].ID)
}
