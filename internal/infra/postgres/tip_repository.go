package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"trip-feed-service/internal/domain"
)

// feedQuery builds the WHERE clause shared by the feed reads. Enabled
// filter flags narrow the tip set; all flags off means everything.
// All parameters are bound through GORM's parameterized queries.
func (r *Repository) feedQuery(ctx context.Context, userID int, f domain.FeedFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&TipModel{})

	if f.CityInterest {
		query = query.Where(
			"tips.city_id IN (SELECT city_id FROM city_interests WHERE user_id = ?)",
			userID,
		)
	}
	if f.Follows {
		query = query.Where(
			"tips.user_id IN (SELECT following_id FROM follows WHERE follower_id = ?)",
			userID,
		)
	}

	return query
}

// FeedCandidates returns all tips matching the enabled filter flags,
// newest first, with likes and comments preloaded for scoring.
func (r *Repository) FeedCandidates(ctx context.Context, userID int, f domain.FeedFilter) ([]*domain.Tip, error) {
	var models []TipModel
	err := r.feedQuery(ctx, userID, f).
		Preload("Likes").
		Preload("Comments").
		Order("tips.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("loading feed candidates: %w", err)
	}

	return tipsToDomain(models), nil
}

// FeedPage returns tips matching the filters excluding the given ids,
// newest first, with the given offset and limit.
func (r *Repository) FeedPage(ctx context.Context, userID int, f domain.FeedFilter, excludeIDs []int, offset, limit int) ([]*domain.Tip, error) {
	query := r.feedQuery(ctx, userID, f)
	if len(excludeIDs) > 0 {
		query = query.Where("tips.id NOT IN ?", excludeIDs)
	}

	var models []TipModel
	err := query.
		Preload("Likes").
		Preload("Comments").
		Order("tips.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("loading feed page: %w", err)
	}

	return tipsToDomain(models), nil
}

// CommentsCount returns the number of comments on one tip.
func (r *Repository) CommentsCount(ctx context.Context, tipID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TipCommentModel{}).
		Where("tip_id = ?", tipID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting comments: %w", err)
	}

	return int(count), nil
}

func tipsToDomain(models []TipModel) []*domain.Tip {
	tips := make([]*domain.Tip, len(models))
	for i := range models {
		tips[i] = models[i].ToDomain()
	}

	return tips
}
