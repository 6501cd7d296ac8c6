package service

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"trip-feed-service/internal/domain"
)

// Recommendation blend constants: up to 80% of a page comes from
// cities near the user's declared interests, the rest from trending.
const (
	nearbyTrendingRatio = 0.8
	nearbyPerAnchor     = 5
)

// RecommendService blends proximity and trending results into a city
// recommendation list.
type RecommendService struct {
	interests domain.InterestRepository
	proximity *ProximityService
	ranking   *RankingService
	logger    *zap.Logger

	// rnd drives the final shuffle; injectable so tests can pin it.
	rnd *rand.Rand
}

// NewRecommendService creates a new RecommendService. rnd may be nil,
// in which case the global math/rand source is used.
func NewRecommendService(
	interests domain.InterestRepository,
	proximity *ProximityService,
	ranking *RankingService,
	rnd *rand.Rand,
	logger *zap.Logger,
) *RecommendService {
	return &RecommendService{
		interests: interests,
		proximity: proximity,
		ranking:   ranking,
		rnd:       rnd,
		logger:    logger,
	}
}

// Recommend returns up to pageSize cities for the user: cities close
// to the user's most recent interest cities (capped at 80% of the
// page), topped up with trending cities. The final order is shuffled
// on purpose; callers must not expect stable ordering across calls.
//
// The response never contains the user's interest cities themselves
// and never contains duplicate ids.
func (s *RecommendService) Recommend(ctx context.Context, user domain.Identity, page, pageSize int) ([]domain.City, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 40
	}

	maxNearby := int(float64(pageSize) * nearbyTrendingRatio)

	anchors, err := s.interests.RecentInterestCities(ctx, user.ID, pageSize*(page-1), maxNearby)
	if err != nil {
		s.logger.Error("interest city fetch failed", zap.Error(err))
		return nil, err
	}

	anchorIDs := make(map[int]bool, len(anchors))
	for _, a := range anchors {
		anchorIDs[a.ID] = true
	}

	seen := make(map[int]bool)
	nearby := make([]domain.City, 0, maxNearby)
	for _, anchor := range anchors {
		if len(nearby) >= maxNearby {
			break
		}

		closest, err := s.proximity.ClosestCities(ctx, anchor.ID, 1, nearbyPerAnchor)
		if err != nil {
			return nil, err
		}
		for _, r := range closest {
			if len(nearby) >= maxNearby {
				break
			}
			if anchorIDs[r.Place.ID] || seen[r.Place.ID] {
				continue
			}
			seen[r.Place.ID] = true
			nearby = append(nearby, r.Place)
		}
	}

	// Trending fills its own share of the page plus whatever the
	// proximity source came up short.
	recommended := nearby
	if needed := pageSize - len(nearby); needed > 0 {
		trending, err := s.ranking.Trending(ctx, 1, needed)
		if err != nil {
			return nil, err
		}
		for _, tc := range trending.Cities {
			if anchorIDs[tc.ID] || seen[tc.ID] {
				continue
			}
			seen[tc.ID] = true
			recommended = append(recommended, tc.City)
		}
	}

	s.shuffle(recommended)

	s.logger.Debug("recommendation composed",
		zap.Int("user_id", user.ID),
		zap.Int("nearby", len(nearby)),
		zap.Int("total", len(recommended)),
	)

	return recommended, nil
}

func (s *RecommendService) shuffle(cities []domain.City) {
	swap := func(i, j int) { cities[i], cities[j] = cities[j], cities[i] }
	if s.rnd != nil {
		s.rnd.Shuffle(len(cities), swap)
		return
	}
	rand.Shuffle(len(cities), swap)
}
