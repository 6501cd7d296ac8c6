package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"trip-feed-service/internal/app/service"
	"trip-feed-service/internal/domain"
	"trip-feed-service/internal/transport/httpserver/dto"
	"trip-feed-service/internal/transport/httpserver/middleware"
	"trip-feed-service/internal/validator"
)

// CityHandler handles city leaderboards, pages, proximity listings and
// recommendations.
type CityHandler struct {
	ranking   *service.RankingService
	recommend *service.RecommendService
	proximity *service.ProximityService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewCityHandler creates a new CityHandler.
func NewCityHandler(
	ranking *service.RankingService,
	recommend *service.RecommendService,
	proximity *service.ProximityService,
	v *validator.Validator,
	logger *zap.Logger,
) *CityHandler {
	return &CityHandler{
		ranking:   ranking,
		recommend: recommend,
		proximity: proximity,
		validator: v,
		logger:    logger,
	}
}

// Trending handles GET /api/v1/cities/trending
func (h *CityHandler) Trending(c *fiber.Ctx) error {
	var req dto.TrendingRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.ranking.Trending(c.Context(), req.Page, req.Count)
	if err != nil {
		h.logger.Error("trending ranking failed", zap.Error(err))

		return internalError(c, "trending ranking failed")
	}

	return c.JSON(dto.FromTrendingResult(result))
}

// VisitRanking handles GET /api/v1/cities/ranking/visit
func (h *CityHandler) VisitRanking(c *fiber.Ctx) error {
	var req dto.CityRankingRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	ranking, err := h.ranking.VisitRanking(c.Context(), req.ToCityRankingParams())
	if err != nil {
		h.logger.Error("visit ranking failed", zap.Error(err))

		return internalError(c, "visit ranking failed")
	}

	return c.JSON(fiber.Map{"cities": dto.FromCityVisitRanking(ranking)})
}

// RatingRanking handles GET /api/v1/cities/ranking/rating
func (h *CityHandler) RatingRanking(c *fiber.Ctx) error {
	var req dto.CityRankingRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	ranking, err := h.ranking.RatingRanking(c.Context(), req.ToCityRankingParams())
	if err != nil {
		h.logger.Error("rating ranking failed", zap.Error(err))

		return internalError(c, "rating ranking failed")
	}

	return c.JSON(fiber.Map{"cities": dto.FromCityRatingRanking(ranking)})
}

// Recommend handles GET /api/v1/cities/recommend
func (h *CityHandler) Recommend(c *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	viewer, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthorized(c)
	}

	cities, err := h.recommend.Recommend(c.Context(), viewer, req.Page, req.PageSize)
	if err != nil {
		h.logger.Error("recommendation failed", zap.Error(err))

		return internalError(c, "recommendation failed")
	}

	return c.JSON(dto.FromRecommendedCities(cities))
}

// GetByID handles GET /api/v1/cities/:id
func (h *CityHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "invalid city id")
	}

	var viewer *domain.Identity
	if identity, ok := middleware.IdentityFrom(c); ok {
		viewer = &identity
	}

	page, err := h.ranking.CityPage(c.Context(), id, viewer)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "city not found")
		}
		h.logger.Error("city page failed", zap.Int("city_id", id), zap.Error(err))

		return internalError(c, "city page failed")
	}

	return c.JSON(dto.FromCityPage(page))
}

// NearbyCities handles GET /api/v1/cities/:id/nearby
func (h *CityHandler) NearbyCities(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "invalid city id")
	}

	var req dto.NearbyRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	req.Normalize()

	ranked, err := h.proximity.ClosestCities(c.Context(), id, req.Page, req.PageSize)
	if err != nil {
		h.logger.Error("nearby cities failed", zap.Int("city_id", id), zap.Error(err))

		return internalError(c, "nearby cities failed")
	}

	places := dto.FromRankedPlaces(ranked, func(city domain.City) string { return city.Name })

	return c.JSON(fiber.Map{"places": places})
}

// NearbyRegions handles GET /api/v1/regions/:id/nearby
func (h *CityHandler) NearbyRegions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "invalid region id")
	}

	var req dto.NearbyRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	req.Normalize()

	ranked, err := h.proximity.ClosestRegions(c.Context(), id, req.Page, req.PageSize)
	if err != nil {
		h.logger.Error("nearby regions failed", zap.Int("region_id", id), zap.Error(err))

		return internalError(c, "nearby regions failed")
	}

	places := dto.FromRankedPlaces(ranked, func(region domain.Region) string { return region.Name })

	return c.JSON(fiber.Map{"places": places})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  "INVALID_PARAMS",
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   "validation failed",
		Code:    "VALIDATION_ERROR",
		Details: err,
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  "NOT_FOUND",
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: "authentication required",
		Code:  "UNAUTHORIZED",
	})
}

func internalError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  "INTERNAL_ERROR",
	})
}
