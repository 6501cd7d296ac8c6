package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"trip-feed-service/internal/app/service"
	"trip-feed-service/internal/domain"
	"trip-feed-service/internal/transport/httpserver/dto"
	"trip-feed-service/internal/validator"
)

// CountryHandler handles country leaderboards, pages and proximity
// listings.
type CountryHandler struct {
	ranking   *service.RankingService
	proximity *service.ProximityService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewCountryHandler creates a new CountryHandler.
func NewCountryHandler(
	ranking *service.RankingService,
	proximity *service.ProximityService,
	v *validator.Validator,
	logger *zap.Logger,
) *CountryHandler {
	return &CountryHandler{
		ranking:   ranking,
		proximity: proximity,
		validator: v,
		logger:    logger,
	}
}

// GetByIso2 handles GET /api/v1/countries/:iso2
func (h *CountryHandler) GetByIso2(c *fiber.Ctx) error {
	iso2 := strings.ToUpper(c.Params("iso2"))
	if len(iso2) != 2 {
		return badRequest(c, "invalid country code")
	}

	page, err := h.ranking.CountryPage(c.Context(), iso2)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "country not found")
		}
		h.logger.Error("country page failed", zap.String("iso2", iso2), zap.Error(err))

		return internalError(c, "country page failed")
	}

	return c.JSON(dto.FromCountryPage(page))
}

// VisitRanking handles GET /api/v1/countries/ranking/visit
func (h *CountryHandler) VisitRanking(c *fiber.Ctx) error {
	var req dto.CountryRankingRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	ranking, err := h.ranking.CountryVisitRanking(c.Context(), req.ToCountryRankingParams())
	if err != nil {
		h.logger.Error("country visit ranking failed", zap.Error(err))

		return internalError(c, "country visit ranking failed")
	}

	return c.JSON(fiber.Map{"countries": dto.FromCountryVisitRanking(ranking)})
}

// RatingRanking handles GET /api/v1/countries/ranking/rating
func (h *CountryHandler) RatingRanking(c *fiber.Ctx) error {
	var req dto.CountryRankingRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	ranking, err := h.ranking.CountryRatingRanking(c.Context(), req.ToCountryRankingParams())
	if err != nil {
		h.logger.Error("country rating ranking failed", zap.Error(err))

		return internalError(c, "country rating ranking failed")
	}

	return c.JSON(fiber.Map{"countries": dto.FromCountryRatingRanking(ranking)})
}

// Nearby handles GET /api/v1/countries/:id/nearby
func (h *CountryHandler) Nearby(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "invalid country id")
	}

	var req dto.NearbyRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	req.Normalize()

	ranked, err := h.proximity.ClosestCountries(c.Context(), id, req.Page, req.PageSize)
	if err != nil {
		h.logger.Error("nearby countries failed", zap.Int("country_id", id), zap.Error(err))

		return internalError(c, "nearby countries failed")
	}

	places := dto.FromRankedPlaces(ranked, func(country domain.Country) string { return country.Name })

	return c.JSON(fiber.Map{"places": places})
}
