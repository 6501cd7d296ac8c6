// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"trip-feed-service/internal/app/service"
	"trip-feed-service/internal/transport/httpserver/dto"
	"trip-feed-service/internal/transport/httpserver/middleware"
	"trip-feed-service/internal/validator"
)

// FeedHandler handles the composed tip feed.
type FeedHandler struct {
	feed      *service.FeedService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feed *service.FeedService, v *validator.Validator, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		feed:      feed,
		validator: v,
		logger:    logger,
	}
}

// GetFeed handles GET /api/v1/tips/feed
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	var req dto.FeedRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	viewer, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHORIZED",
		})
	}

	params := req.ToFeedParams()
	items, err := h.feed.GetFeed(c.Context(), viewer, params)
	if err != nil {
		h.logger.Error("feed composition failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "feed composition failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromFeedItems(items, params.Page))
}
