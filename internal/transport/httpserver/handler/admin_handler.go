package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"trip-feed-service/internal/app/service"
	"trip-feed-service/internal/transport/httpserver/dto"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	ranking *service.RankingService
	logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(ranking *service.RankingService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		ranking: ranking,
		logger:  logger,
	}
}

// RefreshRankings handles POST /api/v1/admin/rankings/refresh
func (h *AdminHandler) RefreshRankings(c *fiber.Ctx) error {
	h.logger.Info("manual ranking refresh triggered")

	start := time.Now()
	if err := h.ranking.Refresh(c.Context()); err != nil {
		h.logger.Error("manual ranking refresh failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "REFRESH_FAILED",
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"duration": time.Since(start).String(),
	})
}
