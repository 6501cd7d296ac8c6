package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"trip-feed-service/internal/app/service"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	ranking *service.RankingService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ranking *service.RankingService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		ranking: ranking,
		logger:  logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	trending, err := h.ranking.Trending(c.Context(), 1, 10)
	if err != nil {
		h.logger.Warn("dashboard trending lookup failed", zap.Error(err))
	}

	data := fiber.Map{
		"Title": "Trip Feed Dashboard",
	}
	if trending != nil {
		data["TotalInterest"] = trending.TotalInterest
		data["TrendingCities"] = trending.Cities
	}

	return c.Render("pages/dashboard", data, "layouts/base")
}
