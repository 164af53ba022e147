package handlers

import (
	"github.com/clothcycle/clothcycle-api/internal/services"
	"github.com/clothcycle/clothcycle-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LeaderboardHandler handles the public leaderboard and impact routes
type LeaderboardHandler struct {
	DB *gorm.DB
}

// List handles GET /api/leaderboard
// @Summary List all users ranked by total donated weight
// @Tags Leaderboard
// @Produce json
// @Success 200 {array} services.LeaderboardEntry
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leaderboard [get]
func (h *LeaderboardHandler) List(c *fiber.Ctx) error {
	entries, err := services.ListLeaderboard(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, "Database error", fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}

// Impact handles GET /api/leaderboard/impact
// @Summary Get the global impact summary
// @Tags Leaderboard
// @Produce json
// @Success 200 {object} services.ImpactSummary
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leaderboard/impact [get]
func (h *LeaderboardHandler) Impact(c *fiber.Ctx) error {
	summary, err := services.GetImpactSummary(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, "Database error", fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}
