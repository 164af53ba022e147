package handlers

import (
	"errors"

	"github.com/clothcycle/clothcycle-api/internal/services"
	"github.com/clothcycle/clothcycle-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BinHandler handles the read-only bin registry routes
type BinHandler struct {
	DB *gorm.DB
}

// ListBins handles GET /api/bins
// @Summary List all donation bins
// @Tags Bins
// @Produce json
// @Success 200 {array} models.Bin
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /bins [get]
func (h *BinHandler) ListBins(c *fiber.Ctx) error {
	bins, err := services.ListBins(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, "Database error", fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusOK).JSON(bins)
}

// GetBinByCode handles GET /api/bins/code/:binCode (and the legacy
// GET /api/bins/:binCode fallback the original backend also served)
// @Summary Get a bin by its code
// @Tags Bins
// @Produce json
// @Param binCode path string true "Bin code"
// @Success 200 {object} models.Bin
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /bins/code/{binCode} [get]
func (h *BinHandler) GetBinByCode(c *fiber.Ctx) error {
	binCode := c.Params("binCode")

	bin, err := services.GetBinByCode(h.DB, binCode)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Bin not found")
		}
		return utils.ErrorResponse(c, "Database error", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(bin)
}
