// scan.go
//
// A scalable, high performance drop-in replacement for the ClothCycle nodejs backend
// Copyright (c) 2026 ClothCycle contributors
//
// This file is part of clothcycle-api.
// clothcycle-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// clothcycle-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with clothcycle-api.
// If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"errors"

	"github.com/clothcycle/clothcycle-api/internal/middleware"
	"github.com/clothcycle/clothcycle-api/internal/services"
	"github.com/clothcycle/clothcycle-api/internal/types"
	"github.com/clothcycle/clothcycle-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ScanHandler handles donation submissions
type ScanHandler struct {
	DB     *gorm.DB
	Policy services.RewardPolicy
}

// scanRequest tolerates numeric fields arriving as strings because the
// original client reads them straight out of form inputs. Kg is a pointer
// so an absent field is distinguishable from an explicit 0: a donation may
// legitimately weigh 0, but a payload that never mentions kg is incomplete.
type scanRequest struct {
	BinCode string             `json:"binCode"`
	Items   types.FlexUint64   `json:"items"`
	Kg      *types.FlexFloat64 `json:"kg"`
	UserID  types.FlexUint64   `json:"userId"`
}

// Scan handles POST /api/scan
// @Summary Submit a donation against a bin
// @Description Records the donation, credits points, updates the global impact totals and reports newly unlocked badges
// @Tags Scan
// @Accept json
// @Produce json
// @Param body body scanRequest true "Scan payload"
// @Success 200 {object} services.ScanResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /scan [post]
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	if req.BinCode == "" || req.Items == 0 || req.Kg == nil || req.UserID == 0 {
		return utils.ErrorResponse(c, "Missing fields", fiber.StatusBadRequest)
	}

	// The token decides who gets credited, not the body.
	if middleware.AuthenticatedUserID(c) != req.UserID.Uint64() {
		return utils.ErrorResponse(c, "Token does not match user", fiber.StatusUnauthorized)
	}

	result, err := services.RecordDonation(h.DB, h.Policy, req.UserID.Uint64(), req.BinCode, int64(req.Items.Uint64()), req.Kg.Float64())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return utils.ErrorResponse(c, "Invalid items or weight", fiber.StatusBadRequest)
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, "Invalid bin code")
		default:
			return utils.ServerErrorResponse(c)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"awardedPoints": result.AwardedPoints,
		"newBadges":     result.NewBadges,
	})
}
