package handlers

import (
	"errors"
	"strconv"

	"github.com/clothcycle/clothcycle-api/internal/middleware"
	"github.com/clothcycle/clothcycle-api/internal/services"
	"github.com/clothcycle/clothcycle-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserHandler handles profile routes
type UserHandler struct {
	DB *gorm.DB
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// parseUserID reads the :id path parameter.
func parseUserID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

// GetUser handles GET /api/user/:id
// @Summary Get a user's profile, donation history, badges and tier ladder
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid user id", fiber.StatusBadRequest)
	}

	if middleware.AuthenticatedUserID(c) != userID {
		return utils.ErrorResponse(c, "Token does not match user", fiber.StatusUnauthorized)
	}

	profile, err := services.GetUserProfile(h.DB, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		return utils.ErrorResponse(c, "Database error", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"profile":  profile.Profile,
		"history":  profile.History,
		"badges":   profile.Badges,
		"tiers":    profile.Tiers,
		"nextTier": profile.NextTier,
		"total_kg": profile.TotalKg,
	})
}

// UpdateUser handles PUT /api/user/:id/update
// @Summary Update a user's name and email
// @Tags User
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body updateUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/{id}/update [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid user id", fiber.StatusBadRequest)
	}

	if middleware.AuthenticatedUserID(c) != userID {
		return utils.ErrorResponse(c, "Token does not match user", fiber.StatusUnauthorized)
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if req.Name == "" || req.Email == "" {
		return utils.ErrorResponse(c, "Missing fields", fiber.StatusBadRequest)
	}

	if err := services.UpdateUser(h.DB, userID, req.Name, req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, "User not found")
		case errors.Is(err, services.ErrEmailTaken):
			return utils.ErrorResponse(c, "Email already registered", fiber.StatusConflict)
		default:
			return utils.ErrorResponse(c, "Database error", fiber.StatusInternalServerError)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
	})
}
