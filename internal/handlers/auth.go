package handlers

import (
	"errors"

	"github.com/clothcycle/clothcycle-api/internal/security"
	"github.com/clothcycle/clothcycle-api/internal/services"
	"github.com/clothcycle/clothcycle-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles signup and login
type AuthHandler struct {
	DB     *gorm.DB
	Hasher *security.PasswordHasher
	Tokens *security.TokenManager
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup
// @Summary Register a new user
// @Description Creates a user account and returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body signupRequest true "Signup payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return utils.ErrorResponse(c, "Missing fields", fiber.StatusBadRequest)
	}

	result, err := services.Signup(h.DB, h.Hasher, h.Tokens, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return utils.ErrorResponse(c, "Email already registered", fiber.StatusConflict)
		}
		return utils.ServerErrorResponse(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verifies credentials and returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Login payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	if req.Email == "" || req.Password == "" {
		return utils.ErrorResponse(c, "Missing fields", fiber.StatusBadRequest)
	}

	result, err := services.Login(h.DB, h.Hasher, h.Tokens, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, "Invalid email or password", fiber.StatusUnauthorized)
		}
		return utils.ServerErrorResponse(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}
