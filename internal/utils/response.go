package utils

import (
	"github.com/gofiber/fiber/v2"
)

// The original backend answered every failure with a bare {"error": msg}
// body; clients key off that shape, so the replacement keeps it.

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound)
}

// ServerErrorResponse sends a 500 response with a generic message so
// internal failure detail never leaks to clients.
func ServerErrorResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, "Server error", fiber.StatusInternalServerError)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error string `json:"error"`
}
