// Shared response helpers for the JSON API surface.
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// badRequest returns the standard 400 body used across the API.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Bad Request",
		"message": message,
	})
}

// notFound returns the standard 404 body.
func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "Not Found",
		"message": message,
	})
}

// forbidden returns the standard 403 body.
func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":   "Forbidden",
		"message": message,
	})
}

// conflict returns the standard 409 body.
func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error":   "Conflict",
		"message": message,
	})
}

// internalError returns the generic 500 body. Detail stays in the security
// log, never in the response.
func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"message": "An unexpected error occurred",
	})
}
