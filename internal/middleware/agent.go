// This file provides bearer-key authentication for the agent API.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dbartell/employarmor-sub001/internal/security"
	"github.com/dbartell/employarmor-sub001/internal/services"
)

// AgentAuth authenticates agent API requests via the Authorization header.
// The presented bearer token is an opaque agent key; on success the agent's
// identity is stored in the request context for the ownership check
// downstream.
//
// Context Locals Set:
//   - agent_id: The authenticated agent's identifier (string)
//   - agent_key_id: The specific key used (string)
//
// Responses:
//   - 401 with a JSON error body for missing, malformed, or invalid keys.
//     The body never distinguishes unknown keys from hash mismatches.
func AgentAuth(keys *services.AgentKeyService, logger *security.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		rawKey, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || rawKey == "" {
			return unauthorized(c, logger, "missing_bearer")
		}

		key, err := keys.VerifyKey(c.Context(), rawKey)
		if err != nil {
			return unauthorized(c, logger, "invalid_key")
		}

		c.Locals("agent_id", key.AgentID)
		c.Locals("agent_key_id", key.ID)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, logger *security.Logger, reason string) error {
	logger.SecurityEvent(security.EventAgentAuthFailure, nil, "", c.IP(), c.Get("User-Agent"),
		map[string]interface{}{
			"path":   c.Path(),
			"reason": reason,
		})

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "A valid agent API key is required",
	})
}
