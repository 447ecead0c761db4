// Package middleware provides HTTP middleware for EmployArmor: security
// headers, request logging, rate limiting, CSRF protection, and the session
// and agent authentication gates.
package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/dbartell/employarmor-sub001/internal/security"
)

// SecurityMiddleware provides centralized security functionality.
type SecurityMiddleware struct {
	logger            *security.Logger
	config            *security.SecurityConfig
	loginLimiter      *security.RateLimiter
	accountLockout    *security.AccountLockout
	validationService *security.ValidationService
}

// NewSecurityMiddleware creates a new security middleware instance.
func NewSecurityMiddleware(logger *security.Logger, config *security.SecurityConfig) *SecurityMiddleware {
	refill := time.Minute / time.Duration(config.RateLimitLogin)
	return &SecurityMiddleware{
		logger:            logger,
		config:            config,
		loginLimiter:      security.NewRateLimiter(config.RateLimitLogin, refill),
		accountLockout:    security.NewAccountLockout(config.AccountLockoutThreshold, config.AccountLockoutDuration),
		validationService: security.NewValidationService(config),
	}
}

// LoginRateLimit implements brute force protection for the login endpoint.
// Checks the per-IP rate limit first, then the per-account lockout.
func (sm *SecurityMiddleware) LoginRateLimit(email, ipAddress string) error {
	if !sm.loginLimiter.Allow(ipAddress) {
		sm.logger.SecurityEvent(security.EventRateLimitExceeded, nil, email, ipAddress, "",
			map[string]interface{}{
				"endpoint": "/login",
				"limit":    sm.config.RateLimitLogin,
			})

		return fmt.Errorf("too many login attempts, please try again later")
	}

	if sm.accountLockout.IsLocked(email) {
		remaining := sm.accountLockout.GetLockoutTimeRemaining(email)

		sm.logger.SecurityEvent(security.EventAccountLocked, nil, email, ipAddress, "",
			map[string]interface{}{
				"locked_for": remaining.String(),
			})

		return fmt.Errorf("account is locked due to too many failed attempts, try again in %d minutes", int(remaining.Minutes())+1)
	}

	return nil
}

// RecordLoginFailure records a failed login attempt against the account.
func (sm *SecurityMiddleware) RecordLoginFailure(email, ipAddress string) {
	locked := sm.accountLockout.RecordFailedAttempt(email)

	sm.logger.SecurityEvent(security.EventLoginFailure, nil, email, ipAddress, "",
		map[string]interface{}{
			"locked": locked,
		})
}

// RecordLoginSuccess resets lockout counters on successful login.
func (sm *SecurityMiddleware) RecordLoginSuccess(email, ipAddress string, userID int) {
	sm.accountLockout.ResetAttempts(email)

	sm.logger.SecurityEvent(security.EventLoginSuccess, &userID, email, ipAddress, "",
		map[string]interface{}{
			"success": true,
		})
}

// RateLimit implements general rate limiting for an endpoint. The identifier
// is the client IP, or the authenticated agent when one is present so that
// agents behind shared NATs are limited individually.
func (sm *SecurityMiddleware) RateLimit(limiter *security.RateLimiter, endpointName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.IP()

		if agentID := c.Locals("agent_id"); agentID != nil {
			identifier = fmt.Sprintf("agent_%v", agentID)
		} else if userID := c.Locals("user_id"); userID != nil {
			identifier = fmt.Sprintf("user_%v", userID)
		}

		if !limiter.Allow(identifier) {
			sm.logger.SecurityEvent(security.EventRateLimitExceeded, nil, "", c.IP(), c.Get("User-Agent"),
				map[string]interface{}{
					"endpoint":   endpointName,
					"identifier": identifier,
				})

			c.Set("Retry-After", "60")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "Too Many Requests",
				"message": "Rate limit exceeded, please try again later",
			})
		}

		return c.Next()
	}
}

// RequestLogger logs all HTTP requests with security context.
func (sm *SecurityMiddleware) RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		latency := time.Since(start)

		sm.logger.HTTPRequest(
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			latency.Milliseconds(),
			c.IP(),
			c.Get("User-Agent"),
		)

		// Denials on the agent API and dashboard are worth an event of
		// their own for monitoring.
		if c.Response().StatusCode() == 403 {
			var actorEmail string
			if email := c.Locals("user_email"); email != nil {
				actorEmail = email.(string)
			}
			var actorID *int
			if id := c.Locals("user_id"); id != nil {
				userID := id.(int)
				actorID = &userID
			}

			sm.logger.SecurityEvent(security.EventUnauthorizedAccess, actorID, actorEmail, c.IP(), c.Get("User-Agent"),
				map[string]interface{}{
					"method": c.Method(),
					"path":   c.Path(),
					"status": c.Response().StatusCode(),
				})
		}

		return err
	}
}

// SecureHeaders adds security headers to responses.
func (sm *SecurityMiddleware) SecureHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Content Security Policy (XSS protection)
		c.Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'; connect-src 'self'; frame-ancestors 'none'")

		// Prevent MIME type sniffing
		c.Set("X-Content-Type-Options", "nosniff")

		// Enable XSS filter
		c.Set("X-XSS-Protection", "1; mode=block")

		// Prevent clickjacking
		c.Set("X-Frame-Options", "DENY")

		// Enforce HTTPS (when in production)
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		// Referrer policy
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Permissions policy
		c.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		return c.Next()
	}
}

// CSRFProtection implements CSRF token validation for the browser-facing
// form endpoints. The agent API authenticates with a bearer key and is not
// routed through this.
func (sm *SecurityMiddleware) CSRFProtection(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Only check CSRF for state-changing methods
		if c.Method() != "POST" && c.Method() != "PUT" && c.Method() != "DELETE" {
			return c.Next()
		}

		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusForbidden).SendString("Invalid session")
		}

		sessionToken := sess.Get("csrf_token")
		if sessionToken == nil {
			token := generateCSRFToken()
			sess.Set("csrf_token", token)
			_ = sess.Save()

			sm.logger.SecurityEvent(security.EventCSRFViolation, nil, "", c.IP(), c.Get("User-Agent"),
				map[string]interface{}{
					"method": c.Method(),
					"path":   c.Path(),
					"reason": "missing_token",
				})

			return c.Status(fiber.StatusForbidden).SendString("CSRF token missing")
		}

		requestToken := c.Get("X-CSRF-Token")
		if requestToken == "" {
			requestToken = c.FormValue("csrf_token")
		}

		if requestToken != sessionToken {
			sm.logger.SecurityEvent(security.EventCSRFViolation, nil, "", c.IP(), c.Get("User-Agent"),
				map[string]interface{}{
					"method": c.Method(),
					"path":   c.Path(),
					"reason": "token_mismatch",
				})

			return c.Status(fiber.StatusForbidden).SendString("CSRF token invalid")
		}

		return c.Next()
	}
}

// SetCSRFToken makes the session's CSRF token available to templates.
func (sm *SecurityMiddleware) SetCSRFToken(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Next()
		}

		token := sess.Get("csrf_token")
		if token == nil {
			token = generateCSRFToken()
			sess.Set("csrf_token", token)
			_ = sess.Save()
		}

		c.Locals("csrf_token", token)

		return c.Next()
	}
}

// generateCSRFToken generates a cryptographically secure random token.
func generateCSRFToken() string {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		// Fallback to timestamp-based token (less secure but prevents crash)
		return base64.URLEncoding.EncodeToString([]byte(fmt.Sprintf("%d", time.Now().UnixNano())))
	}
	return base64.URLEncoding.EncodeToString(bytes)
}

// InputValidation rejects request bodies carrying obvious injection payloads
// before they reach a handler.
func (sm *SecurityMiddleware) InputValidation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := string(c.Body())
		if detectSQLInjection(body) {
			sm.logger.SecurityEvent(security.EventSQLInjectionAttempt, nil, "", c.IP(), c.Get("User-Agent"),
				map[string]interface{}{
					"path":   c.Path(),
					"method": c.Method(),
				})

			return c.Status(fiber.StatusBadRequest).SendString("Invalid input detected")
		}

		if detectXSSAttempt(body) {
			sm.logger.SecurityEvent(security.EventXSSAttempt, nil, "", c.IP(), c.Get("User-Agent"),
				map[string]interface{}{
					"path":   c.Path(),
					"method": c.Method(),
				})

			return c.Status(fiber.StatusBadRequest).SendString("Invalid input detected")
		}

		return c.Next()
	}
}

// detectSQLInjection checks for common SQL injection patterns.
func detectSQLInjection(input string) bool {
	input = strings.ToLower(input)
	patterns := []string{
		"' or '1'='1",
		"' or 1=1",
		"'; drop table",
		"'; delete from",
		"union select",
	}

	for _, pattern := range patterns {
		if strings.Contains(input, pattern) {
			return true
		}
	}

	return false
}

// detectXSSAttempt checks for common XSS attack patterns.
func detectXSSAttempt(input string) bool {
	input = strings.ToLower(input)
	patterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"<iframe",
	}

	for _, pattern := range patterns {
		if strings.Contains(input, pattern) {
			return true
		}
	}

	return false
}
