// Package security provides centralized security configuration, input
// validation, rate limiting, and structured security logging.
package security

import (
	"time"
)

// SecurityConfig holds all security-related configuration values.
// These values are tuned based on OWASP ASVS and NIST guidelines.
type SecurityConfig struct {
	// Password storage
	BcryptCost int // Cost factor for bcrypt hashing (recommended: 12)

	// Session management
	SessionTimeout    time.Duration // Session inactivity timeout
	SessionCookieName string        // Name of session cookie
	SessionSecure     bool          // Require HTTPS for session cookies
	SessionHTTPOnly   bool          // Prevent JavaScript access to session cookies
	SessionSameSite   string        // CSRF protection via SameSite attribute

	// Brute force protection
	AccountLockoutThreshold int           // Failed attempts before account lockout
	AccountLockoutDuration  time.Duration // How long account stays locked

	// Input limits
	MaxCompanyNameLength int // Maximum characters in a company name
	MaxToolSelections    int // Maximum tools in one scan request
	MaxStateSelections   int // Maximum states in one scan request
	MaxDocumentTypes     int // Maximum document types in one generate request
	MaxGapsPayloadSize   int // Maximum bytes of client-reported gaps JSON
	QueryTimeout         time.Duration

	// Rate limits (requests per minute per identifier)
	RateLimitLogin    int // Login endpoint, per IP
	RateLimitScan     int // Public scan endpoint, per IP
	RateLimitLead     int // Lead capture endpoint, per IP
	RateLimitGenerate int // Agent generate endpoint, per agent
}

// DefaultSecurityConfig returns security configuration with recommended defaults.
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		// Bcrypt cost 12 = 2^12 = 4096 iterations
		BcryptCost: 12,

		SessionTimeout:    8 * time.Hour,
		SessionCookieName: "employarmor_session",
		SessionSecure:     true,     // Requires HTTPS
		SessionHTTPOnly:   true,     // No JavaScript access
		SessionSameSite:   "Strict", // Strong CSRF protection

		AccountLockoutThreshold: 10,
		AccountLockoutDuration:  30 * time.Minute,

		MaxCompanyNameLength: 200,
		MaxToolSelections:    100,
		MaxStateSelections:   60, // every state plus NYC and DC with headroom
		MaxDocumentTypes:     20,
		MaxGapsPayloadSize:   64 * 1024,
		QueryTimeout:         30 * time.Second,

		// The scan endpoint is public and unauthenticated, so its limit is
		// the most an anonymous visitor legitimately needs, not more.
		RateLimitLogin:    5,
		RateLimitScan:     30,
		RateLimitLead:     10,
		RateLimitGenerate: 60,
	}
}
