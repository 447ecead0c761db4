// This file provides input validation for the public scan API, the signup
// funnel, and the agent generate endpoint.
package security

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationService provides centralized input validation functions.
// All validation methods return descriptive errors that are safe to show to users.
type ValidationService struct {
	config *SecurityConfig
}

// NewValidationService creates a new validation service with security configuration.
func NewValidationService(config *SecurityConfig) *ValidationService {
	return &ValidationService{
		config: config,
	}
}

// ValidateEmail validates email address format according to RFC 5322.
// Returns error if email is invalid or too long.
func (v *ValidationService) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if len(email) > 255 {
		return fmt.Errorf("email must be less than 255 characters")
	}

	// Use Go's standard mail.ParseAddress for RFC 5322 compliance
	_, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidatePassword validates password meets minimum security requirements.
// Requirements: At least 8 characters, contains uppercase, lowercase, and number.
func (v *ValidationService) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	if len(password) > 128 {
		return fmt.Errorf("password must be less than 128 characters")
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

// ValidateCompanyName validates company name length and content.
func (v *ValidationService) ValidateCompanyName(name string) error {
	if name == "" {
		return fmt.Errorf("company name is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("company name cannot be empty")
	}

	if utf8.RuneCountInString(name) > v.config.MaxCompanyNameLength {
		return fmt.Errorf("company name must be %d characters or less", v.config.MaxCompanyNameLength)
	}

	return nil
}

// stateCodePattern matches two-letter state codes plus the NYC special case.
var stateCodePattern = regexp.MustCompile(`^[A-Z]{2,3}$`)

// ValidateStateCode validates a single jurisdiction code's shape. Whether
// the code names a known jurisdiction is the analyzer's concern; unknown
// codes are reported as skipped, not rejected.
func (v *ValidationService) ValidateStateCode(code string) error {
	if code == "" {
		return fmt.Errorf("state code is required")
	}

	if !stateCodePattern.MatchString(code) {
		return fmt.Errorf("invalid state code format")
	}

	return nil
}

// ValidateScanSelections validates the tool and state lists of a scan
// request against the configured size limits.
func (v *ValidationService) ValidateScanSelections(tools, states []string) error {
	if len(tools) > v.config.MaxToolSelections {
		return fmt.Errorf("at most %d tools may be selected", v.config.MaxToolSelections)
	}

	if len(states) > v.config.MaxStateSelections {
		return fmt.Errorf("at most %d states may be selected", v.config.MaxStateSelections)
	}

	return nil
}

// ValidateDocumentTypes validates the document-type list of a generate
// request. Non-empty and bounded; unknown types are skipped downstream,
// not rejected here.
func (v *ValidationService) ValidateDocumentTypes(types []string) error {
	if len(types) == 0 {
		return fmt.Errorf("documents is required")
	}

	if len(types) > v.config.MaxDocumentTypes {
		return fmt.Errorf("at most %d document types may be requested", v.config.MaxDocumentTypes)
	}

	for _, t := range types {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("document type cannot be empty")
		}
	}

	return nil
}

// ValidateEmployeeCount validates the employee count from the scan funnel.
func (v *ValidationService) ValidateEmployeeCount(count int) error {
	if count < 0 {
		return fmt.Errorf("employee count cannot be negative")
	}

	if count > 10_000_000 {
		return fmt.Errorf("employee count is out of range")
	}

	return nil
}

// SanitizeString removes potentially dangerous characters from string input.
// Removes control characters and normalizes whitespace.
func (v *ValidationService) SanitizeString(input string) string {
	// Remove control characters (except newline and tab)
	input = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`).ReplaceAllString(input, "")

	// Normalize whitespace
	input = strings.TrimSpace(input)

	return input
}

// ValidateRequired checks if a required field is present and non-empty.
func (v *ValidationService) ValidateRequired(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	return nil
}

// ValidateLength validates string length is within bounds.
func (v *ValidationService) ValidateLength(fieldName string, value string, min, max int) error {
	length := utf8.RuneCountInString(value)

	if length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}

	if length > max {
		return fmt.Errorf("%s must be %d characters or less", fieldName, max)
	}

	return nil
}
