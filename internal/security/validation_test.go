// Validation tests cover the input rules applied to the scan funnel, signup,
// and the agent generate endpoint.
package security

import (
	"strings"
	"testing"
)

func newTestValidator() *ValidationService {
	return NewValidationService(DefaultSecurityConfig())
}

// TestValidateEmail tests email format validation.
func TestValidateEmail(t *testing.T) {
	v := newTestValidator()

	valid := []string{
		"dana@acme.test",
		"hr+hiring@example.com",
		"a@b.co",
	}
	for _, email := range valid {
		if err := v.ValidateEmail(email); err != nil {
			t.Errorf("Expected %q to be valid, got %v", email, err)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"@missing-local.com",
		"spaces in@address.com",
		strings.Repeat("a", 250) + "@example.com",
	}
	for _, email := range invalid {
		if err := v.ValidateEmail(email); err == nil {
			t.Errorf("Expected %q to be rejected", email)
		}
	}
}

// TestValidatePassword tests the composition requirements.
func TestValidatePassword(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "SecurePass1", false},
		{"empty", "", true},
		{"too short", "Ab1", true},
		{"no uppercase", "securepass1", true},
		{"no lowercase", "SECUREPASS1", true},
		{"no number", "SecurePassword", true},
		{"too long", strings.Repeat("Aa1", 50), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

// TestValidateStateCode tests jurisdiction code shape validation. Unknown
// but well-formed codes pass; the analyzer reports those as skipped.
func TestValidateStateCode(t *testing.T) {
	v := newTestValidator()

	for _, code := range []string{"IL", "CA", "NYC", "ZZ"} {
		if err := v.ValidateStateCode(code); err != nil {
			t.Errorf("Expected %q to be valid, got %v", code, err)
		}
	}

	for _, code := range []string{"", "il", "ILLINOIS", "I", "1L"} {
		if err := v.ValidateStateCode(code); err == nil {
			t.Errorf("Expected %q to be rejected", code)
		}
	}
}

// TestValidateScanSelections tests the list size limits.
func TestValidateScanSelections(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateScanSelections([]string{"hirevue"}, []string{"IL"}); err != nil {
		t.Errorf("Expected small selection to pass, got %v", err)
	}

	tooManyTools := make([]string, v.config.MaxToolSelections+1)
	if err := v.ValidateScanSelections(tooManyTools, nil); err == nil {
		t.Error("Expected oversized tool list to be rejected")
	}

	tooManyStates := make([]string, v.config.MaxStateSelections+1)
	if err := v.ValidateScanSelections(nil, tooManyStates); err == nil {
		t.Error("Expected oversized state list to be rejected")
	}
}

// TestValidateDocumentTypes tests the generate request's type list rules.
func TestValidateDocumentTypes(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateDocumentTypes([]string{"disclosure-candidate"}); err != nil {
		t.Errorf("Expected valid list to pass, got %v", err)
	}

	if err := v.ValidateDocumentTypes(nil); err == nil {
		t.Error("Expected empty list to be rejected")
	}

	if err := v.ValidateDocumentTypes([]string{"consent-form", "  "}); err == nil {
		t.Error("Expected blank entry to be rejected")
	}

	// Unknown types pass here; generation reports them as skipped.
	if err := v.ValidateDocumentTypes([]string{"not-a-real-type"}); err != nil {
		t.Errorf("Unknown types are skipped downstream, got %v", err)
	}

	tooMany := make([]string, v.config.MaxDocumentTypes+1)
	for i := range tooMany {
		tooMany[i] = "disclosure-candidate"
	}
	if err := v.ValidateDocumentTypes(tooMany); err == nil {
		t.Error("Expected oversized type list to be rejected")
	}
}

// TestValidateEmployeeCount tests the bounds on the funnel's count field.
func TestValidateEmployeeCount(t *testing.T) {
	v := newTestValidator()

	for _, count := range []int{0, 1, 25, 10_000_000} {
		if err := v.ValidateEmployeeCount(count); err != nil {
			t.Errorf("Expected %d to be valid, got %v", count, err)
		}
	}

	for _, count := range []int{-1, 10_000_001} {
		if err := v.ValidateEmployeeCount(count); err == nil {
			t.Errorf("Expected %d to be rejected", count)
		}
	}
}

// TestSanitizeString tests control character stripping.
func TestSanitizeString(t *testing.T) {
	v := newTestValidator()

	if got := v.SanitizeString("  Acme\x00 Corp\x1b  "); got != "Acme Corp" {
		t.Errorf("Expected 'Acme Corp', got %q", got)
	}

	// Newlines and tabs survive.
	if got := v.SanitizeString("line1\nline2\tend"); got != "line1\nline2\tend" {
		t.Errorf("Newline and tab should be preserved, got %q", got)
	}
}

// TestValidateCompanyName tests name presence and length limits.
func TestValidateCompanyName(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateCompanyName("Acme Corp"); err != nil {
		t.Errorf("Expected valid name to pass, got %v", err)
	}

	if err := v.ValidateCompanyName(""); err == nil {
		t.Error("Expected empty name to be rejected")
	}

	if err := v.ValidateCompanyName("   "); err == nil {
		t.Error("Expected whitespace-only name to be rejected")
	}

	long := strings.Repeat("a", v.config.MaxCompanyNameLength+1)
	if err := v.ValidateCompanyName(long); err == nil {
		t.Error("Expected over-length name to be rejected")
	}
}
