// Package services provides the business logic layer for EmployArmor.
// This file implements authentication services including login validation,
// password hashing, and the signup flow that provisions an organization
// together with its first user account.
package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dbartell/employarmor-sub001/internal/models"
	"github.com/dbartell/employarmor-sub001/internal/repository"
)

// AuthService handles authentication and account provisioning operations.
// Provides a layer of abstraction between HTTP handlers and the repositories,
// implementing business logic for credential management.
//
// Security Notes:
//   - Uses bcrypt with cost 12 for password hashing
//   - Constant-time password comparison prevents timing attacks
//   - Never stores or logs plaintext passwords
type AuthService struct {
	userRepo *repository.UserRepository
	orgRepo  *repository.OrgRepository
}

// NewAuthService creates and returns a new AuthService instance.
func NewAuthService() *AuthService {
	return &AuthService{
		userRepo: repository.NewUserRepository(),
		orgRepo:  repository.NewOrgRepository(),
	}
}

// Authenticate verifies user credentials and returns the user record on success.
// Performs two-step validation: email lookup followed by password verification.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - email: User's email address, matched case-insensitively
//   - password: Plaintext password provided by user
//
// Returns:
//   - *models.User: User record if authentication successful
//   - error: Authentication error (user not found or invalid password)
//
// Security Notes:
//   - bcrypt.CompareHashAndPassword is constant-time to prevent timing attacks
//   - Callers should present the same error message for "user not found" and
//     "invalid password" to avoid revealing which accounts exist
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return user, nil
}

// HashPassword generates a bcrypt hash of the provided plaintext password.
//
// Cost 12 provides 2^12 = 4096 iterations, balancing security and
// performance per NIST SP 800-63B recommendations. The output string
// embeds the salt and cost and is safe to store as-is.
func (s *AuthService) HashPassword(password string) (string, error) {
	const bcryptCost = 12
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// Signup provisions a new organization and its initial user in one call.
// This backs the account-creation step at the end of the compliance-scan
// funnel, where the visitor has just seen their risk report.
//
// The new organization has no agent, so it is owned by the signed-up user
// and managed through the dashboard rather than the agent API.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - form: Validated signup submission (email, password, company name)
//
// Returns:
//   - *models.User: The created user with its OrgID populated
//   - error: Hashing or persistence error (including duplicate email)
func (s *AuthService) Signup(ctx context.Context, form models.SignupForm) (*models.User, error) {
	hash, err := s.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(form.Email)

	org := &models.Organization{
		ID:           uuid.New().String(),
		Name:         form.CompanyName,
		ContactEmail: email,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         form.CompanyName,
		OrgID:        org.ID,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// normalizeEmail lowercases and trims an address so lookups are stable
// regardless of how the user typed it.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
