// This file handles browser authentication: signup at the end of the scan
// funnel, login, and logout.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/dbartell/employarmor-sub001/internal/middleware"
	"github.com/dbartell/employarmor-sub001/internal/models"
	"github.com/dbartell/employarmor-sub001/internal/repository"
	"github.com/dbartell/employarmor-sub001/internal/security"
	"github.com/dbartell/employarmor-sub001/internal/services"
)

// AuthHandler handles authentication-related HTTP requests.
// Manages signup, login, logout, and session lifecycle.
type AuthHandler struct {
	store       *session.Store
	authService *services.AuthService
	auditRepo   *repository.AuditRepository
	secure      *middleware.SecurityMiddleware
	validation  *security.ValidationService
	logger      *security.Logger
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(store *session.Store, secure *middleware.SecurityMiddleware, config *security.SecurityConfig, logger *security.Logger) *AuthHandler {
	return &AuthHandler{
		store:       store,
		authService: services.NewAuthService(),
		auditRepo:   repository.NewAuditRepository(),
		secure:      secure,
		validation:  security.NewValidationService(config),
		logger:      logger,
	}
}

// ShowLogin renders the login page for unauthenticated users.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Login - EmployArmor",
	}, "layouts/blank")
}

// Login authenticates user credentials and creates a session.
//
// Form Data:
//   - email: User's email address
//   - password: User's password
//
// Side Effects:
//   - Creates session with user_id, user_email, org_id on success
//   - Feeds the lockout tracker on failure
//   - Redirects to /dashboard on success
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	if err := h.secure.LoginRateLimit(email, c.IP()); err != nil {
		return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{
			"Error": err.Error(),
		}, "layouts/blank")
	}

	user, err := h.authService.Authenticate(c.Context(), email, password)
	if err != nil {
		h.secure.RecordLoginFailure(email, c.IP())

		// Same message for unknown accounts and wrong passwords.
		return c.Render("login", fiber.Map{
			"Error": "Invalid email or password",
		}, "layouts/blank")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return internalError(c)
	}

	sess.Set("user_id", user.ID)
	sess.Set("user_email", user.Email)
	sess.Set("org_id", user.OrgID)

	if err := sess.Save(); err != nil {
		h.logger.Error("saving session", err)
		return internalError(c)
	}

	h.secure.RecordLoginSuccess(user.Email, c.IP(), user.ID)

	return c.Redirect("/dashboard")
}

// ShowSignup renders the account-creation page shown at the end of the
// compliance-scan funnel.
func (h *AuthHandler) ShowSignup(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{
		"Title": "Create Account - EmployArmor",
	}, "layouts/blank")
}

// Signup creates an organization and its first user, then logs them in.
//
// Side Effects:
//   - Inserts an organization and user row
//   - Creates an authenticated session
//   - Writes a SIGNUP audit entry
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	form := models.SignupForm{
		Email:       c.FormValue("email"),
		Password:    c.FormValue("password"),
		CompanyName: c.FormValue("company_name"),
	}

	if err := h.validation.ValidateEmail(form.Email); err != nil {
		return h.signupError(c, err.Error())
	}
	if err := h.validation.ValidatePassword(form.Password); err != nil {
		return h.signupError(c, err.Error())
	}
	if err := h.validation.ValidateCompanyName(form.CompanyName); err != nil {
		return h.signupError(c, err.Error())
	}

	user, err := h.authService.Signup(c.Context(), form)
	if err != nil {
		h.logger.Error("creating account", err)
		return h.signupError(c, "Could not create account; the email may already be registered")
	}

	userID := user.ID
	h.logger.SecurityEvent(security.EventSignup, &userID, user.Email, c.IP(), c.Get("User-Agent"), nil)

	entry := &models.AuditLog{
		ActorID:    &userID,
		Action:     "SIGNUP",
		ObjectType: "organization",
		ObjectID:   user.OrgID,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	}
	if err := h.auditRepo.Log(c.Context(), entry); err != nil {
		h.logger.Error("writing audit log", err)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	sess.Set("user_id", user.ID)
	sess.Set("user_email", user.Email)
	sess.Set("org_id", user.OrgID)
	if err := sess.Save(); err != nil {
		return c.Redirect("/login")
	}

	return c.Redirect("/dashboard")
}

func (h *AuthHandler) signupError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{
		"Error": message,
	}, "layouts/blank")
}

// Logout destroys the user session and redirects to the login page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}

	userID, _ := sess.Get("user_id").(int)
	userEmail, _ := sess.Get("user_email").(string)

	if userID != 0 {
		h.logger.SecurityEvent(security.EventLogout, &userID, userEmail, c.IP(), c.Get("User-Agent"), nil)
	}

	if err := sess.Destroy(); err != nil {
		return err
	}

	return c.Redirect("/login")
}
