// This file handles the impact-assessment API behind the dashboard wizard.
// The browser owns the step-by-step wizard state; the server sees draft
// saves and the final completion transition.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dbartell/employarmor-sub001/internal/repository"
	"github.com/dbartell/employarmor-sub001/internal/security"
	"github.com/dbartell/employarmor-sub001/internal/services"
	"github.com/dbartell/employarmor-sub001/internal/wizard"
)

// AssessmentHandler handles impact-assessment requests for the dashboard.
type AssessmentHandler struct {
	service *services.AssessmentService
	logger  *security.Logger
}

// NewAssessmentHandler creates a new instance of AssessmentHandler.
func NewAssessmentHandler(logger *security.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		service: services.NewAssessmentService(),
		logger:  logger,
	}
}

// draftRequest is the body of a draft save: the optional persisted id plus
// the wizard's accumulated form.
type draftRequest struct {
	ID   string          `json:"id"`
	Form wizard.FormData `json:"form"`
}

// SaveDraft handles POST /api/assessments/draft. The first save creates the
// draft and returns its id; later saves rewrite it.
func (h *AssessmentHandler) SaveDraft(c *fiber.Ctx) error {
	orgID, _ := c.Locals("org_id").(string)
	if orgID == "" {
		return forbidden(c, "No organization in session")
	}

	var req draftRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON body")
	}
	if len(req.Form) == 0 {
		return badRequest(c, "form is required")
	}

	if req.ID != "" {
		if ok, err := h.requireOwnership(c, req.ID, orgID); !ok {
			return err
		}
	}

	id, err := h.service.SaveDraft(c.Context(), orgID, req.ID, req.Form)
	if err != nil {
		h.logger.Error("saving assessment draft", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{"id": id})
}

// Complete handles POST /api/assessments/:id/complete, the explicit action
// that stamps the completion and one-year renewal timestamps.
func (h *AssessmentHandler) Complete(c *fiber.Ctx) error {
	orgID, _ := c.Locals("org_id").(string)
	if orgID == "" {
		return forbidden(c, "No organization in session")
	}

	id := c.Params("id")
	if ok, err := h.requireOwnership(c, id, orgID); !ok {
		return err
	}

	if err := h.service.Complete(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotDraft) {
			return conflict(c, "Assessment is already complete")
		}
		h.logger.Error("completing assessment "+id, err)
		return internalError(c)
	}

	a, err := h.service.Get(c.Context(), id)
	if err != nil {
		h.logger.Error("reloading assessment "+id, err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"id":           a.ID,
		"status":       a.Status,
		"completed_at": a.CompletedAt,
		"expires_at":   a.ExpiresAt,
	})
}

// List handles GET /api/assessments for the authenticated organization.
func (h *AssessmentHandler) List(c *fiber.Ctx) error {
	orgID, _ := c.Locals("org_id").(string)
	if orgID == "" {
		return forbidden(c, "No organization in session")
	}

	assessments, err := h.service.ListByOrg(c.Context(), orgID)
	if err != nil {
		h.logger.Error("listing assessments for org "+orgID, err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{"assessments": assessments})
}

// Get handles GET /api/assessments/:id.
func (h *AssessmentHandler) Get(c *fiber.Ctx) error {
	orgID, _ := c.Locals("org_id").(string)
	if orgID == "" {
		return forbidden(c, "No organization in session")
	}

	a, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound(c, "Assessment not found")
		}
		h.logger.Error("loading assessment", err)
		return internalError(c)
	}
	if a.OrgID != orgID {
		return notFound(c, "Assessment not found")
	}

	return c.JSON(a)
}

// requireOwnership resolves an assessment and verifies it belongs to the
// session's organization. Missing and foreign assessments both read as 404
// so ids cannot be enumerated. On failure the response has already been written;
// the caller returns the second value.
func (h *AssessmentHandler) requireOwnership(c *fiber.Ctx, id, orgID string) (bool, error) {
	a, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, notFound(c, "Assessment not found")
		}
		h.logger.Error("loading assessment", err)
		return false, internalError(c)
	}
	if a.OrgID != orgID {
		return false, notFound(c, "Assessment not found")
	}
	return true, nil
}
