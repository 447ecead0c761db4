// This file handles the agent API: organization provisioning, document
// generation, and the compliance-package rollup, authenticated by agent key.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dbartell/employarmor-sub001/internal/generator"
	"github.com/dbartell/employarmor-sub001/internal/models"
	"github.com/dbartell/employarmor-sub001/internal/repository"
	"github.com/dbartell/employarmor-sub001/internal/security"
	"github.com/dbartell/employarmor-sub001/internal/services"
)

// AgentHandler handles agent API requests. Requests reach it only after the
// AgentAuth middleware has established the calling agent's identity.
type AgentHandler struct {
	orgRepo         *repository.OrgRepository
	documentRepo    *repository.DocumentRepository
	remediationRepo *repository.RemediationRepository
	auditRepo       *repository.AuditRepository
	provisioner     *services.ProvisionService
	generator       *generator.Generator
	logger          *security.Logger
	validator       *security.ValidationService
	baseURL         string
}

// NewAgentHandler creates a new instance of AgentHandler. The key service is
// the same instance backing the AgentAuth middleware, so keys minted during
// provisioning authenticate immediately.
func NewAgentHandler(gen *generator.Generator, keys *services.AgentKeyService, config *security.SecurityConfig, logger *security.Logger, baseURL string) *AgentHandler {
	return &AgentHandler{
		orgRepo:         repository.NewOrgRepository(),
		documentRepo:    repository.NewDocumentRepository(),
		remediationRepo: repository.NewRemediationRepository(),
		auditRepo:       repository.NewAuditRepository(),
		provisioner:     services.NewProvisionService(keys),
		generator:       gen,
		logger:          logger,
		validator:       security.NewValidationService(config),
		baseURL:         baseURL,
	}
}

// Provision handles POST /api/v1/agent/organizations.
//
// The calling agent creates a managed organization: the record carries the
// agent's id for later ownership checks, the remediation checklist is seeded
// for regulated states, and a fresh API key scoped to the organization is
// returned once in the response.
//
// Responses:
//   - 201: ProvisionOrgResponse with the organization id and raw API key
//   - 400: missing or invalid company name, state, or contact email
//   - 500: persistence or key-issuance failure
func (h *AgentHandler) Provision(c *fiber.Ctx) error {
	agentID, _ := c.Locals("agent_id").(string)

	var req models.ProvisionOrgRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON body")
	}

	if req.CompanyName == "" || req.State == "" || req.ContactEmail == "" {
		return badRequest(c, "company_name, state, and contact_email are required")
	}
	if err := h.validator.ValidateCompanyName(req.CompanyName); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.validator.ValidateStateCode(req.State); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.validator.ValidateEmail(req.ContactEmail); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.validator.ValidateEmployeeCount(req.EmployeeCount); err != nil {
		return badRequest(c, err.Error())
	}

	org, rawKey, err := h.provisioner.ProvisionOrg(c.Context(), agentID, req)
	if err != nil {
		h.logger.Error("provisioning organization for agent "+agentID, err)
		return internalError(c)
	}

	h.audit(c, agentID, "PROVISION_ORGANIZATION", "organization", org.ID)

	return c.Status(fiber.StatusCreated).JSON(models.ProvisionOrgResponse{
		OrgID:        org.ID,
		DashboardURL: h.baseURL + "/dashboard",
		APIKey:       rawKey,
	})
}

// Generate handles POST /api/v1/agent/organizations/:id/generate.
//
// Flow:
//  1. Validate the request body (state and documents are required).
//  2. Load the organization; unknown ids are 404.
//  3. Ownership check: the authenticated agent must own the organization.
//  4. Render, persist, and return the documents.
//
// Responses:
//   - 201: GenerateResponse with document URLs and contents
//   - 400: missing state or documents, unsupported format
//   - 403: organization belongs to a different agent
//   - 404: organization not found
//   - 500: persistence failure
func (h *AgentHandler) Generate(c *fiber.Ctx) error {
	orgID := c.Params("id")
	agentID, _ := c.Locals("agent_id").(string)

	var req models.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON body")
	}

	if req.State == "" {
		return badRequest(c, "state is required")
	}
	if err := h.validator.ValidateStateCode(req.State); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.validator.ValidateDocumentTypes(req.Documents); err != nil {
		return badRequest(c, err.Error())
	}

	org, err := h.orgRepo.GetByID(c.Context(), orgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound(c, "Organization not found")
		}
		h.logger.Error("loading organization "+orgID, err)
		return internalError(c)
	}

	if org.AgentID != agentID {
		h.logger.SecurityEvent(security.EventOwnershipDenied, nil, "", c.IP(), c.Get("User-Agent"),
			map[string]interface{}{
				"agent_id": agentID,
				"org_id":   orgID,
			})
		return forbidden(c, "You do not have access to this organization")
	}

	resp, err := h.generator.Generate(c.Context(), org, req)
	if err != nil {
		var badFormat generator.ErrBadFormat
		if errors.As(err, &badFormat) {
			return badRequest(c, badFormat.Error())
		}
		h.logger.Error("generating documents for org "+orgID, err)
		return internalError(c)
	}

	h.audit(c, agentID, "GENERATE_DOCUMENTS", "organization", orgID)

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Package handles GET /api/v1/agent/organizations/:id/package.
//
// Rolls up the organization's compliance state for the owning agent: every
// generated document with its public URL, the remediation checklist with
// current statuses, and a completion score derived from the checklist.
//
// Responses:
//   - 200: PackageResponse
//   - 403: organization belongs to a different agent
//   - 404: organization not found
//   - 500: persistence failure
func (h *AgentHandler) Package(c *fiber.Ctx) error {
	orgID := c.Params("id")
	agentID, _ := c.Locals("agent_id").(string)

	org, err := h.orgRepo.GetByID(c.Context(), orgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound(c, "Organization not found")
		}
		h.logger.Error("loading organization "+orgID, err)
		return internalError(c)
	}

	if org.AgentID != agentID {
		h.logger.SecurityEvent(security.EventOwnershipDenied, nil, "", c.IP(), c.Get("User-Agent"),
			map[string]interface{}{
				"agent_id": agentID,
				"org_id":   orgID,
			})
		return forbidden(c, "You do not have access to this organization")
	}

	docs, err := h.documentRepo.ListByOrg(c.Context(), orgID, repository.DocumentFilter{})
	if err != nil {
		h.logger.Error("listing documents for org "+orgID, err)
		return internalError(c)
	}

	items, err := h.remediationRepo.ListByOrg(c.Context(), orgID)
	if err != nil {
		h.logger.Error("listing remediation items for org "+orgID, err)
		return internalError(c)
	}

	resp := models.PackageResponse{
		OrgID:        org.ID,
		CompanyName:  org.Name,
		State:        primaryState(org),
		DashboardURL: h.baseURL + "/dashboard",
		Documents:    []models.PackageDocument{},
		Checklist:    []models.ChecklistItem{},
		CreatedAt:    org.CreatedAt,
		UpdatedAt:    org.UpdatedAt,
	}

	for _, doc := range docs {
		resp.Documents = append(resp.Documents, models.PackageDocument{
			ID:        doc.ID,
			Type:      doc.DocType,
			Title:     doc.Title,
			URL:       h.baseURL + "/api/disclosure/" + doc.ID,
			CreatedAt: doc.CreatedAt,
		})
	}

	completed := 0
	for _, item := range items {
		if item.Status == "complete" {
			completed++
		}
		resp.Checklist = append(resp.Checklist, models.ChecklistItem{
			Key:         item.ItemKey,
			Description: item.Description,
			Status:      item.Status,
		})
	}
	resp.ComplianceScore, resp.Status = checklistProgress(completed, len(items))

	return c.JSON(resp)
}

// primaryState returns the organization's first operating state, the one its
// checklist and documents are scoped to.
func primaryState(org *models.Organization) string {
	if len(org.States) > 0 {
		return org.States[0]
	}
	return ""
}

// checklistProgress derives the package score and status from checklist
// completion. An empty checklist means nothing is owed, which counts as
// fully compliant.
func checklistProgress(completed, total int) (int, string) {
	if total == 0 {
		return 100, "complete"
	}
	score := completed * 100 / total
	switch {
	case score == 100:
		return score, "complete"
	case completed > 0:
		return score, "in_progress"
	default:
		return score, "incomplete"
	}
}

func (h *AgentHandler) audit(c *fiber.Ctx, agentID, action, objectType, objectID string) {
	entry := &models.AuditLog{
		AgentID:    agentID,
		Action:     action,
		ObjectType: objectType,
		ObjectID:   objectID,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	}
	if err := h.auditRepo.Log(c.Context(), entry); err != nil {
		h.logger.Error("writing audit log", err)
	}
}
