// This file renders the server-side pages: the marketing surface (home, tool
// directory, state guides) and the authenticated dashboard.
package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/dbartell/employarmor-sub001/internal/catalog"
	"github.com/dbartell/employarmor-sub001/internal/repository"
	"github.com/dbartell/employarmor-sub001/internal/security"
)

// PageHandler renders HTML pages from the catalog reference data and the
// session user's organization records.
type PageHandler struct {
	store     *session.Store
	orgRepo   *repository.OrgRepository
	docRepo   *repository.DocumentRepository
	remedRepo *repository.RemediationRepository
	logger    *security.Logger
}

// NewPageHandler creates a new instance of PageHandler.
func NewPageHandler(store *session.Store, logger *security.Logger) *PageHandler {
	return &PageHandler{
		store:     store,
		orgRepo:   repository.NewOrgRepository(),
		docRepo:   repository.NewDocumentRepository(),
		remedRepo: repository.NewRemediationRepository(),
		logger:    logger,
	}
}

// Home renders the landing page with the scan call to action.
func (h *PageHandler) Home(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Title":           "EmployArmor - AI Hiring Compliance",
		"RegulatedStates": catalog.RegulatedStates(),
		"ToolCount":       len(catalog.Tools()),
	})
}

// ToolDirectory renders the AI tool directory grouped by category.
func (h *PageHandler) ToolDirectory(c *fiber.Ctx) error {
	grouped := make(map[string][]catalog.ToolRecord)
	for _, t := range catalog.Tools() {
		grouped[t.Category] = append(grouped[t.Category], t)
	}

	return c.Render("tools", fiber.Map{
		"Title":      "AI Hiring Tool Directory - EmployArmor",
		"Categories": catalog.ToolCategories(),
		"Grouped":    grouped,
	})
}

// StateGuides renders the index of regulated-jurisdiction guides.
func (h *PageHandler) StateGuides(c *fiber.Ctx) error {
	return c.Render("states", fiber.Map{
		"Title":         "State AI Hiring Laws - EmployArmor",
		"Jurisdictions": catalog.Jurisdictions(),
	})
}

// StateGuide renders the guide for one jurisdiction.
func (h *PageHandler) StateGuide(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))
	j, ok := catalog.JurisdictionByCode(code)
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("404", fiber.Map{
			"Title": "Not Found - EmployArmor",
		}, "layouts/blank")
	}

	return c.Render("state_guide", fiber.Map{
		"Title":        j.Name + " AI Hiring Laws - EmployArmor",
		"Jurisdiction": j,
	})
}

// ScanPage renders the interactive compliance-scan funnel page.
func (h *PageHandler) ScanPage(c *fiber.Ctx) error {
	return c.Render("scan", fiber.Map{
		"Title":  "Compliance Scan - EmployArmor",
		"Tools":  catalog.Tools(),
		"States": catalog.AllStates(),
	})
}

// Dashboard renders the authenticated overview: organization profile,
// outstanding remediation items, and recent documents.
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	orgID, _ := c.Locals("org_id").(string)
	if orgID == "" {
		return c.Redirect("/login")
	}

	org, err := h.orgRepo.GetByID(c.Context(), orgID)
	if err != nil {
		h.logger.Error("loading organization for dashboard", err)
		return internalError(c)
	}

	pending, err := h.remedRepo.ListPendingByOrg(c.Context(), orgID)
	if err != nil {
		h.logger.Error("listing remediation items", err)
		return internalError(c)
	}

	docs, err := h.docRepo.ListByOrg(c.Context(), orgID, repository.DocumentFilter{LatestPerType: true})
	if err != nil {
		h.logger.Error("listing documents", err)
		return internalError(c)
	}

	return c.Render("dashboard", fiber.Map{
		"Title":       "Dashboard - EmployArmor",
		"Org":         org,
		"Remediation": pending,
		"Documents":   docs,
	})
}
