// Package handlers implements HTTP request handlers for EmployArmor.
// This file handles the public compliance-scan API and the funnel's
// lead-capture endpoint.
package handlers

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/dbartell/employarmor-sub001/internal/catalog"
	"github.com/dbartell/employarmor-sub001/internal/models"
	"github.com/dbartell/employarmor-sub001/internal/repository"
	"github.com/dbartell/employarmor-sub001/internal/security"
	"github.com/dbartell/employarmor-sub001/internal/services"
)

// ScanHandler handles the public scan API and lead capture.
type ScanHandler struct {
	scanService *services.ScanService
	auditRepo   *repository.AuditRepository
	validation  *security.ValidationService
	logger      *security.Logger
	baseURL     string
}

// NewScanHandler creates a new instance of ScanHandler.
func NewScanHandler(config *security.SecurityConfig, logger *security.Logger, baseURL string) *ScanHandler {
	return &ScanHandler{
		scanService: services.NewScanService(),
		auditRepo:   repository.NewAuditRepository(),
		validation:  security.NewValidationService(config),
		logger:      logger,
		baseURL:     baseURL,
	}
}

// applicableLawView is the per-jurisdiction block of a scan response.
type applicableLawView struct {
	State        string   `json:"state"`
	StateName    string   `json:"stateName"`
	Law          string   `json:"law"`
	Effective    string   `json:"effective"`
	Requirements []string `json:"requirements"`
	Penalties    string   `json:"penalties"`
}

// Scan handles POST /api/v1/scan, the public rate-limited scan endpoint.
// Validates the selection, runs the analyzer, and returns the full risk
// report plus jurisdiction detail for the states that carry statutes.
//
// Request Body: {"states": [...], "tools": [...], "employeeCount": N}
//
// Responses:
//   - 200: risk report
//   - 400: missing or out-of-range inputs, with a field-specific message
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	var req models.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON body")
	}

	if len(req.States) == 0 {
		return badRequest(c, "states is required and must be a non-empty array of state codes (e.g. ['IL', 'CA'])")
	}
	if len(req.Tools) == 0 {
		return badRequest(c, "tools is required and must be a non-empty array of tool IDs (e.g. ['hirevue', 'greenhouse'])")
	}
	if req.EmployeeCount < 1 {
		return badRequest(c, "employeeCount is required and must be a positive number")
	}
	if err := h.validation.ValidateScanSelections(req.Tools, req.States); err != nil {
		return badRequest(c, err.Error())
	}

	report := h.scanService.Scan(req)

	laws := []applicableLawView{}
	for _, code := range req.States {
		if j, ok := catalog.JurisdictionByCode(code); ok && j.LawName != "" {
			laws = append(laws, applicableLawView{
				State:        j.Code,
				StateName:    j.Name,
				Law:          j.LawName,
				Effective:    j.EffectiveDate,
				Requirements: j.Requirements,
				Penalties:    j.Penalties,
			})
		}
	}

	return c.JSON(fiber.Map{
		"complianceScore": report.ComplianceScore,
		"complianceLevel": report.ComplianceLevel,
		"riskScore":       report.RiskScore,
		"riskLevel":       report.RiskLevel,
		"gaps":            report.Gaps,
		"applicableLaws":  laws,
		"lawNames":        report.ApplicableLaws,
		"toolAnalysis": fiber.Map{
			"total":  report.TotalTools(),
			"high":   report.High,
			"medium": report.Medium,
			"low":    report.Low,
		},
		"skippedTools":  report.SkippedTools,
		"skippedStates": report.SkippedStates,
		"resultsUrl":    h.resultsURL(req),
		"meta": fiber.Map{
			"regulatedStates": catalog.RegulatedStates(),
			"toolCount":       len(catalog.Tools()),
		},
	})
}

// resultsURL encodes the scan inputs into a shareable results link so the
// caller can open the same report in the web UI.
func (h *ScanHandler) resultsURL(req models.ScanRequest) string {
	params, err := json.Marshal(req)
	if err != nil {
		return h.baseURL + "/scan"
	}
	return h.baseURL + "/scan?results=" + base64.StdEncoding.EncodeToString(params)
}

// SaveLead handles POST /api/scan, the funnel's lead-capture call made when
// a visitor leaves their email against a scan result.
//
// Responses:
//   - 201: {"id": N}
//   - 400: invalid email or out-of-range inputs
func (h *ScanHandler) SaveLead(c *fiber.Ctx) error {
	var form models.ScanLeadForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid JSON body")
	}

	if err := h.validation.ValidateEmail(form.Email); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.validation.ValidateEmployeeCount(form.EmployeeCount); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.validation.ValidateScanSelections(form.Tools, form.States); err != nil {
		return badRequest(c, err.Error())
	}

	lead, err := h.scanService.SaveLead(c.Context(), form)
	if err != nil {
		h.logger.Error("saving scan lead", err)
		return internalError(c)
	}

	h.audit(c, "SCAN_LEAD_CAPTURED", "scan_lead", lead.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": lead.ID})
}

func (h *ScanHandler) audit(c *fiber.Ctx, action, objectType, objectID string) {
	entry := &models.AuditLog{
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
