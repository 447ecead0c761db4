// This file implements the compliance-scan service backing both the public
// scan API and the marketing funnel's lead capture.
package services

import (
	"context"
	"encoding/json"

	"github.com/dbartell/employarmor-sub001/internal/analyzer"
	"github.com/dbartell/employarmor-sub001/internal/models"
	"github.com/dbartell/employarmor-sub001/internal/repository"
)

// ScanService runs compliance scans and records funnel leads. The risk
// report itself is derived, never stored; a lead keeps only the inputs that
// produced it plus the headline risk level.
type ScanService struct {
	leadRepo *repository.ScanLeadRepository
}

// NewScanService creates and returns a new ScanService instance.
func NewScanService() *ScanService {
	return &ScanService{
		leadRepo: repository.NewScanLeadRepository(),
	}
}

// Scan computes a compliance risk report from the selected tools and states.
// Pure derivation; nothing is persisted.
func (s *ScanService) Scan(req models.ScanRequest) analyzer.Report {
	return analyzer.Analyze(req.Tools, req.States)
}

// SaveLead records a funnel submission. The gaps payload is stored as the
// JSON the client reported, a snapshot for sales follow-up rather than a
// re-derivable value.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - form: Validated lead-capture submission
//
// Returns:
//   - *models.ScanLead: The stored lead with its id populated
//   - error: Serialization or persistence error
func (s *ScanService) SaveLead(ctx context.Context, form models.ScanLeadForm) (*models.ScanLead, error) {
	gaps, err := json.Marshal(form.Gaps)
	if err != nil {
		return nil, err
	}

	lead := &models.ScanLead{
		Email:         normalizeEmail(form.Email),
		States:        form.States,
		EmployeeCount: form.EmployeeCount,
		Tools:         form.Tools,
		RiskLevel:     form.RiskLevel,
		Gaps:          gaps,
	}
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	return lead, nil
}
