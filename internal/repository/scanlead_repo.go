// This file handles scan leads captured from the compliance-scan funnel.
package repository

import (
	"context"

	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/models"
)

// ScanLeadRepository handles scan-lead database operations.
type ScanLeadRepository struct{}

// NewScanLeadRepository creates a new instance of ScanLeadRepository.
func NewScanLeadRepository() *ScanLeadRepository {
	return &ScanLeadRepository{}
}

// Create inserts a scan lead.
func (r *ScanLeadRepository) Create(ctx context.Context, lead *models.ScanLead) error {
	query := `
		INSERT INTO scan_leads (email, states, employee_count, tools, risk_level, gaps)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return database.DB.QueryRow(ctx, query,
		lead.Email, lead.States, lead.EmployeeCount, lead.Tools, lead.RiskLevel, lead.Gaps,
	).Scan(&lead.ID, &lead.CreatedAt)
}
