// Package repository implements the database access layer for EmployArmor.
// This file handles organization records: creation at signup or agent
// provisioning, lookup, and the generated-document counter.
package repository

import (
	"context"

	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/models"
)

// OrgRepository handles organization-related database operations.
type OrgRepository struct{}

// NewOrgRepository creates a new instance of OrgRepository.
func NewOrgRepository() *OrgRepository {
	return &OrgRepository{}
}

// Create inserts a new organization record.
//
// Side Effects: Populates org.CreatedAt and org.UpdatedAt with database values
func (r *OrgRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (id, name, contact_email, agent_id, employee_tier, states)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	return database.DB.QueryRow(ctx, query,
		org.ID, org.Name, org.ContactEmail, org.AgentID, org.EmployeeTier, org.States,
	).Scan(&org.CreatedAt, &org.UpdatedAt)
}

// GetByID retrieves a single organization by its UUID.
// Returns pgx.ErrNoRows when the organization does not exist.
func (r *OrgRepository) GetByID(ctx context.Context, orgID string) (*models.Organization, error) {
	query := `
		SELECT id, name, contact_email, agent_id, employee_tier, states,
		       documents_generated, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var org models.Organization
	err := database.DB.QueryRow(ctx, query, orgID).Scan(
		&org.ID, &org.Name, &org.ContactEmail, &org.AgentID, &org.EmployeeTier,
		&org.States, &org.DocumentsGenerated, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &org, nil
}

// IncrementDocumentsGenerated adds n to the organization's running document
// counter. The counter is bookkeeping, not ground truth; the reconciler
// repairs it from the documents table when this write is missed.
func (r *OrgRepository) IncrementDocumentsGenerated(ctx context.Context, orgID string, n int) error {
	query := `
		UPDATE organizations
		SET documents_generated = documents_generated + $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := database.DB.Exec(ctx, query, n, orgID)
	return err
}

// SyncDocumentCounters rewrites every organization's documents_generated
// counter from the authoritative count in generated_documents. Used by the
// reconciler to repair drift after partially failed generation writes.
func (r *OrgRepository) SyncDocumentCounters(ctx context.Context) (int64, error) {
	query := `
		UPDATE organizations o
		SET documents_generated = d.n, updated_at = NOW()
		FROM (
			SELECT org_id, COUNT(*) AS n
			FROM generated_documents
			GROUP BY org_id
		) d
		WHERE o.id = d.org_id AND o.documents_generated <> d.n
	`
	tag, err := database.DB.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
