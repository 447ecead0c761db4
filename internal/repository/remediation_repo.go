// This file handles remediation items: tracked compliance gaps that resolve
// when a document of the matching type is generated.
package repository

import (
	"context"

	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/models"
)

// RemediationRepository handles remediation-item database operations.
type RemediationRepository struct{}

// NewRemediationRepository creates a new instance of RemediationRepository.
func NewRemediationRepository() *RemediationRepository {
	return &RemediationRepository{}
}

// Create inserts a pending remediation item for an organization.
func (r *RemediationRepository) Create(ctx context.Context, item *models.RemediationItem) error {
	query := `
		INSERT INTO remediation_items (org_id, item_key, description, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, created_at
	`
	return database.DB.QueryRow(ctx, query,
		item.OrgID, item.ItemKey, item.Description,
	).Scan(&item.ID, &item.CreatedAt)
}

// ListPendingByOrg retrieves an organization's unresolved items.
func (r *RemediationRepository) ListPendingByOrg(ctx context.Context, orgID string) ([]models.RemediationItem, error) {
	query := `
		SELECT id, org_id, item_key, description, status, linked_document_id,
		       completed_at, created_at
		FROM remediation_items
		WHERE org_id = $1 AND status = 'pending'
		ORDER BY created_at
	`

	rows, err := database.DB.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.RemediationItem
	for rows.Next() {
		var item models.RemediationItem
		if err := rows.Scan(
			&item.ID, &item.OrgID, &item.ItemKey, &item.Description,
			&item.Status, &item.LinkedDocumentID, &item.CompletedAt, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// ListByOrg retrieves all of an organization's items regardless of status,
// for the compliance-package rollup.
func (r *RemediationRepository) ListByOrg(ctx context.Context, orgID string) ([]models.RemediationItem, error) {
	query := `
		SELECT id, org_id, item_key, description, status, linked_document_id,
		       completed_at, created_at
		FROM remediation_items
		WHERE org_id = $1
		ORDER BY created_at
	`

	rows, err := database.DB.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.RemediationItem
	for rows.Next() {
		var item models.RemediationItem
		if err := rows.Scan(
			&item.ID, &item.OrgID, &item.ItemKey, &item.Description,
			&item.Status, &item.LinkedDocumentID, &item.CompletedAt, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// ResolveByKey flips every pending item with the given key to complete,
// linking the resolving document. Idempotent: already-complete items are
// untouched, so the reconciler can safely re-run it.
func (r *RemediationRepository) ResolveByKey(ctx context.Context, orgID, itemKey, documentID string) (int64, error) {
	query := `
		UPDATE remediation_items
		SET status = 'complete', completed_at = NOW(), linked_document_id = $1
		WHERE org_id = $2 AND item_key = $3 AND status = 'pending'
	`
	tag, err := database.DB.Exec(ctx, query, documentID, orgID, itemKey)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DriftedItem is a pending remediation item for which a resolving document
// already exists, meaning the bookkeeping write was missed during generation.
type DriftedItem struct {
	OrgID      string
	ItemKey    string
	DocumentID string
}

// FindDrifted locates pending items whose resolving document already exists.
// The newest matching document is chosen as the link target.
func (r *RemediationRepository) FindDrifted(ctx context.Context) ([]DriftedItem, error) {
	// disclosure items resolve via either disclosure doc type; consent via
	// the consent form. Mirrors generator.RemediationKey.
	query := `
		SELECT DISTINCT ON (ri.org_id, ri.item_key)
		       ri.org_id, ri.item_key, gd.id
		FROM remediation_items ri
		JOIN generated_documents gd ON gd.org_id = ri.org_id
		 AND ((ri.item_key = 'disclosure' AND gd.doc_type IN ('disclosure-candidate', 'disclosure-employee'))
		   OR (ri.item_key = 'consent' AND gd.doc_type = 'consent-form'))
		WHERE ri.status = 'pending'
		ORDER BY ri.org_id, ri.item_key, gd.created_at DESC
	`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drifted []DriftedItem
	for rows.Next() {
		var d DriftedItem
		if err := rows.Scan(&d.OrgID, &d.ItemKey, &d.DocumentID); err != nil {
			return nil, err
		}
		drifted = append(drifted, d)
	}

	return drifted, nil
}
