// This file handles the audit trail for compliance and security monitoring.
package repository

import (
	"context"

	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/models"
)

// AuditRepository handles audit-log database operations. Entries are
// append-only and never modified after insertion.
type AuditRepository struct{}

// NewAuditRepository creates a new instance of AuditRepository.
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Log appends an audit trail entry. Failures here are reported but should
// not abort the action being audited.
func (r *AuditRepository) Log(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_log (actor_id, agent_id, action, object_type, object_id, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return database.DB.QueryRow(ctx, query,
		entry.ActorID, entry.AgentID, entry.Action, entry.ObjectType,
		entry.ObjectID, entry.IPAddress, entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListRecent retrieves the most recent audit entries, newest first.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	query := `
		SELECT id, actor_id, agent_id, action, object_type, object_id,
		       ip_address, user_agent, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := database.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(
			&e.ID, &e.ActorID, &e.AgentID, &e.Action, &e.ObjectType,
			&e.ObjectID, &e.IPAddress, &e.UserAgent, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
