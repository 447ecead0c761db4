// This file handles impact assessment persistence: draft upserts from the
// wizard and the completion transition that stamps the renewal window.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/models"
)

// AssessmentRepository handles impact-assessment database operations.
type AssessmentRepository struct{}

// NewAssessmentRepository creates a new instance of AssessmentRepository.
func NewAssessmentRepository() *AssessmentRepository {
	return &AssessmentRepository{}
}

// Create inserts a new draft assessment.
//
// Side Effects: Populates a.CreatedAt with the database value
func (r *AssessmentRepository) Create(ctx context.Context, a *models.ImpactAssessment) error {
	query := `
		INSERT INTO impact_assessments (
			id, org_id, status, system_name, system_purpose, vendor_name,
			deployment_date, ai_tools, data_inputs, data_sources,
			data_retention_period, affected_groups, potential_harms, risk_level,
			safeguards, bias_testing_date, bias_testing_results,
			notification_method, appeal_process, human_reviewer_name,
			human_reviewer_role, human_reviewer_contact, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING created_at
	`
	return database.DB.QueryRow(ctx, query,
		a.ID, a.OrgID, a.Status, a.SystemName, a.SystemPurpose, a.VendorName,
		a.DeploymentDate, a.AITools, a.DataInputs, a.DataSources,
		a.DataRetentionPeriod, a.AffectedGroups, a.PotentialHarms, a.RiskLevel,
		a.Safeguards, a.BiasTestingDate, a.BiasTestingResults,
		a.NotificationMethod, a.AppealProcess, a.HumanReviewerName,
		a.HumanReviewerRole, a.HumanReviewerContact, a.Version,
	).Scan(&a.CreatedAt)
}

// Update rewrites every editable field of an existing draft. Field-by-field
// merging happens in the wizard; by the time a save reaches the repository
// the full record is written.
func (r *AssessmentRepository) Update(ctx context.Context, a *models.ImpactAssessment) error {
	query := `
		UPDATE impact_assessments
		SET system_name = $1, system_purpose = $2, vendor_name = $3,
		    deployment_date = $4, ai_tools = $5, data_inputs = $6,
		    data_sources = $7, data_retention_period = $8, affected_groups = $9,
		    potential_harms = $10, risk_level = $11, safeguards = $12,
		    bias_testing_date = $13, bias_testing_results = $14,
		    notification_method = $15, appeal_process = $16,
		    human_reviewer_name = $17, human_reviewer_role = $18,
		    human_reviewer_contact = $19
		WHERE id = $20 AND status = 'draft'
	`
	_, err := database.DB.Exec(ctx, query,
		a.SystemName, a.SystemPurpose, a.VendorName, a.DeploymentDate,
		a.AITools, a.DataInputs, a.DataSources, a.DataRetentionPeriod,
		a.AffectedGroups, a.PotentialHarms, a.RiskLevel, a.Safeguards,
		a.BiasTestingDate, a.BiasTestingResults, a.NotificationMethod,
		a.AppealProcess, a.HumanReviewerName, a.HumanReviewerRole,
		a.HumanReviewerContact, a.ID,
	)
	return err
}

// GetByID retrieves a single assessment with all fields.
func (r *AssessmentRepository) GetByID(ctx context.Context, id string) (*models.ImpactAssessment, error) {
	query := `
		SELECT id, org_id, status, system_name, system_purpose, vendor_name,
		       deployment_date, ai_tools, data_inputs, data_sources,
		       data_retention_period, affected_groups, potential_harms,
		       risk_level, safeguards, bias_testing_date, bias_testing_results,
		       notification_method, appeal_process, human_reviewer_name,
		       human_reviewer_role, human_reviewer_contact, version,
		       created_at, completed_at, expires_at
		FROM impact_assessments
		WHERE id = $1
	`

	var a models.ImpactAssessment
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.OrgID, &a.Status, &a.SystemName, &a.SystemPurpose,
		&a.VendorName, &a.DeploymentDate, &a.AITools, &a.DataInputs,
		&a.DataSources, &a.DataRetentionPeriod, &a.AffectedGroups,
		&a.PotentialHarms, &a.RiskLevel, &a.Safeguards, &a.BiasTestingDate,
		&a.BiasTestingResults, &a.NotificationMethod, &a.AppealProcess,
		&a.HumanReviewerName, &a.HumanReviewerRole, &a.HumanReviewerContact,
		&a.Version, &a.CreatedAt, &a.CompletedAt, &a.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// ListByOrg retrieves all assessments of an organization, newest first.
func (r *AssessmentRepository) ListByOrg(ctx context.Context, orgID string) ([]models.ImpactAssessment, error) {
	query := `
		SELECT id, org_id, status, system_name, system_purpose, vendor_name,
		       deployment_date, ai_tools, data_inputs, data_sources,
		       data_retention_period, affected_groups, potential_harms,
		       risk_level, safeguards, bias_testing_date, bias_testing_results,
		       notification_method, appeal_process, human_reviewer_name,
		       human_reviewer_role, human_reviewer_contact, version,
		       created_at, completed_at, expires_at
		FROM impact_assessments
		WHERE org_id = $1
		ORDER BY created_at DESC
	`

	rows, err := database.DB.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []models.ImpactAssessment
	for rows.Next() {
		var a models.ImpactAssessment
		if err := rows.Scan(
			&a.ID, &a.OrgID, &a.Status, &a.SystemName, &a.SystemPurpose,
			&a.VendorName, &a.DeploymentDate, &a.AITools, &a.DataInputs,
			&a.DataSources, &a.DataRetentionPeriod, &a.AffectedGroups,
			&a.PotentialHarms, &a.RiskLevel, &a.Safeguards, &a.BiasTestingDate,
			&a.BiasTestingResults, &a.NotificationMethod, &a.AppealProcess,
			&a.HumanReviewerName, &a.HumanReviewerRole, &a.HumanReviewerContact,
			&a.Version, &a.CreatedAt, &a.CompletedAt, &a.ExpiresAt,
		); err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}

	return assessments, nil
}

// ErrNotDraft is returned when a completion targets an assessment that is
// missing or already complete.
var ErrNotDraft = errors.New("assessment is not a draft")

// Complete transitions a draft to complete, stamping completed_at and
// expires_at. The expiry is always exactly one year after completion; the
// pair is written together so the renewal invariant cannot be violated by a
// partial write. The transition is one-way: an assessment that is already
// complete keeps its original timestamps and the call returns ErrNotDraft.
func (r *AssessmentRepository) Complete(ctx context.Context, id string, completedAt, expiresAt time.Time) error {
	query := `
		UPDATE impact_assessments
		SET status = 'complete', completed_at = $1, expires_at = $2
		WHERE id = $3 AND status = 'draft'
	`
	tag, err := database.DB.Exec(ctx, query, completedAt, expiresAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotDraft
	}
	return nil
}
