// This file implements the impact-assessment service. It adapts the wizard's
// accumulated form data to the persisted assessment record and enforces the
// completion rule: completing stamps completed_at and an expires_at exactly
// one year later, written together.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dbartell/employarmor-sub001/internal/models"
	"github.com/dbartell/employarmor-sub001/internal/repository"
	"github.com/dbartell/employarmor-sub001/internal/wizard"
)

// AssessmentService handles impact-assessment business logic: draft upserts
// from the wizard and the one-way completion transition.
type AssessmentService struct {
	repo *repository.AssessmentRepository
	now  func() time.Time
}

// NewAssessmentService creates and returns a new AssessmentService instance.
func NewAssessmentService() *AssessmentService {
	return &AssessmentService{
		repo: repository.NewAssessmentRepository(),
		now:  time.Now,
	}
}

// SaveDraft upserts the wizard's accumulated form as a draft assessment.
// With an empty id a new draft is created and its generated id returned;
// otherwise the existing draft is rewritten in full. Completed assessments
// are never updated: the repository's draft guard makes a late save against
// a completed record a silent no-op rather than a corruption.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - orgID: Owning organization
//   - id: Persisted assessment id, empty for a first save
//   - form: The wizard's accumulated answers
//
// Returns:
//   - string: The persisted assessment id (newly generated on first save)
//   - error: Persistence error
func (s *AssessmentService) SaveDraft(ctx context.Context, orgID, id string, form wizard.FormData) (string, error) {
	a := assessmentFromForm(form)
	a.OrgID = orgID
	a.Status = "draft"

	if id == "" {
		a.ID = uuid.New().String()
		a.Version = 1
		if err := s.repo.Create(ctx, a); err != nil {
			return "", err
		}
		return a.ID, nil
	}

	a.ID = id
	if err := s.repo.Update(ctx, a); err != nil {
		return "", err
	}
	return id, nil
}

// Complete transitions a draft assessment to complete. The completion
// timestamp and the one-year expiry are computed from the same instant so
// expires_at is always exactly completed_at plus one calendar year.
func (s *AssessmentService) Complete(ctx context.Context, id string) error {
	completedAt := s.now().UTC()
	expiresAt := completedAt.AddDate(1, 0, 0)
	return s.repo.Complete(ctx, id, completedAt, expiresAt)
}

// Get retrieves a single assessment.
func (s *AssessmentService) Get(ctx context.Context, id string) (*models.ImpactAssessment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByOrg retrieves an organization's assessments, newest first.
func (s *AssessmentService) ListByOrg(ctx context.Context, orgID string) ([]models.ImpactAssessment, error) {
	return s.repo.ListByOrg(ctx, orgID)
}

// PersisterFor returns a wizard.Persister bound to one organization, so the
// wizard itself stays ignorant of ownership.
func (s *AssessmentService) PersisterFor(orgID string) wizard.Persister {
	return &orgPersister{service: s, orgID: orgID}
}

type orgPersister struct {
	service *AssessmentService
	orgID   string
}

func (p *orgPersister) SaveDraft(ctx context.Context, id string, form wizard.FormData) (string, error) {
	return p.service.SaveDraft(ctx, p.orgID, id, form)
}

func (p *orgPersister) Complete(ctx context.Context, id string) error {
	return p.service.Complete(ctx, id)
}

// assessmentFromForm maps the wizard's loosely typed form onto the assessment
// record. Missing or mistyped fields map to zero values; the wizard's
// required-field gating has already run by the time a save happens.
func assessmentFromForm(form wizard.FormData) *models.ImpactAssessment {
	return &models.ImpactAssessment{
		SystemName:           formString(form, "system_name"),
		SystemPurpose:        formString(form, "system_purpose"),
		VendorName:           formString(form, "vendor_name"),
		DeploymentDate:       formString(form, "deployment_date"),
		AITools:              formStrings(form, "ai_tools"),
		DataInputs:           formStrings(form, "data_inputs"),
		DataSources:          formString(form, "data_sources"),
		DataRetentionPeriod:  formString(form, "data_retention_period"),
		AffectedGroups:       formStrings(form, "affected_groups"),
		PotentialHarms:       formString(form, "potential_harms"),
		RiskLevel:            formString(form, "risk_level"),
		Safeguards:           formString(form, "safeguards"),
		BiasTestingDate:      formString(form, "bias_testing_date"),
		BiasTestingResults:   formString(form, "bias_testing_results"),
		NotificationMethod:   formString(form, "notification_method"),
		AppealProcess:        formString(form, "appeal_process"),
		HumanReviewerName:    formString(form, "human_reviewer_name"),
		HumanReviewerRole:    formString(form, "human_reviewer_role"),
		HumanReviewerContact: formString(form, "human_reviewer_contact"),
	}
}

func formString(form wizard.FormData, key string) string {
	if s, ok := form[key].(string); ok {
		return s
	}
	return ""
}

func formStrings(form wizard.FormData, key string) []string {
	switch v := form[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
