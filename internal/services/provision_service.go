// This file implements agent-driven organization provisioning: an external
// agent creates a managed organization, receives an API key scoped to it, and
// the organization starts life with its compliance checklist seeded.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dbartell/employarmor-sub001/internal/catalog"
	"github.com/dbartell/employarmor-sub001/internal/models"
	"github.com/dbartell/employarmor-sub001/internal/repository"
)

// seedItems are the remediation items every regulated-state organization
// starts with. The keys match the ones document generation resolves.
var seedItems = []struct {
	Key         string
	Description string
}{
	{"disclosure", "Provide AI-use disclosure notices to candidates and employees"},
	{"consent", "Collect signed consent before AI-assisted interviews or assessments"},
}

// ProvisionService creates agent-managed organizations. Unlike the signup
// flow, provisioned organizations carry the owning agent's id and are
// operated through the agent API rather than a browser session.
type ProvisionService struct {
	orgRepo         *repository.OrgRepository
	remediationRepo *repository.RemediationRepository
	keys            *AgentKeyService
}

// NewProvisionService creates and returns a new ProvisionService instance.
// The key service is shared with the auth middleware so keys minted here
// verify against the same store.
func NewProvisionService(keys *AgentKeyService) *ProvisionService {
	return &ProvisionService{
		orgRepo:         repository.NewOrgRepository(),
		remediationRepo: repository.NewRemediationRepository(),
		keys:            keys,
	}
}

// ProvisionOrg creates an organization owned by the calling agent, seeds its
// remediation checklist when the state is regulated, and mints an API key
// for it.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - agentID: The authenticated agent, recorded as the organization's owner
//   - req: Validated provisioning request (company name, state, contact email)
//
// Returns:
//   - *models.Organization: The created organization
//   - string: The raw API key, shown once and never recoverable
//   - error: Persistence or key-issuance error
func (s *ProvisionService) ProvisionOrg(ctx context.Context, agentID string, req models.ProvisionOrgRequest) (*models.Organization, string, error) {
	org := &models.Organization{
		ID:           uuid.New().String(),
		Name:         req.CompanyName,
		ContactEmail: normalizeEmail(req.ContactEmail),
		AgentID:      agentID,
		EmployeeTier: tierForCount(req.EmployeeCount),
		States:       []string{req.State},
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, "", fmt.Errorf("creating organization: %w", err)
	}

	// Regulated states start with the checklist that document generation
	// later resolves. Unregulated states have nothing to remediate.
	if catalog.IsRegulated(req.State) {
		for _, seed := range seedItems {
			item := &models.RemediationItem{
				OrgID:       org.ID,
				ItemKey:     seed.Key,
				Description: seed.Description,
			}
			if err := s.remediationRepo.Create(ctx, item); err != nil {
				return nil, "", fmt.Errorf("seeding %s remediation item: %w", seed.Key, err)
			}
		}
	}

	rawKey, _, err := s.keys.IssueKey(ctx, agentID, org.Name)
	if err != nil {
		return nil, "", fmt.Errorf("issuing organization key: %w", err)
	}

	return org, rawKey, nil
}

// tierForCount buckets a headcount into the stored employee tier. Zero or
// negative counts mean the agent did not supply one.
func tierForCount(count int) string {
	switch {
	case count <= 0:
		return ""
	case count <= 15:
		return "1-15"
	case count <= 50:
		return "16-50"
	case count <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
