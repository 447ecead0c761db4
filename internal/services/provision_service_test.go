package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbartell/employarmor-sub001/internal/models"
)

// TestProvisionService_RegulatedState verifies provisioning in a regulated
// state creates the organization with the agent's id, seeds the disclosure
// and consent checklist, and mints a working API key.
func TestProvisionService_RegulatedState(t *testing.T) {
	testTime := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO organizations").
		WithArgs(pgxmock.AnyArg(), "Acme Corp", "hr@acme.test", "agent-1",
			"16-50", []string{"IL"}).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(testTime, testTime))

	mock.ExpectQuery("INSERT INTO remediation_items").
		WithArgs(pgxmock.AnyArg(), "disclosure", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, testTime))
	mock.ExpectQuery("INSERT INTO remediation_items").
		WithArgs(pgxmock.AnyArg(), "consent", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(2, testTime))

	mock.ExpectQuery("INSERT INTO agent_keys").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(testTime))

	s := NewProvisionService(NewAgentKeyService())
	org, rawKey, err := s.ProvisionOrg(context.Background(), "agent-1", models.ProvisionOrgRequest{
		CompanyName:   "Acme Corp",
		State:         "IL",
		ContactEmail:  "HR@Acme.Test",
		EmployeeCount: 40,
	})

	require.NoError(t, err)
	assert.Equal(t, "agent-1", org.AgentID, "provisioned org must carry its owner")
	assert.Equal(t, []string{"IL"}, org.States)
	assert.Equal(t, "hr@acme.test", org.ContactEmail, "contact email is normalized")
	assert.True(t, strings.HasPrefix(rawKey, "ea_"))
	assert.Len(t, rawKey, 51)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestProvisionService_UnregulatedState verifies no checklist is seeded when
// the state has no AI-hiring statute.
func TestProvisionService_UnregulatedState(t *testing.T) {
	testTime := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO organizations").
		WithArgs(pgxmock.AnyArg(), "Acme Corp", "hr@acme.test", "agent-1",
			"", []string{"WY"}).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(testTime, testTime))

	mock.ExpectQuery("INSERT INTO agent_keys").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(testTime))

	s := NewProvisionService(NewAgentKeyService())
	_, rawKey, err := s.ProvisionOrg(context.Background(), "agent-1", models.ProvisionOrgRequest{
		CompanyName:  "Acme Corp",
		State:        "WY",
		ContactEmail: "hr@acme.test",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, rawKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestProvisionService_SeedFailure verifies a checklist insert failure fails
// the call before any key is issued.
func TestProvisionService_SeedFailure(t *testing.T) {
	testTime := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO organizations").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(testTime, testTime))
	mock.ExpectQuery("INSERT INTO remediation_items").
		WillReturnError(assert.AnError)

	s := NewProvisionService(NewAgentKeyService())
	_, _, err := s.ProvisionOrg(context.Background(), "agent-1", models.ProvisionOrgRequest{
		CompanyName:  "Acme Corp",
		State:        "IL",
		ContactEmail: "hr@acme.test",
	})

	assert.ErrorContains(t, err, "seeding disclosure remediation item")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestTierForCount verifies headcount bucketing into employee tiers.
func TestTierForCount(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, ""},
		{1, "1-15"},
		{15, "1-15"},
		{16, "16-50"},
		{50, "16-50"},
		{51, "51-100"},
		{100, "51-100"},
		{101, "100+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tierForCount(tt.count), "count %d", tt.count)
	}
}
