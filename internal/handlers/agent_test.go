// Agent API handler tests. The auth middleware is exercised separately; here
// the agent identity is injected directly so the tests cover provisioning,
// the ownership check, and the compliance-package rollup.
package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/generator"
	"github.com/dbartell/employarmor-sub001/internal/handlers"
	"github.com/dbartell/employarmor-sub001/internal/models"
	"github.com/dbartell/employarmor-sub001/internal/security"
	"github.com/dbartell/employarmor-sub001/internal/services"
)

const testBaseURL = "https://employarmor.test"

// newMockDB creates a pgxmock pool and injects it as the package database.
// The returned cleanup restores the previous handle.
func newMockDB(t *testing.T) (pgxmock.PgxPoolIface, func()) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = mock
	return mock, func() {
		database.DB = oldDB
		mock.Close()
	}
}

// newAgentTestApp builds a Fiber app with the agent routes behind a stub that
// injects the given agent identity, the way AgentAuth does after a
// successful key check.
func newAgentTestApp(agentID string) *fiber.App {
	logger := security.NewLogger()
	gen := generator.New(logger, testBaseURL)
	h := handlers.NewAgentHandler(gen, services.NewAgentKeyService(),
		security.DefaultSecurityConfig(), logger, testBaseURL)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("agent_id", agentID)
		return c.Next()
	})
	app.Post("/api/v1/agent/organizations", h.Provision)
	app.Get("/api/v1/agent/organizations/:id/package", h.Package)
	return app
}

// TestAgentProvision_CreatesOwnedOrg verifies the provisioning endpoint
// creates an organization owned by the calling agent, seeds the regulated
// state checklist, and returns the raw API key once.
func TestAgentProvision_CreatesOwnedOrg(t *testing.T) {
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
	mock.ExpectQuery("INSERT INTO audit_log").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, testTime))

	app := newAgentTestApp("agent-1")

	body := `{"company_name":"Acme Corp","state":"IL","contact_email":"hr@acme.test","employee_count":40}`
	req := httptest.NewRequest("POST", "/api/v1/agent/organizations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out models.ProvisionOrgResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.NotEmpty(t, out.OrgID)
	assert.Equal(t, testBaseURL+"/dashboard", out.DashboardURL)
	assert.True(t, strings.HasPrefix(out.APIKey, "ea_"), "raw key is returned once")
	assert.Len(t, out.APIKey, 51)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestAgentProvision_MissingFields verifies required-field validation runs
// before any database work.
func TestAgentProvision_MissingFields(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	app := newAgentTestApp("agent-1")

	body := `{"company_name":"Acme Corp"}`
	req := httptest.NewRequest("POST", "/api/v1/agent/organizations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet(), "no database access on invalid input")
}

// TestAgentPackage_RollsUpComplianceState verifies the package endpoint
// reports documents with public URLs and checklist progress.
func TestAgentPackage_RollsUpComplianceState(t *testing.T) {
	testTime := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	docID := "doc-1"

	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, contact_email, agent_id").
		WithArgs("org-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "contact_email", "agent_id", "employee_tier", "states",
			"documents_generated", "created_at", "updated_at",
		}).AddRow("org-1", "Acme Corp", "hr@acme.test", "agent-1", "16-50",
			[]string{"IL"}, 1, testTime, testTime))

	mock.ExpectQuery("SELECT id, org_id, doc_type, title, content, format").
		WithArgs("org-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "org_id", "doc_type", "title", "content", "format", "version", "created_at",
		}).AddRow("doc-1", "org-1", "disclosure-candidate",
			"Candidate Disclosure Notice - IL", "<html></html>", "html", 1, testTime))

	mock.ExpectQuery("SELECT id, org_id, item_key, description").
		WithArgs("org-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "org_id", "item_key", "description", "status",
			"linked_document_id", "completed_at", "created_at",
		}).
			AddRow(1, "org-1", "disclosure", "Provide a disclosure notice", "complete", &docID, &testTime, testTime).
			AddRow(2, "org-1", "consent", "Collect candidate consent", "pending", nil, nil, testTime))

	app := newAgentTestApp("agent-1")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/agent/organizations/org-1/package", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out models.PackageResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, "org-1", out.OrgID)
	assert.Equal(t, "IL", out.State)
	assert.Equal(t, 50, out.ComplianceScore, "one of two items complete")
	assert.Equal(t, "in_progress", out.Status)

	require.Len(t, out.Documents, 1)
	assert.Equal(t, testBaseURL+"/api/disclosure/doc-1", out.Documents[0].URL)

	require.Len(t, out.Checklist, 2)
	assert.Equal(t, "complete", out.Checklist[0].Status)
	assert.Equal(t, "pending", out.Checklist[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestAgentPackage_OwnershipDenied verifies an agent cannot read another
// agent's organization.
func TestAgentPackage_OwnershipDenied(t *testing.T) {
	testTime := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, contact_email, agent_id").
		WithArgs("org-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "contact_email", "agent_id", "employee_tier", "states",
			"documents_generated", "created_at", "updated_at",
		}).AddRow("org-1", "Acme Corp", "hr@acme.test", "agent-2", "16-50",
			[]string{"IL"}, 0, testTime, testTime))

	app := newAgentTestApp("agent-1")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/agent/organizations/org-1/package", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestAgentPackage_EmptyChecklist verifies an organization with nothing to
// remediate reports a complete package.
func TestAgentPackage_EmptyChecklist(t *testing.T) {
	testTime := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, contact_email, agent_id").
		WithArgs("org-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "contact_email", "agent_id", "employee_tier", "states",
			"documents_generated", "created_at", "updated_at",
		}).AddRow("org-1", "Acme Corp", "hr@acme.test", "agent-1", "",
			[]string{"WY"}, 0, testTime, testTime))

	mock.ExpectQuery("SELECT id, org_id, doc_type, title, content, format").
		WithArgs("org-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "org_id", "doc_type", "title", "content", "format", "version", "created_at",
		}))

	mock.ExpectQuery("SELECT id, org_id, item_key, description").
		WithArgs("org-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "org_id", "item_key", "description", "status",
			"linked_document_id", "completed_at", "created_at",
		}))

	app := newAgentTestApp("agent-1")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/agent/organizations/org-1/package", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out models.PackageResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, 100, out.ComplianceScore)
	assert.Equal(t, "complete", out.Status)
	assert.Empty(t, out.Documents)
	assert.Empty(t, out.Checklist)
	assert.NoError(t, mock.ExpectationsWereMet())
}
