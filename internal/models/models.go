// Package models defines the domain entities and data transfer objects for EmployArmor.
// It includes database models mapped to PostgreSQL tables, request DTOs for the
// agent and scan APIs, and view models for template rendering.
package models

import "time"

// ============================================================================
// Domain Models (Database Entities)
// ============================================================================

// User represents an employer account holder created at the end of the
// compliance-scan funnel.
//
// Database Table: users
// Security Note: PasswordHash should never be exposed in API responses or logs
type User struct {
	ID           int       `db:"id"`            // Primary key, auto-increment
	Email        string    `db:"email"`         // Unique, used for login
	Name         string    `db:"name"`          // Display name
	OrgID        string    `db:"org_id"`        // Organization the user belongs to
	PasswordHash string    `db:"password_hash"` // bcrypt hashed password
	CreatedAt    time.Time `db:"created_at"`    // Account creation timestamp
}

// Organization represents an employer organization.
// Organizations own impact assessments, generated documents, and remediation
// items, and may be provisioned by an external agent via the agent API.
//
// Database Table: organizations
type Organization struct {
	ID                 string    `db:"id"`                  // UUID primary key
	Name               string    `db:"name"`                // Company name
	ContactEmail       string    `db:"contact_email"`       // HR/compliance contact
	AgentID            string    `db:"agent_id"`            // Owning agent, empty for self-serve orgs
	EmployeeTier       string    `db:"employee_tier"`       // "1-15", "16-50", "51-100", "100+"
	States             []string  `db:"states"`              // Operating state codes
	DocumentsGenerated int       `db:"documents_generated"` // Running counter, repaired by reconciler
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// AgentKey represents an API credential for an external agent integration.
// The raw key is shown once at creation; only its bcrypt hash is stored,
// addressable by the short public prefix embedded in the key.
//
// Database Table: agent_keys
type AgentKey struct {
	ID         string     `db:"id"`          // UUID primary key
	AgentID    string     `db:"agent_id"`    // Stable agent identifier
	Name       string     `db:"name"`        // Human label for the key
	KeyPrefix  string     `db:"key_prefix"`  // Public lookup prefix (first 12 chars)
	KeyHash    string     `db:"key_hash"`    // bcrypt hash of the full key
	LastUsedAt *time.Time `db:"last_used_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

// ImpactAssessment is the Colorado-AI-Act-style paperwork entity backing the
// multi-step wizard. Created as a draft on first save, patched field by field
// as the user advances, and completed via an explicit action that stamps
// completed_at and expires_at (annual renewal).
//
// Database Table: impact_assessments
// Invariant: status == "complete" implies completed_at is set and
// expires_at == completed_at + 1 year.
type ImpactAssessment struct {
	ID                  string     `db:"id"`     // UUID primary key
	OrgID               string     `db:"org_id"` // Owning organization
	Status              string     `db:"status"` // "draft" or "complete"
	SystemName          string     `db:"system_name"`
	SystemPurpose       string     `db:"system_purpose"`
	VendorName          string     `db:"vendor_name"`
	DeploymentDate      string     `db:"deployment_date"`
	AITools             []string   `db:"ai_tools"`
	DataInputs          []string   `db:"data_inputs"`
	DataSources         string     `db:"data_sources"`
	DataRetentionPeriod string     `db:"data_retention_period"`
	AffectedGroups      []string   `db:"affected_groups"`
	PotentialHarms      string     `db:"potential_harms"`
	RiskLevel           string     `db:"risk_level"` // "low", "medium", "high"
	Safeguards          string     `db:"safeguards"`
	BiasTestingDate     string     `db:"bias_testing_date"`
	BiasTestingResults  string     `db:"bias_testing_results"`
	NotificationMethod  string     `db:"notification_method"`
	AppealProcess       string     `db:"appeal_process"`
	HumanReviewerName   string     `db:"human_reviewer_name"`
	HumanReviewerRole   string     `db:"human_reviewer_role"`
	HumanReviewerContact string    `db:"human_reviewer_contact"`
	Version             int        `db:"version"`
	CreatedAt           time.Time  `db:"created_at"`
	CompletedAt         *time.Time `db:"completed_at"` // Set on completion
	ExpiresAt           *time.Time `db:"expires_at"`   // completed_at + 1 year
}

// GeneratedDocument is a rendered compliance document owned by an organization.
// Documents are append-only: regenerating the same type creates a new row with
// an incremented version rather than replacing the old one.
//
// Database Table: generated_documents
type GeneratedDocument struct {
	ID        string    `db:"id"`       // UUID primary key
	OrgID     string    `db:"org_id"`   // Owning organization
	DocType   string    `db:"doc_type"` // e.g. "disclosure-candidate"
	Title     string    `db:"title"`    // Rendered title, includes state code
	Content   string    `db:"content"`  // Rendered template output
	Format    string    `db:"format"`   // "html", "markdown", or "text"
	Version   int       `db:"version"`  // Increments per (org, doc_type)
	CreatedAt time.Time `db:"created_at"`
}

// RemediationItem tracks an outstanding compliance gap for an organization.
// Items flip to "complete" when a document of the matching type is generated,
// linking the resolving document.
//
// Database Table: remediation_items
// Status Values: "pending", "complete"
type RemediationItem struct {
	ID               int        `db:"id"`       // Primary key
	OrgID            string     `db:"org_id"`   // Owning organization
	ItemKey          string     `db:"item_key"` // e.g. "disclosure", "consent"
	Description      string     `db:"description"`
	Status           string     `db:"status"`
	LinkedDocumentID *string    `db:"linked_document_id"` // Resolving document, nil while pending
	CompletedAt      *time.Time `db:"completed_at"`
	CreatedAt        time.Time  `db:"created_at"`
}

// ScanLead captures a compliance-scan funnel submission before (or without)
// account signup. The derived risk report is not persisted; only the inputs
// that produced it plus the headline level are.
//
// Database Table: scan_leads
type ScanLead struct {
	ID            int       `db:"id"`
	Email         string    `db:"email"`
	States        []string  `db:"states"`
	EmployeeCount int       `db:"employee_count"`
	Tools         []string  `db:"tools"`
	RiskLevel     string    `db:"risk_level"` // "Low", "Medium", "High"
	Gaps          []byte    `db:"gaps"`       // JSON snapshot of reported gaps
	CreatedAt     time.Time `db:"created_at"`
}

// AuditLog represents an audit trail entry for compliance and security monitoring.
// All significant system actions (signup, document generation, completion) are
// logged here.
//
// Database Table: audit_log
type AuditLog struct {
	ID         int       // Primary key
	ActorID    *int      // User who performed the action (nullable for agent/system actions)
	AgentID    string    // Agent identifier for agent API actions, empty otherwise
	Action     string    // Action type (e.g. "GENERATE_DOCUMENTS", "COMPLETE_ASSESSMENT")
	ObjectType string    // Type of object affected (e.g. "document", "assessment")
	ObjectID   string    // ID of affected object, empty if n/a
	IPAddress  string    // Source IP address
	UserAgent  string    // Browser/client identifier
	CreatedAt  time.Time // When action occurred
}

// ============================================================================
// Data Transfer Objects (DTOs) - API Input
// ============================================================================

// ProvisionOrgRequest is the body of POST /api/v1/agent/organizations, the
// agent call that creates and seeds a managed organization.
type ProvisionOrgRequest struct {
	CompanyName   string `json:"company_name"`
	State         string `json:"state"`
	ContactEmail  string `json:"contact_email"`
	EmployeeCount int    `json:"employee_count"`
}

// GenerateRequest is the body of POST /api/v1/agent/organizations/:id/generate.
type GenerateRequest struct {
	State          string          `json:"state"`
	Documents      []string        `json:"documents"`
	Format         string          `json:"format"` // defaults to "html"
	CompanyDetails *CompanyDetails `json:"company_details"`
}

// CompanyDetails optionally overrides stored organization fields for a single
// generation request.
type CompanyDetails struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
}

// ScanRequest is the body of POST /api/v1/scan.
type ScanRequest struct {
	States        []string `json:"states"`
	Tools         []string `json:"tools"`
	EmployeeCount int      `json:"employeeCount"`
}

// ScanLeadForm is the body of POST /api/scan, the funnel's lead-capture call.
type ScanLeadForm struct {
	Email         string   `json:"email"`
	States        []string `json:"states"`
	EmployeeCount int      `json:"employee_count"`
	Tools         []string `json:"tools"`
	RiskLevel     string   `json:"risk_score"` // headline level, not the numeric score
	Gaps          any      `json:"gaps"`
}

// SignupForm represents the account-creation submission at the end of the
// scan funnel.
type SignupForm struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
}

// LoginForm represents user login credentials from the login form.
type LoginForm struct {
	Email    string
	Password string
}

// ============================================================================
// View Models - API Output
// ============================================================================

// DocumentView is the per-document payload in a generate response.
type DocumentView struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Format  string `json:"format"`
	URL     string `json:"url"`
}

// GenerateResponse is the 201 body of the agent generate endpoint.
type GenerateResponse struct {
	DocumentURLs []string       `json:"document_urls"`
	PackageURL   string         `json:"package_url"`
	Documents    []DocumentView `json:"documents"`
	SkippedTypes []string       `json:"skipped_types,omitempty"`
}

// ProvisionOrgResponse is the 201 body of the agent provisioning endpoint.
// APIKey is the raw agent key minted for this organization; it is shown here
// once and cannot be recovered later.
type ProvisionOrgResponse struct {
	OrgID        string `json:"org_id"`
	DashboardURL string `json:"dashboard_url"`
	APIKey       string `json:"api_key"`
}

// PackageDocument is one generated document in a compliance package.
type PackageDocument struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// ChecklistItem is one remediation item in a compliance package, reported
// with its current status.
type ChecklistItem struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// PackageResponse is the body of GET /api/v1/agent/organizations/:id/package:
// the organization's compliance state rolled up for the owning agent.
type PackageResponse struct {
	OrgID           string            `json:"org_id"`
	CompanyName     string            `json:"company_name"`
	State           string            `json:"state"`
	Status          string            `json:"status"`
	ComplianceScore int               `json:"compliance_score"`
	DashboardURL    string            `json:"dashboard_url"`
	Documents       []PackageDocument `json:"documents"`
	Checklist       []ChecklistItem   `json:"checklist"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
