package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dbartell/employarmor-sub001/internal/catalog"
	"github.com/dbartell/employarmor-sub001/internal/models"
	"github.com/dbartell/employarmor-sub001/internal/repository"
	"github.com/dbartell/employarmor-sub001/internal/security"
)

// DocumentStore persists rendered documents.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.GeneratedDocument) error
}

// OrgStore updates the owning organization's bookkeeping.
type OrgStore interface {
	IncrementDocumentsGenerated(ctx context.Context, orgID string, n int) error
}

// RemediationStore resolves remediation items matched by generated documents.
type RemediationStore interface {
	ResolveByKey(ctx context.Context, orgID, itemKey, documentID string) (int64, error)
}

// Generator orchestrates document generation: rendering each requested type,
// persisting the results, and applying the bookkeeping side effects.
//
// Bookkeeping (the organization counter and remediation resolution) is
// best-effort: a failure there is logged and the generation still succeeds,
// because the documents themselves are already durable. The reconciler
// repairs any resulting drift.
type Generator struct {
	documents   DocumentStore
	orgs        OrgStore
	remediation RemediationStore
	logger      *security.Logger
	baseURL     string
	now         func() time.Time
}

// New creates a Generator backed by the default repositories.
func New(logger *security.Logger, baseURL string) *Generator {
	return &Generator{
		documents:   repository.NewDocumentRepository(),
		orgs:        repository.NewOrgRepository(),
		remediation: repository.NewRemediationRepository(),
		logger:      logger,
		baseURL:     baseURL,
		now:         time.Now,
	}
}

// ErrBadFormat indicates a format value outside html, markdown, and text.
type ErrBadFormat struct{ Format string }

func (e ErrBadFormat) Error() string {
	return fmt.Sprintf("unsupported format %q", e.Format)
}

// Generate renders and persists the requested document types for an
// organization and returns the response payload.
//
// Unknown document types are collected in SkippedTypes rather than failing
// the request; known types still generate. A persistence failure on one
// document aborts the whole request, since a partially stored batch with a
// success response would misreport what exists.
//
// Parameters:
//   - org: the owning organization, already loaded and ownership-checked
//   - req: the validated generate request (state and documents non-empty)
func (g *Generator) Generate(ctx context.Context, org *models.Organization, req models.GenerateRequest) (*models.GenerateResponse, error) {
	format, ok := ParseFormat(req.Format)
	if !ok {
		return nil, ErrBadFormat{Format: req.Format}
	}

	renderCtx := g.buildContext(org, req)

	resp := &models.GenerateResponse{
		DocumentURLs: []string{},
		PackageURL:   fmt.Sprintf("%s/api/v1/agent/organizations/%s/package", g.baseURL, org.ID),
		Documents:    []models.DocumentView{},
	}

	for _, docType := range dedupeTypes(req.Documents) {
		tpl, ok := TemplateByType(docType)
		if !ok {
			resp.SkippedTypes = append(resp.SkippedTypes, docType)
			continue
		}

		doc := &models.GeneratedDocument{
			ID:      uuid.New().String(),
			OrgID:   org.ID,
			DocType: docType,
			Title:   fmt.Sprintf("%s - %s", tpl.Title, req.State),
			Content: Render(tpl, renderCtx, format),
			Format:  string(format),
		}
		if err := g.documents.Create(ctx, doc); err != nil {
			return nil, fmt.Errorf("saving %s document: %w", docType, err)
		}

		url := fmt.Sprintf("%s/api/disclosure/%s", g.baseURL, doc.ID)
		resp.DocumentURLs = append(resp.DocumentURLs, url)
		resp.Documents = append(resp.Documents, models.DocumentView{
			ID:      doc.ID,
			Type:    docType,
			Title:   tpl.Title,
			Content: doc.Content,
			Format:  string(format),
			URL:     url,
		})
	}

	g.applySideEffects(ctx, org.ID, resp.Documents)

	return resp, nil
}

// buildContext resolves placeholder values with request overrides taking
// precedence over stored organization fields, then defaults filling the rest.
func (g *Generator) buildContext(org *models.Organization, req models.GenerateRequest) Context {
	ctx := Context{
		CompanyName:    org.Name,
		ContactEmail:   org.ContactEmail,
		ApplicableLaws: catalog.DisclosureLawName(req.State),
	}
	if d := req.CompanyDetails; d != nil {
		if d.Name != "" {
			ctx.CompanyName = d.Name
		}
		if d.ContactEmail != "" {
			ctx.ContactEmail = d.ContactEmail
		}
	}
	return ctx.WithDefaults(g.now())
}

// applySideEffects performs the post-generation bookkeeping writes. Failures
// are logged and swallowed; the reconciler brings the rows back in line.
func (g *Generator) applySideEffects(ctx context.Context, orgID string, docs []models.DocumentView) {
	if len(docs) == 0 {
		return
	}

	if err := g.orgs.IncrementDocumentsGenerated(ctx, orgID, len(docs)); err != nil {
		g.logger.Error("updating documents_generated counter for org "+orgID, err)
	}

	for _, doc := range docs {
		key := RemediationKey(doc.Type)
		if key == "" {
			continue
		}
		if _, err := g.remediation.ResolveByKey(ctx, orgID, key, doc.ID); err != nil {
			g.logger.Error("resolving "+key+" remediation item for org "+orgID, err)
		}
	}
}

func dedupeTypes(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
