// This file handles generated compliance documents. Documents are append-only:
// new generations insert new rows with an incremented per-type version.
package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/models"
)

// psql builds queries with PostgreSQL-style $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DocumentRepository handles generated-document database operations.
type DocumentRepository struct{}

// NewDocumentRepository creates a new instance of DocumentRepository.
func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

// Create inserts a rendered document. The version is computed in the insert
// as one past the highest existing version for the same (org, doc_type), so
// repeated generations produce distinct superseding rows.
//
// Side Effects: Populates doc.Version and doc.CreatedAt with database values
func (r *DocumentRepository) Create(ctx context.Context, doc *models.GeneratedDocument) error {
	query := `
		INSERT INTO generated_documents (id, org_id, doc_type, title, content, format, version)
		VALUES ($1, $2, $3, $4, $5, $6, (
			SELECT COALESCE(MAX(version), 0) + 1
			FROM generated_documents
			WHERE org_id = $2 AND doc_type = $3
		))
		RETURNING version, created_at
	`
	return database.DB.QueryRow(ctx, query,
		doc.ID, doc.OrgID, doc.DocType, doc.Title, doc.Content, doc.Format,
	).Scan(&doc.Version, &doc.CreatedAt)
}

// GetByID retrieves a single document with full content. Used by the
// disclosure retrieval endpoint.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.GeneratedDocument, error) {
	query := `
		SELECT id, org_id, doc_type, title, content, format, version, created_at
		FROM generated_documents
		WHERE id = $1
	`

	var doc models.GeneratedDocument
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&doc.ID, &doc.OrgID, &doc.DocType, &doc.Title, &doc.Content,
		&doc.Format, &doc.Version, &doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// DocumentFilter narrows ListByOrg results. Zero values mean no filtering.
type DocumentFilter struct {
	DocType       string
	Format        string
	LatestPerType bool // only the highest version of each doc_type
}

// ListByOrg retrieves an organization's documents, newest first, optionally
// filtered. The query is assembled dynamically because every filter is
// optional.
func (r *DocumentRepository) ListByOrg(ctx context.Context, orgID string, filter DocumentFilter) ([]models.GeneratedDocument, error) {
	builder := psql.
		Select("id", "org_id", "doc_type", "title", "content", "format", "version", "created_at").
		From("generated_documents").
		Where(sq.Eq{"org_id": orgID}).
		OrderBy("created_at DESC")

	if filter.DocType != "" {
		builder = builder.Where(sq.Eq{"doc_type": filter.DocType})
	}
	if filter.Format != "" {
		builder = builder.Where(sq.Eq{"format": filter.Format})
	}
	if filter.LatestPerType {
		builder = builder.Where(`version = (
			SELECT MAX(version) FROM generated_documents d2
			WHERE d2.org_id = generated_documents.org_id
			  AND d2.doc_type = generated_documents.doc_type
		)`)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.GeneratedDocument
	for rows.Next() {
		var doc models.GeneratedDocument
		if err := rows.Scan(
			&doc.ID, &doc.OrgID, &doc.DocType, &doc.Title, &doc.Content,
			&doc.Format, &doc.Version, &doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
