// This file serves generated documents: the public disclosure URL embedded
// in generate responses, and the dashboard's document listing.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dbartell/employarmor-sub001/internal/repository"
	"github.com/dbartell/employarmor-sub001/internal/security"
)

// DocumentHandler serves generated documents.
type DocumentHandler struct {
	docRepo *repository.DocumentRepository
	logger  *security.Logger
}

// NewDocumentHandler creates a new instance of DocumentHandler.
func NewDocumentHandler(logger *security.Logger) *DocumentHandler {
	return &DocumentHandler{
		docRepo: repository.NewDocumentRepository(),
		logger:  logger,
	}
}

// GetDisclosure handles GET /api/disclosure/:id. Disclosure URLs are handed
// to candidates and employees, so the endpoint is public: the id is an
// unguessable UUID and the content is by definition a disclosure.
//
// HTML documents are served as pages; markdown and text as plain text.
func (h *DocumentHandler) GetDisclosure(c *fiber.Ctx) error {
	doc, err := h.docRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound(c, "Document not found")
		}
		h.logger.Error("loading document", err)
		return internalError(c)
	}

	switch doc.Format {
	case "html":
		c.Set("Content-Type", "text/html; charset=utf-8")
	default:
		c.Set("Content-Type", "text/plain; charset=utf-8")
	}
	return c.SendString(doc.Content)
}

// List handles GET /api/documents for the authenticated dashboard. Supports
// optional type, format, and latest=true filters.
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	orgID, _ := c.Locals("org_id").(string)
	if orgID == "" {
		return forbidden(c, "No organization in session")
	}

	filter := repository.DocumentFilter{
		DocType:       c.Query("type"),
		Format:        c.Query("format"),
		LatestPerType: c.Query("latest") == "true",
	}

	docs, err := h.docRepo.ListByOrg(c.Context(), orgID, filter)
	if err != nil {
		h.logger.Error("listing documents for org "+orgID, err)
		return internalError(c)
	}

	views := make([]fiber.Map, 0, len(docs))
	for _, d := range docs {
		views = append(views, fiber.Map{
			"id":         d.ID,
			"type":       d.DocType,
			"title":      d.Title,
			"format":     d.Format,
			"version":    d.Version,
			"created_at": d.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{"documents": views})
}
