package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// DocumentReader defines read operations for receivable/payable documents.
type DocumentReader interface {
	// FindDocumentByID retrieves a document scoped to a tenant.
	FindDocumentByID(ctx context.Context, tenantID, documentID string) (*domain.Document, error)

	// FindDocumentsByIDs retrieves multiple documents keyed by ID, scoped to a
	// tenant. Missing IDs are absent from the map.
	FindDocumentsByIDs(ctx context.Context, tenantID string, documentIDs []string) (map[string]domain.Document, error)

	// ListOpenDocuments retrieves documents of a type with their allocated and
	// open amounts as of the given date. Only allocations from posted payments
	// dated on or before asOf count. A nil partyID means all parties.
	ListOpenDocuments(ctx context.Context, tenantID string, docType domain.DocumentType, partyID *string, asOf time.Time) ([]domain.OpenDocument, error)
}

// DocumentWriter defines write operations for documents.
type DocumentWriter interface {
	// SaveDocument persists a new document.
	SaveDocument(ctx context.Context, document domain.Document) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
