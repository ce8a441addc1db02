package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// DocumentSvcFacade manages the receivable/payable documents that payments
// allocate against.
type DocumentSvcFacade interface {
	// CreateDocument registers a new document.
	CreateDocument(ctx context.Context, tenantID, actorID string, req dto.CreateDocumentRequest) (*domain.Document, error)

	// GetDocument retrieves a document.
	GetDocument(ctx context.Context, tenantID, documentID string) (*domain.Document, error)
}
