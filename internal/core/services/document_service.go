package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewDocumentService creates the document registry service.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade) portssvc.DocumentSvcFacade {
	return &documentService{documentRepo: documentRepo}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) CreateDocument(ctx context.Context, tenantID, actorID string, req dto.CreateDocumentRequest) (*domain.Document, error) {
	if !req.DocumentType.IsValid() {
		return nil, fmt.Errorf("%w: unknown document type %s", apperrors.ErrValidation, req.DocumentType)
	}
	if !req.Total.IsPositive() {
		return nil, fmt.Errorf("%w: document total must be positive", apperrors.ErrValidation)
	}
	if req.DueDate.Before(req.DocDate) {
		return nil, fmt.Errorf("%w: due date precedes document date", apperrors.ErrValidation)
	}

	document := domain.Document{
		DocumentID:   uuid.NewString(),
		TenantID:     tenantID,
		DocumentType: req.DocumentType,
		PartyID:      req.PartyID,
		DocDate:      req.DocDate,
		DueDate:      req.DueDate,
		Total:        req.Total,
		Memo:         req.Memo,
		AuditFields:  domain.NewAuditFields(actorID, time.Now().UTC()),
	}
	if err := s.documentRepo.SaveDocument(ctx, document); err != nil {
		return nil, err
	}
	return &document, nil
}

func (s *documentService) GetDocument(ctx context.Context, tenantID, documentID string) (*domain.Document, error) {
	return s.documentRepo.FindDocumentByID(ctx, tenantID, documentID)
}
