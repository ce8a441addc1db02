package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// TransactionSetSvcFacade owns the draft/review/void lifecycle of transaction
// sets. The posted transition belongs exclusively to the posting engine.
type TransactionSetSvcFacade interface {
	// CreateDraft opens a new transaction set in draft for a workflow to populate.
	CreateDraft(ctx context.Context, tenantID, actorID string, req dto.CreateTransactionSetRequest) (*domain.TransactionSet, error)

	// GetSet retrieves a transaction set.
	GetSet(ctx context.Context, tenantID, setID string) (*domain.TransactionSet, error)

	// SubmitForReview moves a draft set to review.
	SubmitForReview(ctx context.Context, tenantID, actorID, setID string) (*domain.TransactionSet, error)

	// VoidSet terminates a draft or review set without posting.
	VoidSet(ctx context.Context, tenantID, actorID, setID string) (*domain.TransactionSet, error)

	// StageLines attaches caller-supplied legs to a draft set.
	StageLines(ctx context.Context, tenantID, actorID, setID string, req dto.StageLinesRequest) ([]domain.StagedLine, error)
}
