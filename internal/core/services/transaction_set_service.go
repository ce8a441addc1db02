package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// transactionSetService owns the draft/review/void side of the set state
// machine. Posting is not reachable from here.
type transactionSetService struct {
	setRepo portsrepo.TransactionSetRepositoryFacade
}

// NewTransactionSetService creates the transaction set lifecycle service.
func NewTransactionSetService(setRepo portsrepo.TransactionSetRepositoryFacade) portssvc.TransactionSetSvcFacade {
	return &transactionSetService{setRepo: setRepo}
}

var _ portssvc.TransactionSetSvcFacade = (*transactionSetService)(nil)

func (s *transactionSetService) CreateDraft(ctx context.Context, tenantID, actorID string, req dto.CreateTransactionSetRequest) (*domain.TransactionSet, error) {
	if !req.Source.IsValid() {
		return nil, fmt.Errorf("%w: unknown source %s", apperrors.ErrValidation, req.Source)
	}

	set := domain.TransactionSet{
		TransactionSetID: uuid.NewString(),
		TenantID:         tenantID,
		Status:           domain.SetDraft,
		Source:           req.Source,
		BusinessDate:     req.BusinessDate,
		Notes:            req.Notes,
		AuditFields:      domain.NewAuditFields(actorID, time.Now().UTC()),
	}
	if err := s.setRepo.SaveSet(ctx, set); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction set drafted",
		slog.String("transaction_set_id", set.TransactionSetID),
		slog.String("source", string(set.Source)),
	)
	return &set, nil
}

func (s *transactionSetService) GetSet(ctx context.Context, tenantID, setID string) (*domain.TransactionSet, error) {
	return s.setRepo.FindSetByID(ctx, tenantID, setID)
}

// SubmitForReview moves a draft set to review. Submitting from any other
// status is a validation failure, review included: re-submitting is not a
// no-op because the caller's view of the set is stale.
func (s *transactionSetService) SubmitForReview(ctx context.Context, tenantID, actorID, setID string) (*domain.TransactionSet, error) {
	set, err := s.setRepo.FindSetByID(ctx, tenantID, setID)
	if err != nil {
		return nil, err
	}
	if set.Status != domain.SetDraft {
		return nil, fmt.Errorf("%w: set %s is %s, only draft sets can be submitted", apperrors.ErrValidation, setID, set.Status)
	}

	now := time.Now().UTC()
	if err := s.setRepo.UpdateSetStatus(ctx, tenantID, setID, domain.SetReview, actorID, now); err != nil {
		return nil, err
	}
	set.Status = domain.SetReview
	set.LastUpdatedAt = now
	set.LastUpdatedBy = actorID
	return set, nil
}

// VoidSet terminates a draft or review set. Terminal sets stay where they are.
func (s *transactionSetService) VoidSet(ctx context.Context, tenantID, actorID, setID string) (*domain.TransactionSet, error) {
	set, err := s.setRepo.FindSetByID(ctx, tenantID, setID)
	if err != nil {
		return nil, err
	}
	if !set.Status.CanTransitionTo(domain.SetVoid) {
		return nil, fmt.Errorf("%w: set %s is %s and cannot be voided", apperrors.ErrInvalidState, setID, set.Status)
	}

	now := time.Now().UTC()
	if err := s.setRepo.UpdateSetStatus(ctx, tenantID, setID, domain.SetVoid, actorID, now); err != nil {
		return nil, err
	}
	set.Status = domain.SetVoid
	set.LastUpdatedAt = now
	set.LastUpdatedBy = actorID

	middleware.GetLoggerFromCtx(ctx).Info("Transaction set voided",
		slog.String("transaction_set_id", setID),
	)
	return set, nil
}

// StageLines attaches explicit legs to a draft set of a staged source.
func (s *transactionSetService) StageLines(ctx context.Context, tenantID, actorID, setID string, req dto.StageLinesRequest) ([]domain.StagedLine, error) {
	set, err := s.setRepo.FindSetByID(ctx, tenantID, setID)
	if err != nil {
		return nil, err
	}
	if set.Status != domain.SetDraft {
		return nil, fmt.Errorf("%w: set %s is %s, lines can only be staged on drafts", apperrors.ErrInvalidState, setID, set.Status)
	}
	if set.Source == domain.SourcePayment || set.Source == domain.SourceInventory {
		return nil, fmt.Errorf("%w: %s sets derive their lines, explicit staging is not allowed", apperrors.ErrValidation, set.Source)
	}

	existing, err := s.setRepo.FindStagedLines(ctx, setID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lines := make([]domain.StagedLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.StagedLine{
			StagedLineID:     uuid.NewString(),
			TransactionSetID: setID,
			AccountID:        l.AccountID,
			Debit:            l.Debit,
			Credit:           l.Credit,
			Description:      l.Description,
			LineNumber:       len(existing) + i + 1,
			AuditFields:      domain.NewAuditFields(actorID, now),
		}
	}
	if err := s.setRepo.SaveStagedLines(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}
