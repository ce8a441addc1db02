package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

type periodService struct {
	periodRepo  portsrepo.PeriodRepositoryFacade
	setRepo     portsrepo.TransactionSetRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
}

// NewPeriodService creates the accounting period service.
func NewPeriodService(
	periodRepo portsrepo.PeriodRepositoryFacade,
	setRepo portsrepo.TransactionSetRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo:  periodRepo,
		setRepo:     setRepo,
		paymentRepo: paymentRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) CreatePeriod(ctx context.Context, tenantID, actorID string, req dto.CreatePeriodRequest) (*domain.AccountingPeriod, error) {
	if strings.TrimSpace(req.Label) == "" {
		return nil, fmt.Errorf("%w: period label is required", apperrors.ErrValidation)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: period end precedes its start", apperrors.ErrValidation)
	}

	existing, err := s.periodRepo.ListPeriods(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.Overlaps(req.StartDate, req.EndDate) {
			return nil, fmt.Errorf("%w: range overlaps period %s (%s)", apperrors.ErrValidation, p.Label, p.PeriodID)
		}
	}

	period := domain.AccountingPeriod{
		PeriodID:    uuid.NewString(),
		TenantID:    tenantID,
		Label:       req.Label,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domain.PeriodOpen,
		AuditFields: domain.NewAuditFields(actorID, time.Now().UTC()),
	}
	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		return nil, err
	}
	return &period, nil
}

func (s *periodService) GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	return s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
}

func (s *periodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, tenantID)
}

// SoftClose moves an open period to soft-closed and snapshots the checklist.
// Outstanding items never block a soft close; the snapshot is informational.
func (s *periodService) SoftClose(ctx context.Context, tenantID, actorID, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s is %s, only open periods can be soft-closed", apperrors.ErrInvalidState, periodID, period.Status)
	}

	checklist, err := s.buildChecklist(ctx, tenantID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period.Status = domain.PeriodSoftClosed
	period.SoftClosedAt = &now
	period.SoftClosedBy = &actorID
	period.Checklist = checklist
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID
	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Period soft-closed",
		slog.String("period_id", periodID),
		slog.Int("outstanding_items", checklist.Outstanding()),
	)
	return period, nil
}

// HardClose locks the period against posting and freezes its totals. The
// normal path requires soft_closed first and a clean checklist; force
// overrides both, but never an already hard-closed period.
func (s *periodService) HardClose(ctx context.Context, tenantID, actorID, periodID string, req dto.HardCloseRequest) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.PeriodHardClosed {
		return nil, fmt.Errorf("%w: period %s is already hard-closed", apperrors.ErrInvalidState, periodID)
	}
	if period.Status == domain.PeriodOpen && !req.Force {
		return nil, fmt.Errorf("%w: period %s must be soft-closed before hard close", apperrors.ErrInvalidState, periodID)
	}

	checklist, err := s.buildChecklist(ctx, tenantID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	if checklist.Outstanding() > 0 && !req.Force {
		return nil, fmt.Errorf("%w: %d outstanding items block the close (drafts: %d sets, %d payments; in review: %d sets)",
			apperrors.ErrInvalidState, checklist.Outstanding(),
			checklist.DraftTransactionSets, checklist.DraftPayments, checklist.ReviewTransactionSets)
	}

	totals, err := s.ledgerRepo.PeriodTotals(ctx, tenantID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period.Status = domain.PeriodHardClosed
	period.HardClosedAt = &now
	period.HardClosedBy = &actorID
	period.Checklist = checklist
	period.Totals = totals
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID
	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Period hard-closed",
		slog.String("period_id", periodID),
		slog.Bool("forced", req.Force),
		slog.Int("entry_count", totals.EntryCount),
	)
	return period, nil
}

// Reopen returns a soft- or hard-closed period to open. The frozen totals
// are discarded because posting may resume.
func (s *periodService) Reopen(ctx context.Context, tenantID, actorID, periodID string, req dto.ReopenRequest) (*domain.AccountingPeriod, error) {
	reason := strings.TrimSpace(req.Reason)
	if len(reason) < 10 {
		return nil, fmt.Errorf("%w: reopen reason must be at least 10 characters", apperrors.ErrValidation)
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s is already open", apperrors.ErrInvalidState, periodID)
	}

	now := time.Now().UTC()
	period.Status = domain.PeriodOpen
	period.ReopenedAt = &now
	period.ReopenedBy = &actorID
	period.ReopenReason = &reason
	period.Totals = nil
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID
	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Period reopened",
		slog.String("period_id", periodID),
		slog.String("reason", reason),
	)
	return period, nil
}

func (s *periodService) buildChecklist(ctx context.Context, tenantID string, from, to time.Time) (*domain.PeriodChecklist, error) {
	setCounts, err := s.setRepo.CountSetsByStatusInRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	draftPayments, err := s.paymentRepo.CountDraftPaymentsInRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	return &domain.PeriodChecklist{
		DraftTransactionSets:  setCounts[domain.SetDraft],
		ReviewTransactionSets: setCounts[domain.SetReview],
		DraftPayments:         draftPayments,
	}, nil
}
