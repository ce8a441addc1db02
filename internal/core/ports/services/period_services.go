package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// PeriodSvcFacade manages accounting periods and their lock levels.
type PeriodSvcFacade interface {
	// CreatePeriod opens a new period; ranges may not overlap existing ones.
	CreatePeriod(ctx context.Context, tenantID, actorID string, req dto.CreatePeriodRequest) (*domain.AccountingPeriod, error)

	// GetPeriod retrieves a period.
	GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all periods ordered by start date.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error)

	// SoftClose moves an open period to soft-closed and snapshots the
	// close checklist. Soft close is advisory; posting is still allowed.
	SoftClose(ctx context.Context, tenantID, actorID, periodID string) (*domain.AccountingPeriod, error)

	// HardClose locks the period against all postings dated inside it and
	// freezes the period totals. Requires soft_closed first unless forced.
	HardClose(ctx context.Context, tenantID, actorID, periodID string, req dto.HardCloseRequest) (*domain.AccountingPeriod, error)

	// Reopen returns a closed period to open. The reason is mandatory
	// (>= 10 chars); authorization is trusted to the caller's layer.
	Reopen(ctx context.Context, tenantID, actorID, periodID string, req dto.ReopenRequest) (*domain.AccountingPeriod, error)
}
