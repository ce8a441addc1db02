package services

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// ReportingSvcFacade is the read side over journal lines and allocations,
// consumed by aging and statement collaborators.
type ReportingSvcFacade interface {
	// GetOpenAR lists open receivables as of a date, optionally for one party.
	GetOpenAR(ctx context.Context, tenantID string, partyID *string, asOf time.Time) (*dto.OpenBalanceReport, error)

	// GetOpenAP lists open payables as of a date, optionally for one party.
	GetOpenAP(ctx context.Context, tenantID string, partyID *string, asOf time.Time) (*dto.OpenBalanceReport, error)

	// GetARStatement builds the receivables statement for one party.
	GetARStatement(ctx context.Context, tenantID, partyID string, asOf time.Time) (*dto.ARStatement, error)

	// GetTrialBalance sums per-account debits and credits over a date range.
	GetTrialBalance(ctx context.Context, tenantID string, rng dto.DateRange) (*dto.TrialBalanceResponse, error)
}
