package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PeriodReader defines read operations for accounting periods.
type PeriodReader interface {
	// FindPeriodByID retrieves a period scoped to a tenant.
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodForDate retrieves the period containing the date, or
	// ErrNotFound when no period covers it.
	FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// FindPeriodForDateInTx is FindPeriodForDate inside the caller's
	// transaction, so the posting gate reads period status with the same
	// isolation as the insert it guards.
	FindPeriodForDateInTx(ctx context.Context, tx pgx.Tx, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all periods for a tenant ordered by start date.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting periods.
type PeriodWriter interface {
	// SavePeriod persists a new period.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// UpdatePeriod persists status, close/reopen attribution and snapshots.
	UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error
}

// PeriodRepositoryFacade combines all period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
