package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
)

type PgxPeriodRepository struct {
	pool *pgxpool.Pool
}

// newPgxPeriodRepository creates a new repository for accounting periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{pool: pool}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, tenant_id, label, start_date, end_date, status,
	soft_closed_at, soft_closed_by, hard_closed_at, hard_closed_by,
	reopened_at, reopened_by, reopen_reason, checklist, totals,
	created_at, created_by, last_updated_at, last_updated_by`

// Checklist and totals snapshots are stored as jsonb; they are opaque to SQL
// and only read back whole.
func scanPeriod(row pgx.Row) (domain.AccountingPeriod, error) {
	var p domain.AccountingPeriod
	var checklist, totals []byte
	err := row.Scan(
		&p.PeriodID, &p.TenantID, &p.Label, &p.StartDate, &p.EndDate, &p.Status,
		&p.SoftClosedAt, &p.SoftClosedBy, &p.HardClosedAt, &p.HardClosedBy,
		&p.ReopenedAt, &p.ReopenedBy, &p.ReopenReason, &checklist, &totals,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return p, err
	}
	if len(checklist) > 0 {
		p.Checklist = &domain.PeriodChecklist{}
		if err := json.Unmarshal(checklist, p.Checklist); err != nil {
			return p, err
		}
	}
	if len(totals) > 0 {
		p.Totals = &domain.PeriodTotals{}
		if err := json.Unmarshal(totals, p.Totals); err != nil {
			return p, err
		}
	}
	return p, nil
}

func marshalSnapshot(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	query := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	checklist, err := marshalSnapshot(period.Checklist)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal period checklist", err)
	}
	totals, err := marshalSnapshot(period.Totals)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal period totals", err)
	}
	_, err = r.pool.Exec(ctx, query,
		period.PeriodID, period.TenantID, period.Label, period.StartDate, period.EndDate, period.Status,
		period.SoftClosedAt, period.SoftClosedBy, period.HardClosedAt, period.HardClosedBy,
		period.ReopenedAt, period.ReopenedBy, period.ReopenReason, checklist, totals,
		period.CreatedAt, period.CreatedBy, period.LastUpdatedAt, period.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert period "+period.PeriodID, err)
	}
	return nil
}

func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	query := `
		UPDATE accounting_periods
		SET status = $1, soft_closed_at = $2, soft_closed_by = $3,
		    hard_closed_at = $4, hard_closed_by = $5,
		    reopened_at = $6, reopened_by = $7, reopen_reason = $8,
		    checklist = $9, totals = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE tenant_id = $13 AND period_id = $14;
	`
	checklist, err := marshalSnapshot(period.Checklist)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal period checklist", err)
	}
	totals, err := marshalSnapshot(period.Totals)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal period totals", err)
	}
	tag, err := r.pool.Exec(ctx, query,
		period.Status, period.SoftClosedAt, period.SoftClosedBy,
		period.HardClosedAt, period.HardClosedBy,
		period.ReopenedAt, period.ReopenedBy, period.ReopenReason,
		checklist, totals,
		period.LastUpdatedAt, period.LastUpdatedBy,
		period.TenantID, period.PeriodID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update period "+period.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, period.PeriodID)
	}
	return nil
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE tenant_id = $1 AND period_id = $2;`
	period, err := scanPeriod(r.pool.QueryRow(ctx, query, tenantID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
		}
		return nil, apperrors.NewAppError(500, "failed to find period "+periodID, err)
	}
	return &period, nil
}

func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE tenant_id = $1 AND start_date <= $2 AND end_date >= $2;`
	period, err := scanPeriod(r.pool.QueryRow(ctx, query, tenantID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no period covers %s", apperrors.ErrNotFound, date.Format("2006-01-02"))
		}
		return nil, apperrors.NewAppError(500, "failed to find period for date", err)
	}
	return &period, nil
}

func (r *PgxPeriodRepository) FindPeriodForDateInTx(ctx context.Context, tx pgx.Tx, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE tenant_id = $1 AND start_date <= $2 AND end_date >= $2;`
	period, err := scanPeriod(tx.QueryRow(ctx, query, tenantID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no period covers %s", apperrors.ErrNotFound, date.Format("2006-01-02"))
		}
		return nil, apperrors.NewAppError(500, "failed to find period for date", err)
	}
	return &period, nil
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE tenant_id = $1 ORDER BY start_date;`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list periods", err)
	}
	defer rows.Close()

	var periods []domain.AccountingPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate period rows", err)
	}
	return periods, nil
}
