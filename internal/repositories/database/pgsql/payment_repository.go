package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
)

type PgxPaymentRepository struct {
	pool *pgxpool.Pool
}

// newPgxPaymentRepository creates a new repository for payments and allocations.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{pool: pool}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, tenant_id, payment_type, party_id, amount, payment_date, bank_account_id, counter_account_id, memo, status, transaction_set_id, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.PaymentID, &p.TenantID, &p.PaymentType, &p.PartyID, &p.Amount, &p.PaymentDate,
		&p.BankAccountID, &p.CounterAccountID, &p.Memo, &p.Status, &p.TransactionSetID,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	return p, err
}

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		payment.PaymentID, payment.TenantID, payment.PaymentType, payment.PartyID, payment.Amount, payment.PaymentDate,
		payment.BankAccountID, payment.CounterAccountID, payment.Memo, payment.Status, payment.TransactionSetID,
		payment.CreatedAt, payment.CreatedBy, payment.LastUpdatedAt, payment.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+payment.PaymentID, err)
	}
	return nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE tenant_id = $1 AND payment_id = $2;`
	payment, err := scanPayment(r.pool.QueryRow(ctx, query, tenantID, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+paymentID, err)
	}
	return &payment, nil
}

func (r *PgxPaymentRepository) FindPaymentByTransactionSetID(ctx context.Context, tenantID, setID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE tenant_id = $1 AND transaction_set_id = $2;`
	payment, err := scanPayment(r.pool.QueryRow(ctx, query, tenantID, setID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment for set %s", apperrors.ErrNotFound, setID)
		}
		return nil, apperrors.NewAppError(500, "failed to find payment for set "+setID, err)
	}
	return &payment, nil
}

func (r *PgxPaymentRepository) FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	query := `
		SELECT allocation_id, payment_id, target_type, target_id, amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payment_allocations
		WHERE payment_id = $1
		ORDER BY created_at, allocation_id;
	`
	rows, err := r.pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations for payment "+paymentID, err)
	}
	defer rows.Close()

	var allocs []domain.PaymentAllocation
	for rows.Next() {
		var a domain.PaymentAllocation
		if err := rows.Scan(
			&a.AllocationID, &a.PaymentID, &a.TargetType, &a.TargetID, &a.Amount,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation", err)
		}
		allocs = append(allocs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate allocations", err)
	}
	return allocs, nil
}

func (r *PgxPaymentRepository) CountDraftPaymentsInRange(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM payments
		WHERE tenant_id = $1 AND status = 'DRAFT' AND payment_date >= $2 AND payment_date <= $3;
	`
	var n int
	if err := r.pool.QueryRow(ctx, query, tenantID, from, to).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count draft payments", err)
	}
	return n, nil
}

func (r *PgxPaymentRepository) UpdatePaymentStatus(ctx context.Context, tenantID, paymentID string, status domain.PaymentStatus, updatedBy string, at time.Time) error {
	query := `
		UPDATE payments
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $4 AND payment_id = $5 AND status = 'DRAFT';
	`
	tag, err := r.pool.Exec(ctx, query, status, at, updatedBy, tenantID, paymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment status "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s is not draft", apperrors.ErrInvalidState, paymentID)
	}
	return nil
}

func (r *PgxPaymentRepository) MarkPaymentPostedInTx(ctx context.Context, tx pgx.Tx, paymentID, updatedBy string, at time.Time) error {
	query := `
		UPDATE payments
		SET status = 'POSTED', last_updated_at = $1, last_updated_by = $2
		WHERE payment_id = $3 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query, at, updatedBy, paymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark payment posted "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s is not draft", apperrors.ErrInvalidState, paymentID)
	}
	return nil
}

func (r *PgxPaymentRepository) SaveAllocations(ctx context.Context, allocations []domain.PaymentAllocation) error {
	if len(allocations) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO payment_allocations (allocation_id, payment_id, target_type, target_id, amount,
		                                 created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, a := range allocations {
		batch.Queue(query,
			a.AllocationID, a.PaymentID, a.TargetType, a.TargetID, a.Amount,
			a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
		)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range allocations {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert allocation", err)
		}
	}
	return nil
}

func (r *PgxPaymentRepository) DeleteAllocation(ctx context.Context, paymentID, allocationID string) error {
	query := `DELETE FROM payment_allocations WHERE payment_id = $1 AND allocation_id = $2;`
	tag, err := r.pool.Exec(ctx, query, paymentID, allocationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete allocation "+allocationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: allocation %s", apperrors.ErrNotFound, allocationID)
	}
	return nil
}
