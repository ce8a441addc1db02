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

type PgxTransactionSetRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionSetRepository creates a new repository for transaction sets.
func newPgxTransactionSetRepository(pool *pgxpool.Pool) portsrepo.TransactionSetRepositoryFacade {
	return &PgxTransactionSetRepository{pool: pool}
}

var _ portsrepo.TransactionSetRepositoryFacade = (*PgxTransactionSetRepository)(nil)

const setColumns = `transaction_set_id, tenant_id, status, source, business_date, notes, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanSet(row pgx.Row) (domain.TransactionSet, error) {
	var s domain.TransactionSet
	err := row.Scan(
		&s.TransactionSetID, &s.TenantID, &s.Status, &s.Source, &s.BusinessDate, &s.Notes,
		&s.JournalEntryID,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	return s, err
}

func (r *PgxTransactionSetRepository) SaveSet(ctx context.Context, set domain.TransactionSet) error {
	query := `
		INSERT INTO transaction_sets (` + setColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		set.TransactionSetID, set.TenantID, set.Status, set.Source, set.BusinessDate, set.Notes,
		set.JournalEntryID,
		set.CreatedAt, set.CreatedBy, set.LastUpdatedAt, set.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction set "+set.TransactionSetID, err)
	}
	return nil
}

func (r *PgxTransactionSetRepository) FindSetByID(ctx context.Context, tenantID, setID string) (*domain.TransactionSet, error) {
	query := `SELECT ` + setColumns + ` FROM transaction_sets WHERE tenant_id = $1 AND transaction_set_id = $2;`
	set, err := scanSet(r.pool.QueryRow(ctx, query, tenantID, setID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction set %s", apperrors.ErrNotFound, setID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction set "+setID, err)
	}
	return &set, nil
}

// FindSetByIDForUpdate locks the row for the remainder of the caller's
// transaction. Concurrent posting attempts against the same set queue here.
func (r *PgxTransactionSetRepository) FindSetByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, setID string) (*domain.TransactionSet, error) {
	query := `SELECT ` + setColumns + ` FROM transaction_sets WHERE tenant_id = $1 AND transaction_set_id = $2 FOR UPDATE;`
	set, err := scanSet(tx.QueryRow(ctx, query, tenantID, setID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction set %s", apperrors.ErrNotFound, setID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock transaction set "+setID, err)
	}
	return &set, nil
}

func (r *PgxTransactionSetRepository) FindStagedLines(ctx context.Context, setID string) ([]domain.StagedLine, error) {
	query := `
		SELECT staged_line_id, transaction_set_id, account_id, debit, credit, description, line_number,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM staged_lines
		WHERE transaction_set_id = $1
		ORDER BY line_number;
	`
	rows, err := r.pool.Query(ctx, query, setID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query staged lines for set "+setID, err)
	}
	defer rows.Close()

	var lines []domain.StagedLine
	for rows.Next() {
		var l domain.StagedLine
		if err := rows.Scan(
			&l.StagedLineID, &l.TransactionSetID, &l.AccountID, &l.Debit, &l.Credit, &l.Description, &l.LineNumber,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan staged line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate staged lines", err)
	}
	return lines, nil
}

func (r *PgxTransactionSetRepository) CountSetsByStatusInRange(ctx context.Context, tenantID string, from, to time.Time) (map[domain.TransactionSetStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM transaction_sets
		WHERE tenant_id = $1 AND business_date >= $2 AND business_date <= $3
		GROUP BY status;
	`
	rows, err := r.pool.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count transaction sets by status", err)
	}
	defer rows.Close()

	counts := make(map[domain.TransactionSetStatus]int)
	for rows.Next() {
		var status domain.TransactionSetStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan status count", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate status counts", err)
	}
	return counts, nil
}

func (r *PgxTransactionSetRepository) UpdateSetStatus(ctx context.Context, tenantID, setID string, status domain.TransactionSetStatus, updatedBy string, at time.Time) error {
	query := `
		UPDATE transaction_sets
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $4 AND transaction_set_id = $5;
	`
	tag, err := r.pool.Exec(ctx, query, status, at, updatedBy, tenantID, setID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction set status "+setID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction set %s", apperrors.ErrNotFound, setID)
	}
	return nil
}

func (r *PgxTransactionSetRepository) UpdateSetNotes(ctx context.Context, tenantID, setID, notes, updatedBy string, at time.Time) error {
	query := `
		UPDATE transaction_sets
		SET notes = $1, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $4 AND transaction_set_id = $5 AND status <> 'POSTED';
	`
	tag, err := r.pool.Exec(ctx, query, notes, at, updatedBy, tenantID, setID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction set notes "+setID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction set %s not found or already posted", apperrors.ErrInvalidState, setID)
	}
	return nil
}

// MarkSetPostedInTx flips the set to posted and links the journal entry. The
// WHERE clause on status makes a lost-update impossible even without the row
// lock: a set that is no longer draft or review is not flipped.
func (r *PgxTransactionSetRepository) MarkSetPostedInTx(ctx context.Context, tx pgx.Tx, setID, journalEntryID, updatedBy string, at time.Time) error {
	query := `
		UPDATE transaction_sets
		SET status = 'POSTED', journal_entry_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_set_id = $4 AND status IN ('DRAFT', 'REVIEW');
	`
	tag, err := tx.Exec(ctx, query, journalEntryID, at, updatedBy, setID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark transaction set posted "+setID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction set %s is not postable", apperrors.ErrInvalidState, setID)
	}
	return nil
}

func (r *PgxTransactionSetRepository) SaveStagedLines(ctx context.Context, lines []domain.StagedLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO staged_lines (staged_line_id, transaction_set_id, account_id, debit, credit, description, line_number,
		                          created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, l := range lines {
		batch.Queue(query,
			l.StagedLineID, l.TransactionSetID, l.AccountID, l.Debit, l.Credit, l.Description, l.LineNumber,
			l.CreatedAt, l.CreatedBy, l.LastUpdatedAt, l.LastUpdatedBy,
		)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert staged line", err)
		}
	}
	return nil
}
