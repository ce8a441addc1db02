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

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for journal entries and lines.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, tenant_id, posting_date, entry_date, memo, source, transaction_set_id, reverses_entry_id, reversal_reason, posted_at, posted_by, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID, &e.TenantID, &e.PostingDate, &e.EntryDate, &e.Memo, &e.Source,
		&e.TransactionSetID, &e.ReversesEntryID, &e.ReversalReason,
		&e.PostedAt, &e.PostedBy,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	return e, err
}

// InsertEntryInTx appends one journal entry and its lines inside the caller's
// transaction. The insert is append-only; the partial unique indexes on
// transaction_set_id and reverses_entry_id surface posting races as
// ErrDuplicate.
func (r *PgxLedgerRepository) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, entryQuery,
		entry.EntryID, entry.TenantID, entry.PostingDate, entry.EntryDate, entry.Memo, entry.Source,
		entry.TransactionSetID, entry.ReversesEntryID, entry.ReversalReason,
		entry.PostedAt, entry.PostedBy,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry for this source already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, description, line_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range lines {
		batch.Queue(lineQuery, l.LineID, l.EntryID, l.AccountID, l.Debit, l.Credit, l.Description, l.LineNumber)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert journal line for entry "+entry.EntryID, err)
		}
	}
	return nil
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}
	return &entry, nil
}

func (r *PgxLedgerRepository) FindEntryByTransactionSetID(ctx context.Context, tenantID, setID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND transaction_set_id = $2;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, setID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry for set %s", apperrors.ErrNotFound, setID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry for set "+setID, err)
	}
	return &entry, nil
}

func (r *PgxLedgerRepository) FindReversalOf(ctx context.Context, tenantID, originalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND reverses_entry_id = $2;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, originalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: reversal of entry %s", apperrors.ErrNotFound, originalEntryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find reversal of entry "+originalEntryID, err)
	}
	return &entry, nil
}

func (r *PgxLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit, credit, description, line_number
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var l domain.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit, &l.Description, &l.LineNumber); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal lines", err)
	}
	return lines, nil
}

func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT DISTINCT ` + qualify(entryColumns, "e") + `
		FROM journal_entries e
		JOIN journal_lines l ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2
		  AND ($3::timestamptz IS NULL OR e.posting_date >= $3)
		  AND ($4::timestamptz IS NULL OR e.posting_date <= $4)
		ORDER BY e.posting_date, e.entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountID, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list entries for account "+accountID, err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal entries", err)
	}

	for i := range entries {
		lines, err := r.FindLinesByEntryID(ctx, entries[i].EntryID)
		if err != nil {
			return nil, err
		}
		entries[i].Lines = lines
	}
	return entries, nil
}

func (r *PgxLedgerRepository) TrialBalance(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.tenant_id = $1
		  AND ($2::timestamptz IS NULL OR e.posting_date >= $2)
		  AND ($3::timestamptz IS NULL OR e.posting_date <= $3)
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance", err)
	}
	defer rows.Close()

	var out []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.Debits, &row.Credits); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		row.Net = row.Debits.Sub(row.Credits)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate trial balance rows", err)
	}
	return out, nil
}

func (r *PgxLedgerRepository) PeriodTotals(ctx context.Context, tenantID string, from, to time.Time) (*domain.PeriodTotals, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0), COUNT(DISTINCT e.entry_id)
		FROM journal_entries e
		JOIN journal_lines l ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND e.posting_date >= $2 AND e.posting_date <= $3;
	`
	var totals domain.PeriodTotals
	err := r.Pool.QueryRow(ctx, query, tenantID, from, to).Scan(&totals.TotalDebits, &totals.TotalCredits, &totals.EntryCount)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query period totals", err)
	}
	return &totals, nil
}
