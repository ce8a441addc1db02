package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations over journal entries and lines.
type LedgerReader interface {
	// FindEntryByID retrieves a journal entry without its lines.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindEntryByTransactionSetID retrieves the entry produced by posting the
	// given transaction set. Returns ErrNotFound when the set never posted.
	FindEntryByTransactionSetID(ctx context.Context, tenantID, setID string) (*domain.JournalEntry, error)

	// FindReversalOf retrieves the entry that reverses the given entry, if one
	// exists. Returns ErrNotFound otherwise.
	FindReversalOf(ctx context.Context, tenantID, originalEntryID string) (*domain.JournalEntry, error)

	// ListEntriesByAccount retrieves entries (with their lines) touching an
	// account within a posting-date range, ordered by posting date.
	ListEntriesByAccount(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.JournalEntry, error)

	// TrialBalance sums debits and credits per account over a posting-date range.
	TrialBalance(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TrialBalanceRow, error)

	// PeriodTotals sums activity for all entries posted with a business date
	// inside the range. Used to freeze totals at hard close.
	PeriodTotals(ctx context.Context, tenantID string, from, to time.Time) (*domain.PeriodTotals, error)
}

// LedgerWriter defines the append-only write path for the ledger. Entries and
// lines are only ever inserted, never updated or deleted.
type LedgerWriter interface {
	// InsertEntryInTx appends one journal entry and all of its lines inside
	// the caller's transaction.
	InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error
}

// LedgerRepositoryWithTx combines ledger reads, the append-only write path
// and transaction management.
type LedgerRepositoryWithTx interface {
	LedgerReader
	LedgerWriter
	TransactionManager
}
