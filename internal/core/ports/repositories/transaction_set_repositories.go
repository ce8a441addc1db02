package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionSetReader defines read operations for transaction sets.
type TransactionSetReader interface {
	// FindSetByID retrieves a transaction set scoped to a tenant.
	FindSetByID(ctx context.Context, tenantID, setID string) (*domain.TransactionSet, error)

	// FindSetByIDForUpdate retrieves a transaction set inside the caller's
	// transaction with a row lock, so concurrent posting attempts against the
	// same set serialize.
	FindSetByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, setID string) (*domain.TransactionSet, error)

	// FindStagedLines retrieves the staged lines of a set ordered by line number.
	FindStagedLines(ctx context.Context, setID string) ([]domain.StagedLine, error)

	// CountSetsByStatusInRange counts sets per status with a business date in
	// the range. Used for period close checklists.
	CountSetsByStatusInRange(ctx context.Context, tenantID string, from, to time.Time) (map[domain.TransactionSetStatus]int, error)
}

// TransactionSetWriter defines write operations for transaction sets.
type TransactionSetWriter interface {
	// SaveSet persists a new transaction set (always draft).
	SaveSet(ctx context.Context, set domain.TransactionSet) error

	// UpdateSetStatus moves a set to review or void.
	UpdateSetStatus(ctx context.Context, tenantID, setID string, status domain.TransactionSetStatus, updatedBy string, at time.Time) error

	// UpdateSetNotes replaces the notes of a not-yet-posted set.
	UpdateSetNotes(ctx context.Context, tenantID, setID, notes, updatedBy string, at time.Time) error

	// MarkSetPostedInTx flips a set to posted and links the journal entry,
	// inside the caller's transaction. Only the posting engine calls this.
	MarkSetPostedInTx(ctx context.Context, tx pgx.Tx, setID, journalEntryID, updatedBy string, at time.Time) error

	// SaveStagedLines appends staged lines to a draft set.
	SaveStagedLines(ctx context.Context, lines []domain.StagedLine) error
}

// TransactionSetRepositoryFacade combines all transaction-set repository interfaces.
type TransactionSetRepositoryFacade interface {
	TransactionSetReader
	TransactionSetWriter
}
