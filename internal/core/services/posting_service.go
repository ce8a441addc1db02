package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
)

// postingService is the single writer of journal entries. It owns the
// posted transition of transaction sets and payments.
type postingService struct {
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	setRepo     portsrepo.TransactionSetRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	derivers    map[domain.TransactionSource]LineDeriver
}

// NewPostingService creates the posting engine with one line deriver per
// source type.
func NewPostingService(
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	setRepo portsrepo.TransactionSetRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	periodRepo portsrepo.PeriodRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
) portssvc.PostingSvcFacade {
	staged := &stagedLineDeriver{sets: setRepo}
	return &postingService{
		ledgerRepo:  ledgerRepo,
		setRepo:     setRepo,
		paymentRepo: paymentRepo,
		periodRepo:  periodRepo,
		accountRepo: accountRepo,
		derivers: map[domain.TransactionSource]LineDeriver{
			domain.SourcePayment:   &paymentLineDeriver{payments: paymentRepo},
			domain.SourceInventory: &inventoryLineDeriver{inventory: inventoryRepo},
			domain.SourceManual:    staged,
			domain.SourceTransfer:  staged,
			domain.SourceExpense:   staged,
			domain.SourceCapital:   staged,
		},
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostTransactionSet books a transaction set as one journal entry. The whole
// sequence (lock set, re-check status, derive lines, validate balance and
// period, insert entry and lines, flip statuses) runs inside a single
// database transaction so concurrent retries against the same set serialize
// on the row lock and collapse to an idempotent replay.
func (s *postingService) PostTransactionSet(ctx context.Context, tenantID, actorID, setID string) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.ledgerRepo.Rollback(ctx, tx) }()

	set, err := s.setRepo.FindSetByIDForUpdate(ctx, tx, tenantID, setID)
	if err != nil {
		return nil, err
	}

	switch set.Status {
	case domain.SetPosted:
		// Retry of an already-posted set: hand back the original result
		// without writing anything.
		return s.replayPostedSet(ctx, tenantID, setID)
	case domain.SetVoid:
		return nil, fmt.Errorf("%w: transaction set %s is void", apperrors.ErrInvalidState, setID)
	}

	deriver, ok := s.derivers[set.Source]
	if !ok {
		return nil, fmt.Errorf("%w: no line derivation for source %s", apperrors.ErrValidation, set.Source)
	}
	lines, err := deriver.Derive(ctx, *set)
	if err != nil {
		return nil, err
	}

	accounting.NumberLines(lines)
	if err := accounting.ValidateLines(lines); err != nil {
		return nil, err
	}
	if err := s.validateAccounts(ctx, tenantID, lines); err != nil {
		return nil, err
	}
	if err := s.checkPeriodInTx(ctx, tx, tenantID, set.BusinessDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:          uuid.NewString(),
		TenantID:         tenantID,
		PostingDate:      set.BusinessDate,
		EntryDate:        set.BusinessDate,
		Memo:             set.Notes,
		Source:           set.Source,
		TransactionSetID: &set.TransactionSetID,
		PostedAt:         now,
		PostedBy:         actorID,
		AuditFields:      domain.NewAuditFields(actorID, now),
	}
	lineIDs := make([]string, len(lines))
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entry.EntryID
		lineIDs[i] = lines[i].LineID
	}

	if err := s.ledgerRepo.InsertEntryInTx(ctx, tx, entry, lines); err != nil {
		return nil, err
	}
	if err := s.setRepo.MarkSetPostedInTx(ctx, tx, setID, entry.EntryID, actorID, now); err != nil {
		return nil, err
	}
	if set.Source == domain.SourcePayment {
		payment, err := s.paymentRepo.FindPaymentByTransactionSetID(ctx, tenantID, setID)
		if err != nil {
			return nil, err
		}
		if err := s.paymentRepo.MarkPaymentPostedInTx(ctx, tx, payment.PaymentID, actorID, now); err != nil {
			return nil, err
		}
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Transaction set posted",
		slog.String("transaction_set_id", setID),
		slog.String("journal_entry_id", entry.EntryID),
		slog.String("source", string(set.Source)),
		slog.Int("line_count", len(lines)),
	)
	return &dto.PostingResult{
		JournalEntryID:   entry.EntryID,
		JournalLineIDs:   lineIDs,
		TransactionSetID: setID,
		Idempotent:       false,
	}, nil
}

// replayPostedSet returns the previously recorded posting result for a set
// that already posted.
func (s *postingService) replayPostedSet(ctx context.Context, tenantID, setID string) (*dto.PostingResult, error) {
	entry, err := s.ledgerRepo.FindEntryByTransactionSetID(ctx, tenantID, setID)
	if err != nil {
		return nil, fmt.Errorf("posted set %s has no journal entry: %w", setID, err)
	}
	lines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	lineIDs := make([]string, len(lines))
	for i, l := range lines {
		lineIDs[i] = l.LineID
	}
	return &dto.PostingResult{
		JournalEntryID:   entry.EntryID,
		JournalLineIDs:   lineIDs,
		TransactionSetID: setID,
		Idempotent:       true,
	}, nil
}

// CreateSimpleLedgerEntry posts caller-supplied lines: it opens a backing
// transaction set, stages the lines and runs them through the same engine so
// balance and period checks apply identically.
func (s *postingService) CreateSimpleLedgerEntry(ctx context.Context, tenantID, actorID string, req dto.CreateSimpleEntryRequest) (*dto.PostingResult, error) {
	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}
	if !source.IsValid() || source == domain.SourcePayment || source == domain.SourceInventory {
		return nil, fmt.Errorf("%w: source %s cannot carry explicit lines", apperrors.ErrValidation, source)
	}

	now := time.Now().UTC()
	set := domain.TransactionSet{
		TransactionSetID: uuid.NewString(),
		TenantID:         tenantID,
		Status:           domain.SetDraft,
		Source:           source,
		BusinessDate:     req.PostingDate,
		Notes:            req.Memo,
		AuditFields:      domain.NewAuditFields(actorID, now),
	}
	if err := s.setRepo.SaveSet(ctx, set); err != nil {
		return nil, err
	}

	staged := make([]domain.StagedLine, len(req.Lines))
	for i, l := range req.Lines {
		staged[i] = domain.StagedLine{
			StagedLineID:     uuid.NewString(),
			TransactionSetID: set.TransactionSetID,
			AccountID:        l.AccountID,
			Debit:            l.Debit,
			Credit:           l.Credit,
			Description:      l.Description,
			LineNumber:       i + 1,
			AuditFields:      domain.NewAuditFields(actorID, now),
		}
	}
	if err := s.setRepo.SaveStagedLines(ctx, staged); err != nil {
		return nil, err
	}

	return s.PostTransactionSet(ctx, tenantID, actorID, set.TransactionSetID)
}

// ReverseJournalEntry books the inverse of a posted entry: same accounts,
// debit and credit swapped per line. The original entry is never touched;
// linkage lives on the reversal via ReversesEntryID, and a second reversal
// attempt returns the existing one flagged idempotent.
func (s *postingService) ReverseJournalEntry(ctx context.Context, tenantID, actorID, entryID string, req dto.ReverseEntryRequest) (*dto.ReversalResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	original, err := s.ledgerRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: cannot reverse a reversal entry", apperrors.ErrInvalidState)
	}

	existing, err := s.ledgerRepo.FindReversalOf(ctx, tenantID, entryID)
	if err == nil {
		return &dto.ReversalResult{ReversalEntryID: existing.EntryID, Idempotent: true}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	originalLines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	postingDate := now
	if req.PostingDate != nil {
		postingDate = *req.PostingDate
	}

	memo := fmt.Sprintf("Reversal of: %s", original.Memo)
	if req.Memo != nil {
		memo = *req.Memo
	}
	reason := req.Reason

	reversal := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		TenantID:        tenantID,
		PostingDate:     postingDate,
		EntryDate:       postingDate,
		Memo:            memo,
		Source:          original.Source,
		ReversesEntryID: &original.EntryID,
		ReversalReason:  &reason,
		PostedAt:        now,
		PostedBy:        actorID,
		AuditFields:     domain.NewAuditFields(actorID, now),
	}
	lines := accounting.SwapLines(originalLines)
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = reversal.EntryID
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.ledgerRepo.Rollback(ctx, tx) }()

	if err := s.checkPeriodInTx(ctx, tx, tenantID, postingDate); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.InsertEntryInTx(ctx, tx, reversal, lines); err != nil {
		// A unique index on reverses_entry_id turns a reversal race into a
		// duplicate; surface the winner instead of failing the caller.
		if errors.Is(err, apperrors.ErrDuplicate) {
			if winner, findErr := s.ledgerRepo.FindReversalOf(ctx, tenantID, entryID); findErr == nil {
				return &dto.ReversalResult{ReversalEntryID: winner.EntryID, Idempotent: true}, nil
			}
		}
		return nil, err
	}
	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID),
	)
	return &dto.ReversalResult{ReversalEntryID: reversal.EntryID, Idempotent: false}, nil
}

// GetEntry retrieves a journal entry with its lines ordered by line number.
func (s *postingService) GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntriesByAccount retrieves entries touching an account in a date range.
func (s *postingService) ListEntriesByAccount(ctx context.Context, tenantID, accountID string, rng dto.DateRange) ([]domain.JournalEntry, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListEntriesByAccount(ctx, tenantID, accountID, rng.From, rng.To)
}

// validateAccounts checks every line references an existing, active account
// in the tenant.
func (s *postingService) validateAccounts(ctx context.Context, tenantID string, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			ids = append(ids, l.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		acc, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// checkPeriodInTx rejects postings whose business date falls inside a
// hard-closed period. Soft-closed periods are advisory and do not gate
// posting.
func (s *postingService) checkPeriodInTx(ctx context.Context, tx pgx.Tx, tenantID string, businessDate time.Time) error {
	period, err := s.periodRepo.FindPeriodForDateInTx(ctx, tx, tenantID, businessDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil // No period covers the date; posting is unrestricted.
		}
		return err
	}
	if period.Status == domain.PeriodHardClosed {
		return fmt.Errorf("%w: period %s (%s)", apperrors.ErrPeriodClosed, period.Label, period.PeriodID)
	}
	return nil
}
