package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
)

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, tx, entry, lines)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByTransactionSetID(ctx context.Context, tenantID, setID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindReversalOf(ctx context.Context, tenantID, originalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, originalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) TrialBalance(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockLedgerRepository) PeriodTotals(ctx context.Context, tenantID string, from, to time.Time) (*domain.PeriodTotals, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodTotals), args.Error(1)
}

// --- Mock TransactionSetRepository ---

type MockTransactionSetRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionSetRepositoryFacade = (*MockTransactionSetRepository)(nil)

func (m *MockTransactionSetRepository) FindSetByID(ctx context.Context, tenantID, setID string) (*domain.TransactionSet, error) {
	args := m.Called(ctx, tenantID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSet), args.Error(1)
}

func (m *MockTransactionSetRepository) FindSetByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, setID string) (*domain.TransactionSet, error) {
	args := m.Called(ctx, tx, tenantID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSet), args.Error(1)
}

func (m *MockTransactionSetRepository) FindStagedLines(ctx context.Context, setID string) ([]domain.StagedLine, error) {
	args := m.Called(ctx, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagedLine), args.Error(1)
}

func (m *MockTransactionSetRepository) CountSetsByStatusInRange(ctx context.Context, tenantID string, from, to time.Time) (map[domain.TransactionSetStatus]int, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TransactionSetStatus]int), args.Error(1)
}

func (m *MockTransactionSetRepository) SaveSet(ctx context.Context, set domain.TransactionSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockTransactionSetRepository) UpdateSetStatus(ctx context.Context, tenantID, setID string, status domain.TransactionSetStatus, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tenantID, setID, status, updatedBy, at)
	return args.Error(0)
}

func (m *MockTransactionSetRepository) UpdateSetNotes(ctx context.Context, tenantID, setID, notes, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tenantID, setID, notes, updatedBy, at)
	return args.Error(0)
}

func (m *MockTransactionSetRepository) MarkSetPostedInTx(ctx context.Context, tx pgx.Tx, setID, journalEntryID, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tx, setID, journalEntryID, updatedBy, at)
	return args.Error(0)
}

func (m *MockTransactionSetRepository) SaveStagedLines(ctx context.Context, lines []domain.StagedLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByTransactionSetID(ctx context.Context, tenantID, setID string) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAllocation), args.Error(1)
}

func (m *MockPaymentRepository) CountDraftPaymentsInRange(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentStatus(ctx context.Context, tenantID, paymentID string, status domain.PaymentStatus, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tenantID, paymentID, status, updatedBy, at)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkPaymentPostedInTx(ctx context.Context, tx pgx.Tx, paymentID, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tx, paymentID, updatedBy, at)
	return args.Error(0)
}

func (m *MockPaymentRepository) SaveAllocations(ctx context.Context, allocations []domain.PaymentAllocation) error {
	args := m.Called(ctx, allocations)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeleteAllocation(ctx context.Context, paymentID, allocationID string) error {
	args := m.Called(ctx, paymentID, allocationID)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock DocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, tenantID, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindDocumentsByIDs(ctx context.Context, tenantID string, documentIDs []string) (map[string]domain.Document, error) {
	args := m.Called(ctx, tenantID, documentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListOpenDocuments(ctx context.Context, tenantID string, docType domain.DocumentType, partyID *string, asOf time.Time) ([]domain.OpenDocument, error) {
	args := m.Called(ctx, tenantID, docType, partyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpenDocument), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

// --- Mock InventoryRepository ---

type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindMovementsByTransactionSetID(ctx context.Context, tenantID, setID string) ([]domain.InventoryMovement, error) {
	args := m.Called(ctx, tenantID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryMovement), args.Error(1)
}

func (m *MockInventoryRepository) SaveMovements(ctx context.Context, movements []domain.InventoryMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDateInTx(ctx context.Context, tx pgx.Tx, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}
