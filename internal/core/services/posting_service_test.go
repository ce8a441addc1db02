package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
)

const (
	testTenantID = "tenant-1"
	testActorID  = "user-1"
)

type PostingServiceTestSuite struct {
	suite.Suite
	ledgerRepo    *MockLedgerRepository
	setRepo       *MockTransactionSetRepository
	paymentRepo   *MockPaymentRepository
	inventoryRepo *MockInventoryRepository
	periodRepo    *MockPeriodRepository
	accountRepo   *MockAccountRepository
	service       portssvc.PostingSvcFacade
	ctx           context.Context

	businessDate time.Time
	manualSet    domain.TransactionSet
	stagedLines  []domain.StagedLine
	accounts     map[string]domain.Account
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.ledgerRepo = new(MockLedgerRepository)
	s.setRepo = new(MockTransactionSetRepository)
	s.paymentRepo = new(MockPaymentRepository)
	s.inventoryRepo = new(MockInventoryRepository)
	s.periodRepo = new(MockPeriodRepository)
	s.accountRepo = new(MockAccountRepository)
	s.service = services.NewPostingService(
		s.ledgerRepo, s.setRepo, s.paymentRepo, s.inventoryRepo, s.periodRepo, s.accountRepo,
	)
	s.ctx = context.Background()

	s.businessDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	s.manualSet = domain.TransactionSet{
		TransactionSetID: "set-1",
		TenantID:         testTenantID,
		Status:           domain.SetDraft,
		Source:           domain.SourceManual,
		BusinessDate:     s.businessDate,
		Notes:            "Office rent for March",
	}
	s.stagedLines = []domain.StagedLine{
		{StagedLineID: "sl-1", TransactionSetID: "set-1", AccountID: "acc-rent", Debit: decimal.NewFromInt(1200), LineNumber: 1},
		{StagedLineID: "sl-2", TransactionSetID: "set-1", AccountID: "acc-bank", Credit: decimal.NewFromInt(1200), LineNumber: 2},
	}
	s.accounts = map[string]domain.Account{
		"acc-rent": {AccountID: "acc-rent", TenantID: testTenantID, Code: "6100", AccountType: domain.Expense, IsActive: true},
		"acc-bank": {AccountID: "acc-bank", TenantID: testTenantID, Code: "1010", AccountType: domain.Asset, IsActive: true},
	}
}

// expectTx stubs the transaction bracket every posting path opens.
func (s *PostingServiceTestSuite) expectTx() {
	s.ledgerRepo.On("Begin", mock.Anything).Return(nil, nil)
	s.ledgerRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
}

func (s *PostingServiceTestSuite) expectOpenPeriod() {
	s.periodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, testTenantID, mock.Anything).
		Return(nil, apperrors.ErrNotFound)
}

func (s *PostingServiceTestSuite) TestPostTransactionSet_Success() {
	s.expectTx()
	s.setRepo.On("FindSetByIDForUpdate", mock.Anything, mock.Anything, testTenantID, "set-1").Return(&s.manualSet, nil)
	s.setRepo.On("FindStagedLines", mock.Anything, "set-1").Return(s.stagedLines, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, testTenantID, mock.Anything).Return(s.accounts, nil)
	s.expectOpenPeriod()

	var insertedEntry domain.JournalEntry
	var insertedLines []domain.JournalLine
	s.ledgerRepo.On("InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			insertedEntry = args.Get(2).(domain.JournalEntry)
			insertedLines = args.Get(3).([]domain.JournalLine)
		}).Return(nil)
	s.setRepo.On("MarkSetPostedInTx", mock.Anything, mock.Anything, "set-1", mock.Anything, testActorID, mock.Anything).Return(nil)
	s.ledgerRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)

	result, err := s.service.PostTransactionSet(s.ctx, testTenantID, testActorID, "set-1")

	s.Require().NoError(err)
	s.False(result.Idempotent)
	s.Equal("set-1", result.TransactionSetID)
	s.NotEmpty(result.JournalEntryID)
	s.Len(result.JournalLineIDs, 2)

	s.Equal(result.JournalEntryID, insertedEntry.EntryID)
	s.Equal(domain.SourceManual, insertedEntry.Source)
	s.Equal(s.businessDate, insertedEntry.PostingDate)
	s.Require().NotNil(insertedEntry.TransactionSetID)
	s.Equal("set-1", *insertedEntry.TransactionSetID)
	s.Require().Len(insertedLines, 2)
	s.True(accounting.SumDebits(insertedLines).Equal(accounting.SumCredits(insertedLines)))
	s.Equal(1, insertedLines[0].LineNumber)
	s.Equal(2, insertedLines[1].LineNumber)
}

func (s *PostingServiceTestSuite) TestPostTransactionSet_ReplaysAlreadyPostedSet() {
	posted := s.manualSet
	posted.Status = domain.SetPosted

	s.expectTx()
	s.setRepo.On("FindSetByIDForUpdate", mock.Anything, mock.Anything, testTenantID, "set-1").Return(&posted, nil)
	s.ledgerRepo.On("FindEntryByTransactionSetID", mock.Anything, testTenantID, "set-1").
		Return(&domain.JournalEntry{EntryID: "je-original"}, nil)
	s.ledgerRepo.On("FindLinesByEntryID", mock.Anything, "je-original").Return([]domain.JournalLine{
		{LineID: "jl-1"}, {LineID: "jl-2"},
	}, nil)

	result, err := s.service.PostTransactionSet(s.ctx, testTenantID, testActorID, "set-1")

	s.Require().NoError(err)
	s.True(result.Idempotent)
	s.Equal("je-original", result.JournalEntryID)
	s.Equal([]string{"jl-1", "jl-2"}, result.JournalLineIDs)
	s.ledgerRepo.AssertNotCalled(s.T(), "InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostTransactionSet_VoidSetRejected() {
	void := s.manualSet
	void.Status = domain.SetVoid

	s.expectTx()
	s.setRepo.On("FindSetByIDForUpdate", mock.Anything, mock.Anything, testTenantID, "set-1").Return(&void, nil)

	_, err := s.service.PostTransactionSet(s.ctx, testTenantID, testActorID, "set-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PostingServiceTestSuite) TestPostTransactionSet_UnbalancedLinesRejected() {
	unbalanced := []domain.StagedLine{
		{AccountID: "acc-rent", Debit: decimal.NewFromInt(1200), LineNumber: 1},
		{AccountID: "acc-bank", Credit: decimal.NewFromInt(1100), LineNumber: 2},
	}

	s.expectTx()
	s.setRepo.On("FindSetByIDForUpdate", mock.Anything, mock.Anything, testTenantID, "set-1").Return(&s.manualSet, nil)
	s.setRepo.On("FindStagedLines", mock.Anything, "set-1").Return(unbalanced, nil)

	_, err := s.service.PostTransactionSet(s.ctx, testTenantID, testActorID, "set-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnbalanced)
	s.ledgerRepo.AssertNotCalled(s.T(), "InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.ledgerRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostTransactionSet_HardClosedPeriodRejected() {
	s.expectTx()
	s.setRepo.On("FindSetByIDForUpdate", mock.Anything, mock.Anything, testTenantID, "set-1").Return(&s.manualSet, nil)
	s.setRepo.On("FindStagedLines", mock.Anything, "set-1").Return(s.stagedLines, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, testTenantID, mock.Anything).Return(s.accounts, nil)
	s.periodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, testTenantID, mock.Anything).
		Return(&domain.AccountingPeriod{PeriodID: "per-1", Label: "2025-03", Status: domain.PeriodHardClosed}, nil)

	_, err := s.service.PostTransactionSet(s.ctx, testTenantID, testActorID, "set-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPeriodClosed)
	s.ledgerRepo.AssertNotCalled(s.T(), "InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostTransactionSet_SoftClosedPeriodStillPosts() {
	s.expectTx()
	s.setRepo.On("FindSetByIDForUpdate", mock.Anything, mock.Anything, testTenantID, "set-1").Return(&s.manualSet, nil)
	s.setRepo.On("FindStagedLines", mock.Anything, "set-1").Return(s.stagedLines, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, testTenantID, mock.Anything).Return(s.accounts, nil)
	s.periodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, testTenantID, mock.Anything).
		Return(&domain.AccountingPeriod{PeriodID: "per-1", Label: "2025-03", Status: domain.PeriodSoftClosed}, nil)
	s.ledgerRepo.On("InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.setRepo.On("MarkSetPostedInTx", mock.Anything, mock.Anything, "set-1", mock.Anything, testActorID, mock.Anything).Return(nil)
	s.ledgerRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)

	result, err := s.service.PostTransactionSet(s.ctx, testTenantID, testActorID, "set-1")

	s.Require().NoError(err)
	s.False(result.Idempotent)
}

func (s *PostingServiceTestSuite) TestPostTransactionSet_InactiveAccountRejected() {
	accounts := map[string]domain.Account{
		"acc-rent": s.accounts["acc-rent"],
		"acc-bank": {AccountID: "acc-bank", TenantID: testTenantID, Code: "1010", AccountType: domain.Asset, IsActive: false},
	}

	s.expectTx()
	s.setRepo.On("FindSetByIDForUpdate", mock.Anything, mock.Anything, testTenantID, "set-1").Return(&s.manualSet, nil)
	s.setRepo.On("FindStagedLines", mock.Anything, "set-1").Return(s.stagedLines, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, testTenantID, mock.Anything).Return(accounts, nil)

	_, err := s.service.PostTransactionSet(s.ctx, testTenantID, testActorID, "set-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestPostTransactionSet_UnknownAccountRejected() {
	accounts := map[string]domain.Account{"acc-rent": s.accounts["acc-rent"]}

	s.expectTx()
	s.setRepo.On("FindSetByIDForUpdate", mock.Anything, mock.Anything, testTenantID, "set-1").Return(&s.manualSet, nil)
	s.setRepo.On("FindStagedLines", mock.Anything, "set-1").Return(s.stagedLines, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, testTenantID, mock.Anything).Return(accounts, nil)

	_, err := s.service.PostTransactionSet(s.ctx, testTenantID, testActorID, "set-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PostingServiceTestSuite) TestPostTransactionSet_PaymentSourcePostsPaymentAtomically() {
	paymentSet := domain.TransactionSet{
		TransactionSetID: "set-pay",
		TenantID:         testTenantID,
		Status:           domain.SetDraft,
		Source:           domain.SourcePayment,
		BusinessDate:     s.businessDate,
	}
	payment := domain.Payment{
		PaymentID:        "pay-1",
		TenantID:         testTenantID,
		PaymentType:      domain.Receipt,
		PartyID:          "cust-9",
		Amount:           decimal.NewFromInt(500),
		PaymentDate:      s.businessDate,
		BankAccountID:    "acc-bank",
		CounterAccountID: "acc-ar",
		Status:           domain.PaymentDraft,
		TransactionSetID: "set-pay",
	}
	allocations := []domain.PaymentAllocation{
		{AllocationID: "alloc-1", PaymentID: "pay-1", TargetType: domain.SalesDoc, TargetID: "doc-1", Amount: decimal.NewFromInt(300)},
	}
	accounts := map[string]domain.Account{
		"acc-bank": {AccountID: "acc-bank", IsActive: true},
		"acc-ar":   {AccountID: "acc-ar", IsActive: true},
	}

	s.expectTx()
	s.setRepo.On("FindSetByIDForUpdate", mock.Anything, mock.Anything, testTenantID, "set-pay").Return(&paymentSet, nil)
	s.paymentRepo.On("FindPaymentByTransactionSetID", mock.Anything, testTenantID, "set-pay").Return(&payment, nil)
	s.paymentRepo.On("FindAllocationsByPaymentID", mock.Anything, "pay-1").Return(allocations, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, testTenantID, mock.Anything).Return(accounts, nil)
	s.expectOpenPeriod()

	var insertedLines []domain.JournalLine
	s.ledgerRepo.On("InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			insertedLines = args.Get(3).([]domain.JournalLine)
		}).Return(nil)
	s.setRepo.On("MarkSetPostedInTx", mock.Anything, mock.Anything, "set-pay", mock.Anything, testActorID, mock.Anything).Return(nil)
	s.paymentRepo.On("MarkPaymentPostedInTx", mock.Anything, mock.Anything, "pay-1", testActorID, mock.Anything).Return(nil)
	s.ledgerRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)

	result, err := s.service.PostTransactionSet(s.ctx, testTenantID, testActorID, "set-pay")

	s.Require().NoError(err)
	s.False(result.Idempotent)
	// Bank debit 500, AR credit 300 settled, AR credit 200 on account.
	s.Require().Len(insertedLines, 3)
	s.Equal("acc-bank", insertedLines[0].AccountID)
	s.True(insertedLines[0].Debit.Equal(decimal.NewFromInt(500)))
	s.True(insertedLines[1].Credit.Equal(decimal.NewFromInt(300)))
	s.True(insertedLines[2].Credit.Equal(decimal.NewFromInt(200)))
	s.paymentRepo.AssertCalled(s.T(), "MarkPaymentPostedInTx", mock.Anything, mock.Anything, "pay-1", testActorID, mock.Anything)
}

func (s *PostingServiceTestSuite) TestCreateSimpleLedgerEntry_RejectsDerivedSources() {
	for _, source := range []domain.TransactionSource{domain.SourcePayment, domain.SourceInventory} {
		_, err := s.service.CreateSimpleLedgerEntry(s.ctx, testTenantID, testActorID, dto.CreateSimpleEntryRequest{
			PostingDate: s.businessDate,
			Memo:        "should not post",
			Source:      source,
			Lines: []dto.EntryLineRequest{
				{AccountID: "acc-rent", Debit: decimal.NewFromInt(10)},
				{AccountID: "acc-bank", Credit: decimal.NewFromInt(10)},
			},
		})
		s.Require().Error(err)
		s.ErrorIs(err, apperrors.ErrValidation)
	}
	s.setRepo.AssertNotCalled(s.T(), "SaveSet", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestCreateSimpleLedgerEntry_StagesAndPosts() {
	s.setRepo.On("SaveSet", mock.Anything, mock.Anything).Return(nil)

	var staged []domain.StagedLine
	s.setRepo.On("SaveStagedLines", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			staged = args.Get(1).([]domain.StagedLine)
		}).Return(nil)

	s.expectTx()
	s.setRepo.On("FindSetByIDForUpdate", mock.Anything, mock.Anything, testTenantID, mock.Anything).Return(&s.manualSet, nil)
	s.setRepo.On("FindStagedLines", mock.Anything, mock.Anything).Return(s.stagedLines, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, testTenantID, mock.Anything).Return(s.accounts, nil)
	s.expectOpenPeriod()
	s.ledgerRepo.On("InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.setRepo.On("MarkSetPostedInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, testActorID, mock.Anything).Return(nil)
	s.ledgerRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)

	result, err := s.service.CreateSimpleLedgerEntry(s.ctx, testTenantID, testActorID, dto.CreateSimpleEntryRequest{
		PostingDate: s.businessDate,
		Memo:        "Office rent for March",
		Lines: []dto.EntryLineRequest{
			{AccountID: "acc-rent", Debit: decimal.NewFromInt(1200), Description: "March rent"},
			{AccountID: "acc-bank", Credit: decimal.NewFromInt(1200)},
		},
	})

	s.Require().NoError(err)
	s.NotEmpty(result.JournalEntryID)
	s.Require().Len(staged, 2)
	s.Equal(1, staged[0].LineNumber)
	s.Equal(2, staged[1].LineNumber)
	s.Equal("acc-rent", staged[0].AccountID)
}

func (s *PostingServiceTestSuite) TestReverseJournalEntry_Success() {
	original := domain.JournalEntry{
		EntryID:  "je-1",
		TenantID: testTenantID,
		Memo:     "Office rent for March",
		Source:   domain.SourceManual,
	}
	originalLines := []domain.JournalLine{
		{LineID: "jl-1", EntryID: "je-1", AccountID: "acc-rent", Debit: decimal.NewFromInt(1200), LineNumber: 1},
		{LineID: "jl-2", EntryID: "je-1", AccountID: "acc-bank", Credit: decimal.NewFromInt(1200), LineNumber: 2},
	}

	s.ledgerRepo.On("FindEntryByID", mock.Anything, testTenantID, "je-1").Return(&original, nil)
	s.ledgerRepo.On("FindReversalOf", mock.Anything, testTenantID, "je-1").Return(nil, apperrors.ErrNotFound)
	s.ledgerRepo.On("FindLinesByEntryID", mock.Anything, "je-1").Return(originalLines, nil)
	s.expectTx()
	s.expectOpenPeriod()

	var reversal domain.JournalEntry
	var reversalLines []domain.JournalLine
	s.ledgerRepo.On("InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			reversal = args.Get(2).(domain.JournalEntry)
			reversalLines = args.Get(3).([]domain.JournalLine)
		}).Return(nil)
	s.ledgerRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)

	result, err := s.service.ReverseJournalEntry(s.ctx, testTenantID, testActorID, "je-1", dto.ReverseEntryRequest{
		Reason: "posted against wrong month",
	})

	s.Require().NoError(err)
	s.False(result.Idempotent)
	s.Equal(reversal.EntryID, result.ReversalEntryID)
	s.Require().NotNil(reversal.ReversesEntryID)
	s.Equal("je-1", *reversal.ReversesEntryID)
	s.Equal("Reversal of: Office rent for March", reversal.Memo)

	// Debit and credit swap per line; accounts and order are preserved.
	s.Require().Len(reversalLines, 2)
	s.Equal("acc-rent", reversalLines[0].AccountID)
	s.True(reversalLines[0].Credit.Equal(decimal.NewFromInt(1200)))
	s.True(reversalLines[0].Debit.IsZero())
	s.Equal("acc-bank", reversalLines[1].AccountID)
	s.True(reversalLines[1].Debit.Equal(decimal.NewFromInt(1200)))
}

func (s *PostingServiceTestSuite) TestReverseJournalEntry_RequiresReason() {
	_, err := s.service.ReverseJournalEntry(s.ctx, testTenantID, testActorID, "je-1", dto.ReverseEntryRequest{Reason: "   "})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ledgerRepo.AssertNotCalled(s.T(), "FindEntryByID", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestReverseJournalEntry_SecondAttemptIsIdempotent() {
	original := domain.JournalEntry{EntryID: "je-1", TenantID: testTenantID}
	existing := domain.JournalEntry{EntryID: "je-rev", ReversesEntryID: &original.EntryID}

	s.ledgerRepo.On("FindEntryByID", mock.Anything, testTenantID, "je-1").Return(&original, nil)
	s.ledgerRepo.On("FindReversalOf", mock.Anything, testTenantID, "je-1").Return(&existing, nil)

	result, err := s.service.ReverseJournalEntry(s.ctx, testTenantID, testActorID, "je-1", dto.ReverseEntryRequest{
		Reason: "duplicate retry from the client",
	})

	s.Require().NoError(err)
	s.True(result.Idempotent)
	s.Equal("je-rev", result.ReversalEntryID)
	s.ledgerRepo.AssertNotCalled(s.T(), "InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestReverseJournalEntry_CannotReverseAReversal() {
	originalID := "je-0"
	reversal := domain.JournalEntry{EntryID: "je-rev", TenantID: testTenantID, ReversesEntryID: &originalID}

	s.ledgerRepo.On("FindEntryByID", mock.Anything, testTenantID, "je-rev").Return(&reversal, nil)

	_, err := s.service.ReverseJournalEntry(s.ctx, testTenantID, testActorID, "je-rev", dto.ReverseEntryRequest{
		Reason: "attempting to undo the undo",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PostingServiceTestSuite) TestReverseJournalEntry_RaceReturnsWinner() {
	original := domain.JournalEntry{EntryID: "je-1", TenantID: testTenantID, Memo: "race"}
	originalLines := []domain.JournalLine{
		{AccountID: "acc-rent", Debit: decimal.NewFromInt(100), LineNumber: 1},
		{AccountID: "acc-bank", Credit: decimal.NewFromInt(100), LineNumber: 2},
	}
	winner := domain.JournalEntry{EntryID: "je-winner", ReversesEntryID: &original.EntryID}

	s.ledgerRepo.On("FindEntryByID", mock.Anything, testTenantID, "je-1").Return(&original, nil)
	s.ledgerRepo.On("FindReversalOf", mock.Anything, testTenantID, "je-1").Return(nil, apperrors.ErrNotFound).Once()
	s.ledgerRepo.On("FindLinesByEntryID", mock.Anything, "je-1").Return(originalLines, nil)
	s.expectTx()
	s.expectOpenPeriod()
	s.ledgerRepo.On("InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate)
	s.ledgerRepo.On("FindReversalOf", mock.Anything, testTenantID, "je-1").Return(&winner, nil).Once()

	result, err := s.service.ReverseJournalEntry(s.ctx, testTenantID, testActorID, "je-1", dto.ReverseEntryRequest{
		Reason: "concurrent reversal attempt",
	})

	s.Require().NoError(err)
	s.True(result.Idempotent)
	s.Equal("je-winner", result.ReversalEntryID)
	s.ledgerRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestReverseJournalEntry_HardClosedPeriodRejected() {
	original := domain.JournalEntry{EntryID: "je-1", TenantID: testTenantID}
	originalLines := []domain.JournalLine{
		{AccountID: "acc-rent", Debit: decimal.NewFromInt(100), LineNumber: 1},
		{AccountID: "acc-bank", Credit: decimal.NewFromInt(100), LineNumber: 2},
	}

	s.ledgerRepo.On("FindEntryByID", mock.Anything, testTenantID, "je-1").Return(&original, nil)
	s.ledgerRepo.On("FindReversalOf", mock.Anything, testTenantID, "je-1").Return(nil, apperrors.ErrNotFound)
	s.ledgerRepo.On("FindLinesByEntryID", mock.Anything, "je-1").Return(originalLines, nil)
	s.expectTx()
	s.periodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, testTenantID, mock.Anything).
		Return(&domain.AccountingPeriod{PeriodID: "per-1", Label: "2025-02", Status: domain.PeriodHardClosed}, nil)

	_, err := s.service.ReverseJournalEntry(s.ctx, testTenantID, testActorID, "je-1", dto.ReverseEntryRequest{
		Reason: "reversal into a locked month",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPeriodClosed)
	s.ledgerRepo.AssertNotCalled(s.T(), "InsertEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestGetEntry_IncludesLines() {
	entry := domain.JournalEntry{EntryID: "je-1", TenantID: testTenantID}
	lines := []domain.JournalLine{{LineID: "jl-1", EntryID: "je-1", LineNumber: 1}}

	s.ledgerRepo.On("FindEntryByID", mock.Anything, testTenantID, "je-1").Return(&entry, nil)
	s.ledgerRepo.On("FindLinesByEntryID", mock.Anything, "je-1").Return(lines, nil)

	got, err := s.service.GetEntry(s.ctx, testTenantID, "je-1")

	s.Require().NoError(err)
	s.Len(got.Lines, 1)
}

func (s *PostingServiceTestSuite) TestListEntriesByAccount_UnknownAccount() {
	s.accountRepo.On("FindAccountByID", mock.Anything, testTenantID, "acc-missing").Return(nil, apperrors.ErrNotFound)

	_, err := s.service.ListEntriesByAccount(s.ctx, testTenantID, "acc-missing", dto.DateRange{})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ledgerRepo.AssertNotCalled(s.T(), "ListEntriesByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
