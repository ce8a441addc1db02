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
)

type PeriodServiceTestSuite struct {
	suite.Suite
	periodRepo  *MockPeriodRepository
	setRepo     *MockTransactionSetRepository
	paymentRepo *MockPaymentRepository
	ledgerRepo  *MockLedgerRepository
	service     portssvc.PeriodSvcFacade
	ctx         context.Context

	march domain.AccountingPeriod
}

func (s *PeriodServiceTestSuite) SetupTest() {
	s.periodRepo = new(MockPeriodRepository)
	s.setRepo = new(MockTransactionSetRepository)
	s.paymentRepo = new(MockPaymentRepository)
	s.ledgerRepo = new(MockLedgerRepository)
	s.service = services.NewPeriodService(s.periodRepo, s.setRepo, s.paymentRepo, s.ledgerRepo)
	s.ctx = context.Background()

	s.march = domain.AccountingPeriod{
		PeriodID:  "per-mar",
		TenantID:  testTenantID,
		Label:     "2025-03",
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

func (s *PeriodServiceTestSuite) expectChecklist(drafts, review, draftPayments int) {
	s.setRepo.On("CountSetsByStatusInRange", mock.Anything, testTenantID, s.march.StartDate, s.march.EndDate).
		Return(map[domain.TransactionSetStatus]int{
			domain.SetDraft:  drafts,
			domain.SetReview: review,
		}, nil)
	s.paymentRepo.On("CountDraftPaymentsInRange", mock.Anything, testTenantID, s.march.StartDate, s.march.EndDate).
		Return(draftPayments, nil)
}

func (s *PeriodServiceTestSuite) TestCreatePeriod_Success() {
	s.periodRepo.On("ListPeriods", mock.Anything, testTenantID).Return([]domain.AccountingPeriod{s.march}, nil)

	var saved domain.AccountingPeriod
	s.periodRepo.On("SavePeriod", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.AccountingPeriod)
		}).Return(nil)

	period, err := s.service.CreatePeriod(s.ctx, testTenantID, testActorID, dto.CreatePeriodRequest{
		Label:     "2025-04",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
	})

	s.Require().NoError(err)
	s.Equal(domain.PeriodOpen, period.Status)
	s.Equal("2025-04", saved.Label)
}

func (s *PeriodServiceTestSuite) TestCreatePeriod_RejectsOverlap() {
	s.periodRepo.On("ListPeriods", mock.Anything, testTenantID).Return([]domain.AccountingPeriod{s.march}, nil)

	_, err := s.service.CreatePeriod(s.ctx, testTenantID, testActorID, dto.CreatePeriodRequest{
		Label:     "mid-march split",
		StartDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.periodRepo.AssertNotCalled(s.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestCreatePeriod_RejectsInvertedRange() {
	_, err := s.service.CreatePeriod(s.ctx, testTenantID, testActorID, dto.CreatePeriodRequest{
		Label:     "backwards",
		StartDate: time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PeriodServiceTestSuite) TestSoftClose_SnapshotsChecklist() {
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenantID, "per-mar").Return(&s.march, nil)
	s.expectChecklist(2, 1, 3)

	var updated domain.AccountingPeriod
	s.periodRepo.On("UpdatePeriod", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.AccountingPeriod)
		}).Return(nil)

	period, err := s.service.SoftClose(s.ctx, testTenantID, testActorID, "per-mar")

	s.Require().NoError(err)
	s.Equal(domain.PeriodSoftClosed, period.Status)
	s.Require().NotNil(updated.Checklist)
	// Outstanding items never block a soft close; they are recorded as-is.
	s.Equal(6, updated.Checklist.Outstanding())
	s.NotNil(updated.SoftClosedAt)
}

func (s *PeriodServiceTestSuite) TestSoftClose_OnlyFromOpen() {
	closed := s.march
	closed.Status = domain.PeriodSoftClosed
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenantID, "per-mar").Return(&closed, nil)

	_, err := s.service.SoftClose(s.ctx, testTenantID, testActorID, "per-mar")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PeriodServiceTestSuite) TestHardClose_FreezesTotals() {
	soft := s.march
	soft.Status = domain.PeriodSoftClosed
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenantID, "per-mar").Return(&soft, nil)
	s.expectChecklist(0, 0, 0)
	s.ledgerRepo.On("PeriodTotals", mock.Anything, testTenantID, s.march.StartDate, s.march.EndDate).
		Return(&domain.PeriodTotals{
			TotalDebits:  decimal.NewFromInt(9000),
			TotalCredits: decimal.NewFromInt(9000),
			EntryCount:   42,
		}, nil)

	var updated domain.AccountingPeriod
	s.periodRepo.On("UpdatePeriod", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.AccountingPeriod)
		}).Return(nil)

	period, err := s.service.HardClose(s.ctx, testTenantID, testActorID, "per-mar", dto.HardCloseRequest{})

	s.Require().NoError(err)
	s.Equal(domain.PeriodHardClosed, period.Status)
	s.Require().NotNil(updated.Totals)
	s.Equal(42, updated.Totals.EntryCount)
	s.NotNil(updated.HardClosedAt)
}

func (s *PeriodServiceTestSuite) TestHardClose_RequiresSoftCloseFirst() {
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenantID, "per-mar").Return(&s.march, nil)

	_, err := s.service.HardClose(s.ctx, testTenantID, testActorID, "per-mar", dto.HardCloseRequest{})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.periodRepo.AssertNotCalled(s.T(), "UpdatePeriod", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestHardClose_OutstandingItemsBlock() {
	soft := s.march
	soft.Status = domain.PeriodSoftClosed
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenantID, "per-mar").Return(&soft, nil)
	s.expectChecklist(1, 0, 2)

	_, err := s.service.HardClose(s.ctx, testTenantID, testActorID, "per-mar", dto.HardCloseRequest{})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.ledgerRepo.AssertNotCalled(s.T(), "PeriodTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestHardClose_ForceOverridesGates() {
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenantID, "per-mar").Return(&s.march, nil)
	s.expectChecklist(1, 0, 2)
	s.ledgerRepo.On("PeriodTotals", mock.Anything, testTenantID, s.march.StartDate, s.march.EndDate).
		Return(&domain.PeriodTotals{EntryCount: 7}, nil)
	s.periodRepo.On("UpdatePeriod", mock.Anything, mock.Anything).Return(nil)

	period, err := s.service.HardClose(s.ctx, testTenantID, testActorID, "per-mar", dto.HardCloseRequest{Force: true})

	s.Require().NoError(err)
	s.Equal(domain.PeriodHardClosed, period.Status)
}

func (s *PeriodServiceTestSuite) TestHardClose_NeverFromHardClosed() {
	hard := s.march
	hard.Status = domain.PeriodHardClosed
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenantID, "per-mar").Return(&hard, nil)

	_, err := s.service.HardClose(s.ctx, testTenantID, testActorID, "per-mar", dto.HardCloseRequest{Force: true})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PeriodServiceTestSuite) TestReopen_ClearsFrozenTotals() {
	hard := s.march
	hard.Status = domain.PeriodHardClosed
	hard.Totals = &domain.PeriodTotals{EntryCount: 42}
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenantID, "per-mar").Return(&hard, nil)

	var updated domain.AccountingPeriod
	s.periodRepo.On("UpdatePeriod", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.AccountingPeriod)
		}).Return(nil)

	period, err := s.service.Reopen(s.ctx, testTenantID, testActorID, "per-mar", dto.ReopenRequest{
		Reason: "late vendor invoice arrived",
	})

	s.Require().NoError(err)
	s.Equal(domain.PeriodOpen, period.Status)
	s.Nil(updated.Totals)
	s.Require().NotNil(updated.ReopenReason)
	s.Equal("late vendor invoice arrived", *updated.ReopenReason)
}

func (s *PeriodServiceTestSuite) TestReopen_ReasonTooShort() {
	_, err := s.service.Reopen(s.ctx, testTenantID, testActorID, "per-mar", dto.ReopenRequest{Reason: "  oops  "})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.periodRepo.AssertNotCalled(s.T(), "FindPeriodByID", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestReopen_AlreadyOpen() {
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenantID, "per-mar").Return(&s.march, nil)

	_, err := s.service.Reopen(s.ctx, testTenantID, testActorID, "per-mar", dto.ReopenRequest{
		Reason: "no reason to reopen an open period",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func TestPeriodService(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
