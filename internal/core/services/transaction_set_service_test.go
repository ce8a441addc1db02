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

type TransactionSetServiceTestSuite struct {
	suite.Suite
	setRepo *MockTransactionSetRepository
	service portssvc.TransactionSetSvcFacade
	ctx     context.Context

	draft domain.TransactionSet
}

func (s *TransactionSetServiceTestSuite) SetupTest() {
	s.setRepo = new(MockTransactionSetRepository)
	s.service = services.NewTransactionSetService(s.setRepo)
	s.ctx = context.Background()

	s.draft = domain.TransactionSet{
		TransactionSetID: "set-1",
		TenantID:         testTenantID,
		Status:           domain.SetDraft,
		Source:           domain.SourceExpense,
		BusinessDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func (s *TransactionSetServiceTestSuite) TestCreateDraft_Success() {
	var saved domain.TransactionSet
	s.setRepo.On("SaveSet", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.TransactionSet)
		}).Return(nil)

	set, err := s.service.CreateDraft(s.ctx, testTenantID, testActorID, dto.CreateTransactionSetRequest{
		Source:       domain.SourceTransfer,
		BusinessDate: s.draft.BusinessDate,
		Notes:        "move cash to savings",
	})

	s.Require().NoError(err)
	s.Equal(domain.SetDraft, set.Status)
	s.Equal(domain.SourceTransfer, saved.Source)
	s.Equal(testActorID, saved.CreatedBy)
}

func (s *TransactionSetServiceTestSuite) TestCreateDraft_UnknownSource() {
	_, err := s.service.CreateDraft(s.ctx, testTenantID, testActorID, dto.CreateTransactionSetRequest{
		Source:       domain.TransactionSource("payroll"),
		BusinessDate: s.draft.BusinessDate,
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.setRepo.AssertNotCalled(s.T(), "SaveSet", mock.Anything, mock.Anything)
}

func (s *TransactionSetServiceTestSuite) TestSubmitForReview_Success() {
	s.setRepo.On("FindSetByID", mock.Anything, testTenantID, "set-1").Return(&s.draft, nil)
	s.setRepo.On("UpdateSetStatus", mock.Anything, testTenantID, "set-1", domain.SetReview, testActorID, mock.Anything).Return(nil)

	set, err := s.service.SubmitForReview(s.ctx, testTenantID, testActorID, "set-1")

	s.Require().NoError(err)
	s.Equal(domain.SetReview, set.Status)
}

func (s *TransactionSetServiceTestSuite) TestSubmitForReview_OnlyFromDraft() {
	for _, status := range []domain.TransactionSetStatus{domain.SetReview, domain.SetPosted, domain.SetVoid} {
		s.SetupTest()
		set := s.draft
		set.Status = status
		s.setRepo.On("FindSetByID", mock.Anything, testTenantID, "set-1").Return(&set, nil)

		_, err := s.service.SubmitForReview(s.ctx, testTenantID, testActorID, "set-1")

		s.Require().Error(err, "status %s", status)
		s.ErrorIs(err, apperrors.ErrValidation)
	}
}

func (s *TransactionSetServiceTestSuite) TestVoidSet_FromDraftAndReview() {
	for _, status := range []domain.TransactionSetStatus{domain.SetDraft, domain.SetReview} {
		s.SetupTest()
		set := s.draft
		set.Status = status
		s.setRepo.On("FindSetByID", mock.Anything, testTenantID, "set-1").Return(&set, nil)
		s.setRepo.On("UpdateSetStatus", mock.Anything, testTenantID, "set-1", domain.SetVoid, testActorID, mock.Anything).Return(nil)

		voided, err := s.service.VoidSet(s.ctx, testTenantID, testActorID, "set-1")

		s.Require().NoError(err, "status %s", status)
		s.Equal(domain.SetVoid, voided.Status)
	}
}

func (s *TransactionSetServiceTestSuite) TestVoidSet_TerminalStatesRejected() {
	for _, status := range []domain.TransactionSetStatus{domain.SetPosted, domain.SetVoid} {
		s.SetupTest()
		set := s.draft
		set.Status = status
		s.setRepo.On("FindSetByID", mock.Anything, testTenantID, "set-1").Return(&set, nil)

		_, err := s.service.VoidSet(s.ctx, testTenantID, testActorID, "set-1")

		s.Require().Error(err, "status %s", status)
		s.ErrorIs(err, apperrors.ErrInvalidState)
		s.setRepo.AssertNotCalled(s.T(), "UpdateSetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func (s *TransactionSetServiceTestSuite) TestStageLines_NumbersContinueAfterExisting() {
	existing := []domain.StagedLine{
		{StagedLineID: "sl-1", TransactionSetID: "set-1", LineNumber: 1},
		{StagedLineID: "sl-2", TransactionSetID: "set-1", LineNumber: 2},
	}
	s.setRepo.On("FindSetByID", mock.Anything, testTenantID, "set-1").Return(&s.draft, nil)
	s.setRepo.On("FindStagedLines", mock.Anything, "set-1").Return(existing, nil)
	s.setRepo.On("SaveStagedLines", mock.Anything, mock.Anything).Return(nil)

	lines, err := s.service.StageLines(s.ctx, testTenantID, testActorID, "set-1", dto.StageLinesRequest{
		Lines: []dto.StagedLineRequest{
			{AccountID: "acc-a", Debit: decimal.NewFromInt(50)},
			{AccountID: "acc-b", Credit: decimal.NewFromInt(50)},
		},
	})

	s.Require().NoError(err)
	s.Require().Len(lines, 2)
	s.Equal(3, lines[0].LineNumber)
	s.Equal(4, lines[1].LineNumber)
}

func (s *TransactionSetServiceTestSuite) TestStageLines_OnlyOnDrafts() {
	review := s.draft
	review.Status = domain.SetReview
	s.setRepo.On("FindSetByID", mock.Anything, testTenantID, "set-1").Return(&review, nil)

	_, err := s.service.StageLines(s.ctx, testTenantID, testActorID, "set-1", dto.StageLinesRequest{
		Lines: []dto.StagedLineRequest{{AccountID: "acc-a", Debit: decimal.NewFromInt(50)}},
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *TransactionSetServiceTestSuite) TestStageLines_DerivedSourcesRejected() {
	for _, source := range []domain.TransactionSource{domain.SourcePayment, domain.SourceInventory} {
		s.SetupTest()
		set := s.draft
		set.Source = source
		s.setRepo.On("FindSetByID", mock.Anything, testTenantID, "set-1").Return(&set, nil)

		_, err := s.service.StageLines(s.ctx, testTenantID, testActorID, "set-1", dto.StageLinesRequest{
			Lines: []dto.StagedLineRequest{{AccountID: "acc-a", Debit: decimal.NewFromInt(50)}},
		})

		s.Require().Error(err, "source %s", source)
		s.ErrorIs(err, apperrors.ErrValidation)
	}
}

func TestTransactionSetService(t *testing.T) {
	suite.Run(t, new(TransactionSetServiceTestSuite))
}
