package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

type paymentService struct {
	paymentRepo  portsrepo.PaymentRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
	setRepo      portsrepo.TransactionSetRepositoryFacade
	postingSvc   portssvc.PostingSvcFacade
}

// NewPaymentService creates the payment and allocation service. Posting goes
// through the posting engine; this service never writes journal rows itself.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	setRepo portsrepo.TransactionSetRepositoryFacade,
	postingSvc portssvc.PostingSvcFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:  paymentRepo,
		documentRepo: documentRepo,
		setRepo:      setRepo,
		postingSvc:   postingSvc,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) CreatePayment(ctx context.Context, tenantID, actorID string, req dto.CreatePaymentRequest) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.PaymentType.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment type %s", apperrors.ErrValidation, req.PaymentType)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	set := domain.TransactionSet{
		TransactionSetID: uuid.NewString(),
		TenantID:         tenantID,
		Status:           domain.SetDraft,
		Source:           domain.SourcePayment,
		BusinessDate:     req.PaymentDate,
		Notes:            req.Memo,
		AuditFields:      domain.NewAuditFields(actorID, now),
	}
	if err := s.setRepo.SaveSet(ctx, set); err != nil {
		return nil, err
	}

	payment := domain.Payment{
		PaymentID:        uuid.NewString(),
		TenantID:         tenantID,
		PaymentType:      req.PaymentType,
		PartyID:          req.PartyID,
		Amount:           req.Amount,
		PaymentDate:      req.PaymentDate,
		BankAccountID:    req.BankAccountID,
		CounterAccountID: req.CounterAccountID,
		Memo:             req.Memo,
		Status:           domain.PaymentDraft,
		TransactionSetID: set.TransactionSetID,
		AuditFields:      domain.NewAuditFields(actorID, now),
	}
	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info("Payment drafted",
		slog.String("payment_id", payment.PaymentID),
		slog.String("payment_type", string(payment.PaymentType)),
		slog.String("transaction_set_id", set.TransactionSetID),
	)
	return &payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, tenantID, paymentID string) (*domain.Payment, []domain.PaymentAllocation, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, tenantID, paymentID)
	if err != nil {
		return nil, nil, err
	}
	allocs, err := s.paymentRepo.FindAllocationsByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	return payment, allocs, nil
}

// CreateAllocations apportions the payment across open documents. All checks
// run against the draft payment: target type must match the payment type,
// targets must exist, amounts must be positive, each allocation may not
// exceed the target's open balance, and the running allocated total may
// never exceed the payment amount.
func (s *paymentService) CreateAllocations(ctx context.Context, tenantID, actorID, paymentID string, req dto.CreateAllocationsRequest) ([]domain.PaymentAllocation, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, tenantID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentDraft {
		return nil, fmt.Errorf("%w: payment %s is %s, allocations require a draft payment", apperrors.ErrInvalidState, paymentID, payment.Status)
	}

	wantType := payment.AllocationTargetType()
	targetIDs := make([]string, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		if a.TargetType != wantType {
			return nil, fmt.Errorf("%w: %s payments allocate to %s targets, got %s", apperrors.ErrValidation, payment.PaymentType, wantType, a.TargetType)
		}
		if !a.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: allocation amount must be positive", apperrors.ErrValidation)
		}
		targetIDs = append(targetIDs, a.TargetID)
	}

	documents, err := s.documentRepo.FindDocumentsByIDs(ctx, tenantID, targetIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range targetIDs {
		if _, ok := documents[id]; !ok {
			return nil, fmt.Errorf("%w: target document %s", apperrors.ErrNotFound, id)
		}
	}

	existing, err := s.paymentRepo.FindAllocationsByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	// Open balances as of the payment date, and amounts this payment has
	// already put against each target.
	open, err := s.documentRepo.ListOpenDocuments(ctx, tenantID, wantType, nil, payment.PaymentDate)
	if err != nil {
		return nil, err
	}
	openByID := make(map[string]decimal.Decimal, len(open))
	for _, d := range open {
		openByID[d.DocumentID] = d.Open
	}
	alreadyByTarget := make(map[string]decimal.Decimal, len(existing))
	for _, a := range existing {
		alreadyByTarget[a.TargetID] = alreadyByTarget[a.TargetID].Add(a.Amount)
	}

	total := domain.SumAllocations(existing)
	now := time.Now().UTC()
	allocs := make([]domain.PaymentAllocation, len(req.Allocations))
	for i, a := range req.Allocations {
		total = total.Add(a.Amount)
		if total.GreaterThan(payment.Amount) {
			return nil, fmt.Errorf("%w: allocated total %s exceeds payment amount %s", apperrors.ErrValidation, total, payment.Amount)
		}
		openAmt, ok := openByID[a.TargetID]
		if !ok {
			openAmt = documents[a.TargetID].Total
		}
		pending := alreadyByTarget[a.TargetID].Add(a.Amount)
		if pending.GreaterThan(openAmt) {
			return nil, fmt.Errorf("%w: allocation of %s against document %s exceeds its open balance %s", apperrors.ErrValidation, pending, a.TargetID, openAmt)
		}
		alreadyByTarget[a.TargetID] = pending

		allocs[i] = domain.PaymentAllocation{
			AllocationID: uuid.NewString(),
			PaymentID:    paymentID,
			TargetType:   a.TargetType,
			TargetID:     a.TargetID,
			Amount:       a.Amount,
			AuditFields:  domain.NewAuditFields(actorID, now),
		}
	}

	if err := s.paymentRepo.SaveAllocations(ctx, allocs); err != nil {
		return nil, err
	}
	return allocs, nil
}

func (s *paymentService) Unallocate(ctx context.Context, tenantID, actorID, paymentID, allocationID string) error {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, tenantID, paymentID)
	if err != nil {
		return err
	}
	if payment.Status != domain.PaymentDraft {
		return fmt.Errorf("%w: payment %s is %s, allocations are frozen", apperrors.ErrInvalidState, paymentID, payment.Status)
	}
	return s.paymentRepo.DeleteAllocation(ctx, paymentID, allocationID)
}

// PostPayment books the payment through the posting engine. A posted payment
// replays idempotently; a void payment is rejected.
func (s *paymentService) PostPayment(ctx context.Context, tenantID, actorID, paymentID string, req dto.PostPaymentRequest) (*dto.PostPaymentResult, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, tenantID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == domain.PaymentVoid {
		return nil, fmt.Errorf("%w: payment %s is void", apperrors.ErrInvalidState, paymentID)
	}
	if payment.Status == domain.PaymentDraft && req.Memo != "" {
		if err := s.setRepo.UpdateSetNotes(ctx, tenantID, payment.TransactionSetID, req.Memo, actorID, time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	result, err := s.postingSvc.PostTransactionSet(ctx, tenantID, actorID, payment.TransactionSetID)
	if err != nil {
		return nil, err
	}
	return &dto.PostPaymentResult{
		JournalEntryID:   result.JournalEntryID,
		TransactionSetID: result.TransactionSetID,
		PaymentID:        paymentID,
		Idempotent:       result.Idempotent,
	}, nil
}

// VoidPayment terminates a draft payment and its backing set together.
func (s *paymentService) VoidPayment(ctx context.Context, tenantID, actorID, paymentID string) error {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, tenantID, paymentID)
	if err != nil {
		return err
	}
	if payment.Status != domain.PaymentDraft {
		return fmt.Errorf("%w: payment %s is %s and cannot be voided", apperrors.ErrInvalidState, paymentID, payment.Status)
	}

	now := time.Now().UTC()
	if err := s.paymentRepo.UpdatePaymentStatus(ctx, tenantID, paymentID, domain.PaymentVoid, actorID, now); err != nil {
		return err
	}
	if err := s.setRepo.UpdateSetStatus(ctx, tenantID, payment.TransactionSetID, domain.SetVoid, actorID, now); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Payment voided",
		slog.String("payment_id", paymentID),
		slog.String("transaction_set_id", payment.TransactionSetID),
	)
	return nil
}
