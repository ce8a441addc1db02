package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// PaymentSvcFacade owns payment drafts, the allocation engine and the
// post-payment entry point into the posting engine.
type PaymentSvcFacade interface {
	// CreatePayment records a draft payment and its backing draft transaction set.
	CreatePayment(ctx context.Context, tenantID, actorID string, req dto.CreatePaymentRequest) (*domain.Payment, error)

	// GetPayment retrieves a payment with its allocations.
	GetPayment(ctx context.Context, tenantID, paymentID string) (*domain.Payment, []domain.PaymentAllocation, error)

	// CreateAllocations apportions the payment across open documents. Legal
	// only while the payment is draft; the allocated total can never exceed
	// the payment amount.
	CreateAllocations(ctx context.Context, tenantID, actorID, paymentID string, req dto.CreateAllocationsRequest) ([]domain.PaymentAllocation, error)

	// Unallocate removes one allocation from a draft payment.
	Unallocate(ctx context.Context, tenantID, actorID, paymentID, allocationID string) error

	// PostPayment books the payment's ledger legs through the posting engine
	// and flips the payment to posted atomically.
	PostPayment(ctx context.Context, tenantID, actorID, paymentID string, req dto.PostPaymentRequest) (*dto.PostPaymentResult, error)

	// VoidPayment terminates a draft payment and its transaction set.
	VoidPayment(ctx context.Context, tenantID, actorID, paymentID string) error
}
