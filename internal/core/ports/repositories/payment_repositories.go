package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PaymentReader defines read operations for payments and allocations.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment scoped to a tenant.
	FindPaymentByID(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error)

	// FindPaymentByTransactionSetID retrieves the payment owning a transaction set.
	FindPaymentByTransactionSetID(ctx context.Context, tenantID, setID string) (*domain.Payment, error)

	// FindAllocationsByPaymentID retrieves a payment's allocations in creation order.
	FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error)

	// CountDraftPaymentsInRange counts draft payments dated in the range.
	// Used for period close checklists.
	CountDraftPaymentsInRange(ctx context.Context, tenantID string, from, to time.Time) (int, error)
}

// PaymentWriter defines write operations for payments and allocations.
type PaymentWriter interface {
	// SavePayment persists a new draft payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePaymentStatus moves a payment to void.
	UpdatePaymentStatus(ctx context.Context, tenantID, paymentID string, status domain.PaymentStatus, updatedBy string, at time.Time) error

	// MarkPaymentPostedInTx flips a payment to posted inside the caller's
	// transaction, alongside the journal entry insert.
	MarkPaymentPostedInTx(ctx context.Context, tx pgx.Tx, paymentID, updatedBy string, at time.Time) error

	// SaveAllocations appends allocation rows for a draft payment.
	SaveAllocations(ctx context.Context, allocations []domain.PaymentAllocation) error

	// DeleteAllocation removes one allocation from a draft payment.
	DeleteAllocation(ctx context.Context, paymentID, allocationID string) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
