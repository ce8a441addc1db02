package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType distinguishes money coming in from money going out.
type PaymentType string

const (
	Receipt       PaymentType = "RECEIPT"        // Customer money in, settles sales documents
	VendorPayment PaymentType = "VENDOR_PAYMENT" // Vendor money out, settles purchase documents
)

// IsValid reports whether the payment type is known.
func (t PaymentType) IsValid() bool {
	return t == Receipt || t == VendorPayment
}

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentDraft  PaymentStatus = "DRAFT"
	PaymentPosted PaymentStatus = "POSTED"
	PaymentVoid   PaymentStatus = "VOID"
)

// Payment records a single receipt or vendor payment. Every payment owns a
// transaction set; posting the set books the ledger legs and flips the
// payment to posted in the same database transaction.
type Payment struct {
	PaymentID        string          `json:"paymentID"`
	TenantID         string          `json:"tenantID"`
	PaymentType      PaymentType     `json:"paymentType"`
	PartyID          string          `json:"partyID"` // Customer or vendor reference
	Amount           decimal.Decimal `json:"amount"`
	PaymentDate      time.Time       `json:"paymentDate"`
	BankAccountID    string          `json:"bankAccountID"`    // Cash/bank ledger account
	CounterAccountID string          `json:"counterAccountID"` // AR or AP control account
	Memo             string          `json:"memo"`
	Status           PaymentStatus   `json:"status"`
	TransactionSetID string          `json:"transactionSetID"`
	AuditFields
}

// AllocationTargetType returns the document type this payment may allocate
// to: receipts settle sales documents, vendor payments settle purchase
// documents.
func (p Payment) AllocationTargetType() DocumentType {
	if p.PaymentType == Receipt {
		return SalesDoc
	}
	return PurchaseDoc
}

// PaymentAllocation apportions part of a payment's amount to one open
// receivable or payable document. Allocations are created while the payment
// is draft and only count toward open-balance math once the payment posts.
type PaymentAllocation struct {
	AllocationID string          `json:"allocationID"`
	PaymentID    string          `json:"paymentID"`
	TargetType   DocumentType    `json:"targetType"`
	TargetID     string          `json:"targetID"`
	Amount       decimal.Decimal `json:"amount"` // Always positive
	AuditFields
}

// SumAllocations totals the allocated amounts of the given allocations.
func SumAllocations(allocs []PaymentAllocation) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range allocs {
		sum = sum.Add(a.Amount)
	}
	return sum
}
