package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest records a draft payment together with its draft
// transaction set.
type CreatePaymentRequest struct {
	PaymentType      domain.PaymentType `json:"paymentType" binding:"required,oneof=RECEIPT VENDOR_PAYMENT"`
	PartyID          string             `json:"partyID" binding:"required"`
	Amount           decimal.Decimal    `json:"amount" binding:"required"`
	PaymentDate      time.Time          `json:"paymentDate" binding:"required"`
	BankAccountID    string             `json:"bankAccountID" binding:"required"`
	CounterAccountID string             `json:"counterAccountID" binding:"required"`
	Memo             string             `json:"memo"`
}

// AllocationRequest apportions part of a payment to one target document.
type AllocationRequest struct {
	TargetType domain.DocumentType `json:"targetType" binding:"required,oneof=SALES_DOC PURCHASE_DOC"`
	TargetID   string              `json:"targetID" binding:"required"`
	Amount     decimal.Decimal     `json:"amount" binding:"required"`
}

// CreateAllocationsRequest adds allocations to a draft payment.
type CreateAllocationsRequest struct {
	Allocations []AllocationRequest `json:"allocations" binding:"required,min=1,dive"`
}

// PostPaymentRequest posts a draft payment; the optional memo replaces the
// payment's memo on the resulting journal entry.
type PostPaymentRequest struct {
	Memo string `json:"memo"`
}

// PostPaymentResult reports the outcome of posting a payment.
type PostPaymentResult struct {
	JournalEntryID   string `json:"journalEntryID"`
	TransactionSetID string `json:"transactionSetID"`
	PaymentID        string `json:"paymentID"`
	Idempotent       bool   `json:"idempotent"`
}

// AllocationResponse is the API shape of a payment allocation.
type AllocationResponse struct {
	AllocationID string              `json:"allocationID"`
	TargetType   domain.DocumentType `json:"targetType"`
	TargetID     string              `json:"targetID"`
	Amount       decimal.Decimal     `json:"amount"`
}

// PaymentResponse is the API shape of a payment with its allocations.
type PaymentResponse struct {
	PaymentID        string               `json:"paymentID"`
	PaymentType      domain.PaymentType   `json:"paymentType"`
	PartyID          string               `json:"partyID"`
	Amount           decimal.Decimal      `json:"amount"`
	PaymentDate      time.Time            `json:"paymentDate"`
	BankAccountID    string               `json:"bankAccountID"`
	CounterAccountID string               `json:"counterAccountID"`
	Memo             string               `json:"memo"`
	Status           domain.PaymentStatus `json:"status"`
	TransactionSetID string               `json:"transactionSetID"`
	Allocations      []AllocationResponse `json:"allocations"`
	AllocatedTotal   decimal.Decimal      `json:"allocatedTotal"`
	UnallocatedTotal decimal.Decimal      `json:"unallocatedTotal"`
}

// ToPaymentResponse maps a payment and its allocations to the API shape.
func ToPaymentResponse(p *domain.Payment, allocs []domain.PaymentAllocation) PaymentResponse {
	allocated := domain.SumAllocations(allocs)
	out := PaymentResponse{
		PaymentID:        p.PaymentID,
		PaymentType:      p.PaymentType,
		PartyID:          p.PartyID,
		Amount:           p.Amount,
		PaymentDate:      p.PaymentDate,
		BankAccountID:    p.BankAccountID,
		CounterAccountID: p.CounterAccountID,
		Memo:             p.Memo,
		Status:           p.Status,
		TransactionSetID: p.TransactionSetID,
		Allocations:      make([]AllocationResponse, len(allocs)),
		AllocatedTotal:   allocated,
		UnallocatedTotal: p.Amount.Sub(allocated),
	}
	for i, a := range allocs {
		out.Allocations[i] = AllocationResponse{
			AllocationID: a.AllocationID,
			TargetType:   a.TargetType,
			TargetID:     a.TargetID,
			Amount:       a.Amount,
		}
	}
	return out
}
