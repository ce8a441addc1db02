package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionSetRequest opens a new draft transaction set for a
// workflow to populate.
type CreateTransactionSetRequest struct {
	Source       domain.TransactionSource `json:"source" binding:"required,oneof=payment inventory manual transfer expense capital"`
	BusinessDate time.Time                `json:"businessDate" binding:"required"`
	Notes        string                   `json:"notes"`
}

// StagedLineRequest is one caller-supplied journal leg.
type StagedLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// StageLinesRequest attaches explicit legs to a draft set.
type StageLinesRequest struct {
	Lines []StagedLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// TransactionSetResponse is the API shape of a transaction set.
type TransactionSetResponse struct {
	TransactionSetID string                      `json:"transactionSetID"`
	Status           domain.TransactionSetStatus `json:"status"`
	Source           domain.TransactionSource    `json:"source"`
	BusinessDate     time.Time                   `json:"businessDate"`
	Notes            string                      `json:"notes"`
	JournalEntryID   *string                     `json:"journalEntryID,omitempty"`
	CreatedAt        time.Time                   `json:"createdAt"`
	CreatedBy        string                      `json:"createdBy"`
}

// ToTransactionSetResponse maps a domain set to its API shape.
func ToTransactionSetResponse(s *domain.TransactionSet) TransactionSetResponse {
	return TransactionSetResponse{
		TransactionSetID: s.TransactionSetID,
		Status:           s.Status,
		Source:           s.Source,
		BusinessDate:     s.BusinessDate,
		Notes:            s.Notes,
		JournalEntryID:   s.JournalEntryID,
		CreatedAt:        s.CreatedAt,
		CreatedBy:        s.CreatedBy,
	}
}
