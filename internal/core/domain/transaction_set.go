package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionSetStatus is the lifecycle state of a transaction set.
type TransactionSetStatus string

const (
	SetDraft  TransactionSetStatus = "DRAFT"
	SetReview TransactionSetStatus = "REVIEW"
	SetPosted TransactionSetStatus = "POSTED"
	SetVoid   TransactionSetStatus = "VOID"
)

// IsTerminal reports whether no further transition is legal from the status.
func (s TransactionSetStatus) IsTerminal() bool {
	return s == SetPosted || s == SetVoid
}

// CanTransitionTo reports whether the state machine permits moving to next.
// Transitions are one-directional: draft -> review -> posted, with void as an
// alternate terminal path from draft or review.
func (s TransactionSetStatus) CanTransitionTo(next TransactionSetStatus) bool {
	switch s {
	case SetDraft:
		return next == SetReview || next == SetPosted || next == SetVoid
	case SetReview:
		return next == SetPosted || next == SetVoid
	}
	return false
}

// TransactionSource tags the origin workflow of a transaction set.
type TransactionSource string

const (
	SourcePayment   TransactionSource = "payment"
	SourceInventory TransactionSource = "inventory"
	SourceManual    TransactionSource = "manual"
	SourceTransfer  TransactionSource = "transfer"
	SourceExpense   TransactionSource = "expense"
	SourceCapital   TransactionSource = "capital"
)

// IsValid reports whether the source tag is known.
func (s TransactionSource) IsValid() bool {
	switch s {
	case SourcePayment, SourceInventory, SourceManual, SourceTransfer, SourceExpense, SourceCapital:
		return true
	}
	return false
}

// TransactionSet groups the business inputs for one postable event. A set is
// posted at most once; posting is owned exclusively by the posting engine.
type TransactionSet struct {
	TransactionSetID string               `json:"transactionSetID"`
	TenantID         string               `json:"tenantID"`
	Status           TransactionSetStatus `json:"status"`
	Source           TransactionSource    `json:"source"`
	BusinessDate     time.Time            `json:"businessDate"`
	Notes            string               `json:"notes"`
	JournalEntryID   *string              `json:"journalEntryID,omitempty"` // Set when posted
	AuditFields
}

// StagedLine is a caller-supplied journal leg attached to a draft transaction
// set. Manual, transfer, expense and capital sources stage their lines here
// and the posting engine lifts them verbatim into journal lines.
type StagedLine struct {
	StagedLineID     string          `json:"stagedLineID"`
	TransactionSetID string          `json:"transactionSetID"`
	AccountID        string          `json:"accountID"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Description      string          `json:"description"`
	LineNumber       int             `json:"lineNumber"`
	AuditFields
}
