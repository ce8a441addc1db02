package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one atomic, balanced accounting event. Entries are
// append-only: once written they are never updated or deleted, only undone by
// a separate reversing entry that links back via ReversesEntryID.
type JournalEntry struct {
	EntryID          string             `json:"entryID"`
	TenantID         string             `json:"tenantID"`
	PostingDate      time.Time          `json:"postingDate"` // Business date, gated by the period lock
	EntryDate        time.Time          `json:"entryDate"`   // Defaults to PostingDate
	Memo             string             `json:"memo"`
	Source           TransactionSource  `json:"source"`
	TransactionSetID *string            `json:"transactionSetID,omitempty"` // Originating set, nil for reversals
	ReversesEntryID  *string            `json:"reversesEntryID,omitempty"`  // Set only on reversal entries
	ReversalReason   *string            `json:"reversalReason,omitempty"`
	PostedAt         time.Time          `json:"postedAt"`
	PostedBy         string             `json:"postedBy"`
	Lines            []JournalLine      `json:"lines,omitempty"`
	AuditFields
}

// IsReversal reports whether the entry undoes another entry.
func (e *JournalEntry) IsReversal() bool {
	return e.ReversesEntryID != nil
}

// JournalLine is one debit-or-credit leg of a journal entry against one
// account. Exactly one of Debit/Credit is non-zero per line.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineNumber  int             `json:"lineNumber"` // Unique and increasing within an entry
}

// IsDebit reports whether the line is a debit leg.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}
