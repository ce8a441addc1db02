package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one explicit leg of a simple ledger entry.
type EntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateSimpleEntryRequest is the manual-entry variant of posting: the caller
// supplies the lines, still subject to balance and period checks.
type CreateSimpleEntryRequest struct {
	PostingDate time.Time                `json:"postingDate" binding:"required"`
	Memo        string                   `json:"memo" binding:"required"`
	Source      domain.TransactionSource `json:"source,omitempty"` // Defaults to manual
	Lines       []EntryLineRequest       `json:"lines" binding:"required,min=2,dive"`
}

// ReverseEntryRequest asks for an inverse entry of a posted journal entry.
type ReverseEntryRequest struct {
	Reason      string     `json:"reason" binding:"required"`
	PostingDate *time.Time `json:"postingDate,omitempty"` // Defaults to now
	Memo        *string    `json:"memo,omitempty"`
}

// PostingResult reports the outcome of posting a transaction set. Idempotent
// is true when the set had already posted and the original entry is returned
// without writing new rows.
type PostingResult struct {
	JournalEntryID   string   `json:"journalEntryID"`
	JournalLineIDs   []string `json:"journalLineIDs"`
	TransactionSetID string   `json:"transactionSetID"`
	Idempotent       bool     `json:"idempotent"`
}

// ReversalResult reports the outcome of reversing a journal entry.
type ReversalResult struct {
	ReversalEntryID string `json:"reversalEntryID"`
	Idempotent      bool   `json:"idempotent"`
}

// JournalLineResponse is the API shape of a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineNumber  int             `json:"lineNumber"`
}

// JournalEntryResponse is the API shape of a journal entry with its lines.
type JournalEntryResponse struct {
	EntryID          string                   `json:"entryID"`
	PostingDate      time.Time                `json:"postingDate"`
	EntryDate        time.Time                `json:"entryDate"`
	Memo             string                   `json:"memo"`
	Source           domain.TransactionSource `json:"source"`
	TransactionSetID *string                  `json:"transactionSetID,omitempty"`
	ReversesEntryID  *string                  `json:"reversesEntryID,omitempty"`
	ReversalReason   *string                  `json:"reversalReason,omitempty"`
	PostedAt         time.Time                `json:"postedAt"`
	PostedBy         string                   `json:"postedBy"`
	Lines            []JournalLineResponse    `json:"lines"`
}

// ToJournalEntryResponse maps a domain entry (with lines) to its API shape.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			LineNumber:  l.LineNumber,
		}
	}
	return JournalEntryResponse{
		EntryID:          e.EntryID,
		PostingDate:      e.PostingDate,
		EntryDate:        e.EntryDate,
		Memo:             e.Memo,
		Source:           e.Source,
		TransactionSetID: e.TransactionSetID,
		ReversesEntryID:  e.ReversesEntryID,
		ReversalReason:   e.ReversalReason,
		PostedAt:         e.PostedAt,
		PostedBy:         e.PostedBy,
		Lines:            lines,
	}
}
