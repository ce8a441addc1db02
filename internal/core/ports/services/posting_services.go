package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// PostingSvcFacade is the single code path permitted to write journal entries
// and flip transaction sets (and payments) to posted.
type PostingSvcFacade interface {
	// PostTransactionSet derives, validates and books the journal entry for a
	// transaction set atomically. Retrying a posted set returns the original
	// result flagged idempotent.
	PostTransactionSet(ctx context.Context, tenantID, actorID, setID string) (*dto.PostingResult, error)

	// CreateSimpleLedgerEntry posts caller-supplied lines through the same
	// engine, creating the backing transaction set on the fly.
	CreateSimpleLedgerEntry(ctx context.Context, tenantID, actorID string, req dto.CreateSimpleEntryRequest) (*dto.PostingResult, error)

	// ReverseJournalEntry books a new entry with every line's debit and credit
	// swapped, linked to the original for audit. The original is never mutated.
	ReverseJournalEntry(ctx context.Context, tenantID, actorID, entryID string, req dto.ReverseEntryRequest) (*dto.ReversalResult, error)

	// GetEntry retrieves a journal entry with its lines.
	GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByAccount retrieves entries touching an account in a date range.
	ListEntriesByAccount(ctx context.Context, tenantID, accountID string, req dto.DateRange) ([]domain.JournalEntry, error)
}
