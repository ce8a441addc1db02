package accounting

import (
	"fmt"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the single tolerance used by every balance comparison.
// It absorbs residual rounding in derived lines; the engine never injects a
// rounding line to force a balance.
var BalanceEpsilon = decimal.RequireFromString("0.005")

// SumDebits totals the debit side of the given lines.
func SumDebits(lines []domain.JournalLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Debit)
	}
	return sum
}

// SumCredits totals the credit side of the given lines.
func SumCredits(lines []domain.JournalLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Credit)
	}
	return sum
}

// ValidateLines checks the double-entry invariants for a prospective journal
// entry: at least two lines, each line a pure debit or pure credit with a
// positive amount, and total debits equal to total credits within
// BalanceEpsilon.
func ValidateLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	for _, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, l.LineNumber)
		}
		debitSet := l.Debit.IsPositive()
		creditSet := l.Credit.IsPositive()
		if debitSet == creditSet {
			return fmt.Errorf("%w: line %d must be a pure debit or a pure credit", apperrors.ErrValidation, l.LineNumber)
		}
	}

	debits := SumDebits(lines)
	credits := SumCredits(lines)
	if debits.Sub(credits).Abs().GreaterThan(BalanceEpsilon) {
		return fmt.Errorf("%w: debits %s vs credits %s", apperrors.ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}

// NumberLines assigns 1-based, strictly increasing line numbers in slice
// order to any lines that do not already carry one.
func NumberLines(lines []domain.JournalLine) {
	for i := range lines {
		if lines[i].LineNumber == 0 {
			lines[i].LineNumber = i + 1
		}
	}
}

// SwapLines returns the inverse of the given lines: debit and credit are
// swapped per line, preserving account, description and line number.
// Identifiers are cleared for the caller to reassign.
func SwapLines(lines []domain.JournalLine) []domain.JournalLine {
	swapped := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		swapped[i] = domain.JournalLine{
			AccountID:   l.AccountID,
			Debit:       l.Credit,
			Credit:      l.Debit,
			Description: l.Description,
			LineNumber:  l.LineNumber,
		}
	}
	return swapped
}
